package models

import "time"

// Product represents a catalog entry with its stock level and the
// transactions that produced it
type Product struct {
	ID               string        `json:"_id"`
	ProductName      string        `json:"productName"`
	StockKeepingUnit string        `json:"stockKeepingUnit"`
	StockQuantity    float64       `json:"stockQuantity"`
	Transactions     []Transaction `json:"transactions,omitempty"`
}

// TransactionType distinguishes receipts from issues
type TransactionType string

const (
	TransactionRestock TransactionType = "Restock"
	TransactionIssue   TransactionType = "Issue"
)

// Transaction is a single stock movement on a product
type Transaction struct {
	ID                   string          `json:"_id"`
	Type                 TransactionType `json:"type"`
	QtyReceived          float64         `json:"qtyReceived,omitempty"`
	QtyIssued            float64         `json:"qtyIssued,omitempty"`
	ReceivedFromIssuedTo string          `json:"receivedFromIssuedTo,omitempty"`
	ValueInEuro          float64         `json:"valueInEuro,omitempty"`
	SellingPrice         float64         `json:"sellingPrice,omitempty"`
	CediConversionRate   float64         `json:"cediConversionRate,omitempty"`
	InvoicedAmount       float64         `json:"invoicedAmount,omitempty"`
	OrderID              string          `json:"orderId,omitempty"`
	OutOfOrderDate       time.Time       `json:"outOfOrderDate,omitempty"`
	AwaitingPickup       PickupStatus    `json:"awaitingPickup,omitempty"`
}

// RestockRequest carries the receipt details posted when stock arrives
type RestockRequest struct {
	QtyReceived        float64 `json:"qtyReceived"`
	ReceivedFrom       string  `json:"receivedFrom"`
	ValueInEuro        float64 `json:"valueInEuro"`
	SellingPrice       float64 `json:"sellingPrice"`
	CediConversionRate float64 `json:"cediConversionRate"`
	OutOfOrderDate     string  `json:"outOfOrderDate"`
}

// IssueRequest carries the issue details posted when stock leaves,
// one per order line during payment finalization
type IssueRequest struct {
	ReceivedFromIssuedTo string  `json:"receivedFromIssuedTo"`
	QtyIssued            float64 `json:"qtyIssued"`
	InvoicedAmount       float64 `json:"invoicedAmount"`
	OrderID              string  `json:"orderId"`
}
