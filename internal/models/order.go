package models

import (
	"strconv"
	"time"
)

// OrderStatus represents the approval state of an order
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusApproved OrderStatus = "Approved"
	OrderStatusRejected OrderStatus = "Rejected"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// PickupStatus represents the physical handover state of an order
type PickupStatus string

const (
	PickupAwaitingCollection PickupStatus = "Awaiting Collection"
	PickupCompleted          PickupStatus = "Completed"
)

// Farmer is the counterparty that placed an order
type Farmer struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	FarmName     string `json:"farmName"`
	FarmLocation string `json:"farmLocation"`
	TelNumber    string `json:"telNumber"`
	Email        string `json:"email"`
}

// FullName returns the farmer's display name, used as the counterparty
// on issue transactions
func (f Farmer) FullName() string {
	return f.FirstName + " " + f.LastName
}

// OrderLine is a single product position on an order
type OrderLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Cost        float64 `json:"cost"`
}

// SetQuantity applies a raw quantity edit to the line and recomputes its
// cost. Negative or non-numeric input is coerced to 0, matching the
// order-editing screen.
func (l *OrderLine) SetQuantity(raw string) {
	qty, err := strconv.ParseFloat(raw, 64)

	if err != nil || qty < 0 {
		qty = 0
	}

	l.Quantity = qty
	l.Cost = qty * l.UnitPrice
}

// Order represents a farmer order as served by the backend
type Order struct {
	ID               string        `json:"_id"`
	Farmer           Farmer        `json:"farmerId"`
	Products         []OrderLine   `json:"products"`
	OrderStatus      OrderStatus   `json:"orderStatus"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	AwaitingPickup   PickupStatus  `json:"awaitingPickup"`
	InvoiceGenerated bool          `json:"invoiceGenerated"`
	InvoiceID        string        `json:"invoiceId,omitempty"`
	TotalCost        float64       `json:"totalCost"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// HasInvoice reports whether an invoice was created for the order.
// Payment and pickup transitions are blocked until one exists.
func (o *Order) HasInvoice() bool {
	return o.InvoiceID != ""
}
