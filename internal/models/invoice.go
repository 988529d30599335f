package models

// Invoice mirrors the backend invoice document. Its status tracks the
// order's payment status, synced by a dedicated update call.
type Invoice struct {
	ID              string  `json:"_id"`
	OrderID         string  `json:"orderId"`
	FarmerID        string  `json:"farmerId"`
	Currency        string  `json:"currency"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
	PDFDownloadLink string  `json:"pdfDownloadLink"`
	EmailSent       bool    `json:"emailSent"`
}

// CreateInvoiceRequest is the payload for invoice creation during order
// approval
type CreateInvoiceRequest struct {
	OrderID     string  `json:"orderId"`
	FarmerID    string  `json:"farmerId"`
	TotalAmount float64 `json:"totalAmount"`
	Email       string  `json:"email"`
	FarmerName  string  `json:"farmerName"`
}
