package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

type invoiceEnvelope struct {
	Invoice models.Invoice `json:"invoice"`
}

// CreateInvoice creates the invoice for an approved order. The backend
// renders the PDF and sends the farmer email as part of this call.
func (c *Client) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	var env invoiceEnvelope

	if err := c.do(ctx, http.MethodPost, "/invoices/create", req, &env); err != nil {
		return nil, err
	}

	return &env.Invoice, nil
}

// UpdateInvoiceStatus patches the invoice status, keeping it in sync
// with the order's payment status
func (c *Client) UpdateInvoiceStatus(ctx context.Context, id string, status models.PaymentStatus) error {
	body := map[string]models.PaymentStatus{"status": status}

	return c.do(ctx, http.MethodPatch, "/invoices/"+id, body, nil)
}

// InvoicePDFURL returns the deterministic download path for an invoice
// document
func (c *Client) InvoicePDFURL(invoiceID string) string {
	return fmt.Sprintf("%s/invoices/files/invoice_%s.pdf", c.baseURL, invoiceID)
}
