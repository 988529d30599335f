package backend

import (
	"context"
	"net/http"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

type orderEnvelope struct {
	Order models.Order `json:"order"`
}

type orderListEnvelope struct {
	Orders []models.Order `json:"orders"`
}

// GetAllOrders fetches every order
func (c *Client) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var env orderListEnvelope

	if err := c.do(ctx, http.MethodGet, "/orders/all", nil, &env); err != nil {
		return nil, err
	}

	return env.Orders, nil
}

// GetOrder fetches a single order by id
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var env orderEnvelope

	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, &env); err != nil {
		return nil, err
	}

	return &env.Order, nil
}

// UpdateOrderStatus patches the approval status of an order. Patching to
// Rejected causes the backend to delete the order entirely.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	body := map[string]models.OrderStatus{"orderStatus": status}

	return c.do(ctx, http.MethodPatch, "/orders/"+id, body, nil)
}

// UpdateOrderLines patches the edited order lines
func (c *Client) UpdateOrderLines(ctx context.Context, id string, lines []models.OrderLine) error {
	body := map[string][]models.OrderLine{"products": lines}

	return c.do(ctx, http.MethodPatch, "/orders/"+id, body, nil)
}

// UpdateOrderPayment patches the payment status of an order
func (c *Client) UpdateOrderPayment(ctx context.Context, id string, status models.PaymentStatus) error {
	body := map[string]models.PaymentStatus{"paymentStatus": status}

	return c.do(ctx, http.MethodPatch, "/orders/"+id+"/status", body, nil)
}

// UpdateOrderPickup patches the pickup flag of an order
func (c *Client) UpdateOrderPickup(ctx context.Context, id string, pickup models.PickupStatus) error {
	body := map[string]models.PickupStatus{"awaitingPickup": pickup}

	return c.do(ctx, http.MethodPatch, "/orders/"+id, body, nil)
}

// GetPendingOrderCount fetches the number of orders awaiting approval
func (c *Client) GetPendingOrderCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}

	if err := c.do(ctx, http.MethodGet, "/orders/pending-count", nil, &resp); err != nil {
		return 0, err
	}

	return resp.Count, nil
}
