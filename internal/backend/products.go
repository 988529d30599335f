package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

// productEnvelope is how the backend wraps product payloads
type productEnvelope struct {
	Product models.Product `json:"product"`
}

type productListEnvelope struct {
	Product []models.Product `json:"product"`
}

// GetAllProducts fetches the full catalog with nested transactions
func (c *Client) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var env productListEnvelope

	if err := c.do(ctx, http.MethodGet, "/products/all", nil, &env); err != nil {
		return nil, err
	}

	return env.Product, nil
}

// GetProduct fetches a single product by id
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var env productEnvelope

	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, &env); err != nil {
		return nil, err
	}

	return &env.Product, nil
}

// AddProduct creates a new catalog entry and returns the stored product
func (c *Client) AddProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var env productEnvelope

	if err := c.do(ctx, http.MethodPost, "/products/add", product, &env); err != nil {
		return nil, err
	}

	return &env.Product, nil
}

// UpdateProduct patches a product and returns the stored version
func (c *Client) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	var env productEnvelope

	if err := c.do(ctx, http.MethodPatch, "/products/"+id, product, &env); err != nil {
		return nil, err
	}

	return &env.Product, nil
}

// DeleteProduct removes a product from the catalog
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

// IssueStock posts an issue transaction against a product, reducing its
// stock. Called once per order line during payment finalization.
func (c *Client) IssueStock(ctx context.Context, productID string, issue *models.IssueRequest) (*models.Product, error) {
	var env productEnvelope

	path := fmt.Sprintf("/transactions/issue/%s", productID)

	if err := c.do(ctx, http.MethodPost, path, issue, &env); err != nil {
		return nil, err
	}

	return &env.Product, nil
}

// RestockProduct posts a receipt transaction, increasing stock
func (c *Client) RestockProduct(ctx context.Context, productID string, stock *models.RestockRequest) (*models.Product, error) {
	var env productEnvelope

	path := fmt.Sprintf("/transactions/restock/%s", productID)

	if err := c.do(ctx, http.MethodPost, path, stock, &env); err != nil {
		return nil, err
	}

	return &env.Product, nil
}

// UpdateIssuePickup patches the pickup flag on the issue transactions
// belonging to an order
func (c *Client) UpdateIssuePickup(ctx context.Context, orderID string, pickup models.PickupStatus) error {
	body := map[string]models.PickupStatus{"awaitingPickup": pickup}

	return c.do(ctx, http.MethodPatch, "/transactions/issue/"+orderID, body, nil)
}
