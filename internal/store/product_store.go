package store

import (
	"context"
	"errors"
	"sync"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/notify"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/apperrors"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

// ErrDeclined is returned when the user cancels a destructive deletion
var ErrDeclined = errors.New("confirmation declined")

// Backend is the slice of the backend API the store consumes
type Backend interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	AddProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	IssueStock(ctx context.Context, productID string, issue *models.IssueRequest) (*models.Product, error)
	RestockProduct(ctx context.Context, productID string, stock *models.RestockRequest) (*models.Product, error)
}

// Confirmer gates destructive deletions
type Confirmer interface {
	Confirm(prompt string) bool
}

// ProductStore holds the session's authoritative product list. Every
// operation performs one backend call and applies the server-returned
// object to the in-memory collection only after the call succeeds; on
// failure the collection is left untouched.
type ProductStore struct {
	backend  Backend
	notifier notify.Notifier
	logger   logger.Logger

	mu       sync.RWMutex
	products []models.Product
	loaded   bool
}

// NewProductStore creates a product store. The catalog is fetched
// lazily, once, on first use.
func NewProductStore(backend Backend, notifier notify.Notifier, l logger.Logger) *ProductStore {
	return &ProductStore{
		backend:  backend,
		notifier: notifier,
		logger:   logger.Named(l, "products"),
	}
}

// ensureLoaded performs the one-time initial fetch. A failed fetch is
// reported and retried on the next use.
func (s *ProductStore) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	products, err := s.backend.GetAllProducts(ctx)

	if err != nil {
		s.logger.Error("Failed to fetch products", "error", err)
		s.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	s.products = products
	s.loaded = true
	return nil
}

// Products returns a copy of the in-memory catalog
func (s *ProductStore) Products(ctx context.Context) ([]models.Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// GetByID fetches one product directly from the backend
func (s *ProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.backend.GetProduct(ctx, id)

	if err != nil {
		s.logger.Error("Failed to fetch product", "productID", id, "error", err)
		s.notifier.Error(apperrors.UserMessage(err))
		return nil, err
	}

	return product, nil
}

// Add creates a product and appends the stored version to the catalog
func (s *ProductStore) Add(ctx context.Context, product *models.Product) (*models.Product, error) {
	created, err := s.backend.AddProduct(ctx, product)

	if err != nil {
		s.logger.Error("Failed to add product", "error", err)
		s.notifier.Error(apperrors.UserMessage(err))
		return nil, err
	}

	s.mu.Lock()
	s.products = append(s.products, *created)
	s.mu.Unlock()

	s.notifier.Success("Product Added Successfully")
	return created, nil
}

// Update patches a product and replaces it in the catalog by id
func (s *ProductStore) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	updated, err := s.backend.UpdateProduct(ctx, id, product)

	if err != nil {
		s.logger.Error("Failed to update product", "productID", id, "error", err)
		s.notifier.Error(apperrors.UserMessage(err))
		return nil, err
	}

	s.replace(id, *updated)
	s.notifier.Success("Product Updated Successfully")
	return updated, nil
}

// Delete removes a product, gated by an interactive confirmation
func (s *ProductStore) Delete(ctx context.Context, id string, confirmer Confirmer) error {
	if !confirmer.Confirm("Are you sure you want to delete this product?") {
		return ErrDeclined
	}

	if err := s.backend.DeleteProduct(ctx, id); err != nil {
		s.logger.Error("Failed to delete product", "productID", id, "error", err)
		s.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	s.mu.Lock()
	filtered := s.products[:0]

	for _, p := range s.products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	s.products = filtered
	s.mu.Unlock()

	s.notifier.Success("Product Deleted Successfully")
	return nil
}

// Issue posts an issue transaction and applies the returned stock level
func (s *ProductStore) Issue(ctx context.Context, id string, issue *models.IssueRequest) (*models.Product, error) {
	updated, err := s.backend.IssueStock(ctx, id, issue)

	if err != nil {
		s.logger.Error("Failed to issue product", "productID", id, "error", err)
		s.notifier.Error(apperrors.UserMessage(err))
		return nil, err
	}

	s.replace(id, *updated)
	s.notifier.Success("Product issued successfully")
	return updated, nil
}

// Restock posts a receipt transaction and applies the returned stock level
func (s *ProductStore) Restock(ctx context.Context, id string, stock *models.RestockRequest) (*models.Product, error) {
	updated, err := s.backend.RestockProduct(ctx, id, stock)

	if err != nil {
		s.logger.Error("Failed to restock product", "productID", id, "error", err)
		s.notifier.Error(apperrors.UserMessage(err))
		return nil, err
	}

	s.replace(id, *updated)
	s.notifier.Success("Product restocked successfully")
	return updated, nil
}

// Refresh re-fetches the whole catalog, used after workflows that touch
// stock behind the store's back
func (s *ProductStore) Refresh(ctx context.Context) error {
	products, err := s.backend.GetAllProducts(ctx)

	if err != nil {
		s.logger.Error("Failed to refresh products", "error", err)
		s.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *ProductStore) replace(id string, updated models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products[i] = updated
			return
		}
	}
}
