package api

import (
	"net/http"
	"sort"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

// StockLevel is one bar of the stock chart
type StockLevel struct {
	ProductName   string  `json:"productName"`
	StockQuantity float64 `json:"stockQuantity"`
}

// PopularProduct ranks products by total issued quantity
type PopularProduct struct {
	ProductName string  `json:"productName"`
	QtyIssued   float64 `json:"qtyIssued"`
}

// PurchaseSummary totals restock spend, converted with the current rate
type PurchaseSummary struct {
	TotalValueEUR  float64 `json:"totalValueEur"`
	TotalValueGHS  float64 `json:"totalValueGhs"`
	EURGHSRate     float64 `json:"eurGhsRate"`
	RateIsFallback bool    `json:"rateIsFallback"`
}

// Dashboard is the metrics payload behind the dashboard screen
type Dashboard struct {
	StockLevels     []StockLevel     `json:"stockLevels"`
	PopularProducts []PopularProduct `json:"popularProducts"`
	PurchaseSummary PurchaseSummary  `json:"purchaseSummary"`
	PendingOrders   int              `json:"pendingOrders"`
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.Products(r.Context())

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	rate, isFallback := s.ratePoller.RateOrFallback()

	dashboard := Dashboard{
		StockLevels:     stockLevels(products),
		PopularProducts: popularProducts(products, 5),
		PurchaseSummary: purchaseSummary(products, rate, isFallback),
		PendingOrders:   s.pendingPoller.Count(),
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: dashboard})
}

func stockLevels(products []models.Product) []StockLevel {
	levels := make([]StockLevel, 0, len(products))

	for _, p := range products {
		levels = append(levels, StockLevel{
			ProductName:   p.ProductName,
			StockQuantity: p.StockQuantity,
		})
	}

	return levels
}

// popularProducts ranks by total quantity issued across each product's
// transactions and keeps the top n
func popularProducts(products []models.Product, n int) []PopularProduct {
	ranked := make([]PopularProduct, 0, len(products))

	for _, p := range products {
		var issued float64

		for _, t := range p.Transactions {
			if t.Type == models.TransactionIssue {
				issued += t.QtyIssued
			}
		}

		ranked = append(ranked, PopularProduct{ProductName: p.ProductName, QtyIssued: issued})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].QtyIssued > ranked[j].QtyIssued
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}

// purchaseSummary totals the EUR value of all receipts and converts to
// GHS. Values derived from the fallback rate are labelled as such.
func purchaseSummary(products []models.Product, rate float64, isFallback bool) PurchaseSummary {
	var totalEUR float64

	for _, p := range products {
		for _, t := range p.Transactions {
			if t.Type == models.TransactionRestock {
				totalEUR += t.ValueInEuro
			}
		}
	}

	return PurchaseSummary{
		TotalValueEUR:  totalEUR,
		TotalValueGHS:  totalEUR * rate,
		EURGHSRate:     rate,
		RateIsFallback: isFallback,
	}
}
