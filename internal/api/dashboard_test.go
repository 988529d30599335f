package api

import (
	"testing"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

func metricsCatalog() []models.Product {
	return []models.Product{
		{
			ID:            "prod-1",
			ProductName:   "Fertilizer",
			StockQuantity: 120,
			Transactions: []models.Transaction{
				{Type: models.TransactionRestock, QtyReceived: 200, ValueInEuro: 500},
				{Type: models.TransactionIssue, QtyIssued: 80},
			},
		},
		{
			ID:            "prod-2",
			ProductName:   "Seedlings",
			StockQuantity: 40,
			Transactions: []models.Transaction{
				{Type: models.TransactionRestock, QtyReceived: 60, ValueInEuro: 150},
				{Type: models.TransactionIssue, QtyIssued: 15},
				{Type: models.TransactionIssue, QtyIssued: 5},
			},
		},
		{
			ID:            "prod-3",
			ProductName:   "Twine",
			StockQuantity: 300,
		},
	}
}

func TestStockLevels(t *testing.T) {
	levels := stockLevels(metricsCatalog())

	if len(levels) != 3 {
		t.Fatalf("got %d levels, want 3", len(levels))
	}

	if levels[0].ProductName != "Fertilizer" || levels[0].StockQuantity != 120 {
		t.Fatalf("first level = %+v", levels[0])
	}
}

func TestPopularProducts_RanksByIssuedQuantity(t *testing.T) {
	ranked := popularProducts(metricsCatalog(), 5)

	if len(ranked) != 3 {
		t.Fatalf("got %d entries, want 3", len(ranked))
	}

	if ranked[0].ProductName != "Fertilizer" || ranked[0].QtyIssued != 80 {
		t.Fatalf("top product = %+v", ranked[0])
	}

	if ranked[1].ProductName != "Seedlings" || ranked[1].QtyIssued != 20 {
		t.Fatalf("second product = %+v", ranked[1])
	}

	if ranked[2].QtyIssued != 0 {
		t.Fatalf("product without issues ranked with %v", ranked[2].QtyIssued)
	}
}

func TestPopularProducts_TruncatesToTopN(t *testing.T) {
	ranked := popularProducts(metricsCatalog(), 1)

	if len(ranked) != 1 {
		t.Fatalf("got %d entries, want 1", len(ranked))
	}

	if ranked[0].ProductName != "Fertilizer" {
		t.Fatalf("top product = %+v", ranked[0])
	}
}

func TestPurchaseSummary_ConvertsWithLiveRate(t *testing.T) {
	summary := purchaseSummary(metricsCatalog(), 16.0, false)

	if summary.TotalValueEUR != 650 {
		t.Fatalf("total EUR = %v, want 650", summary.TotalValueEUR)
	}

	if summary.TotalValueGHS != 650*16.0 {
		t.Fatalf("total GHS = %v", summary.TotalValueGHS)
	}

	if summary.RateIsFallback {
		t.Fatalf("live rate labelled as fallback")
	}
}

func TestPurchaseSummary_LabelsFallbackRate(t *testing.T) {
	summary := purchaseSummary(metricsCatalog(), 17.05, true)

	if !summary.RateIsFallback {
		t.Fatalf("fallback rate not labelled")
	}

	if summary.EURGHSRate != 17.05 {
		t.Fatalf("rate = %v", summary.EURGHSRate)
	}
}
