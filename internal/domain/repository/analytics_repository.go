package repository

import (
	"context"
	"time"

	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Period bounds document dates as [From, To). A zero bound is open.
type Period struct {
	From time.Time
	To   time.Time
}

// StatusTotal is the count and stored total of documents of one type and status
type StatusTotal struct {
	Type   enum.DocumentType   `json:"type"`
	Status enum.DocumentStatus `json:"status"`
	Count  int64               `json:"count"`
	Total  decimal.Decimal     `json:"total"`
}

// DailySalesResult is the invoiced total of one day
type DailySalesResult struct {
	Date  time.Time
	Total decimal.Decimal
}

// TopProductResult is the invoiced quantity and revenue of one line item name
type TopProductResult struct {
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// TopCustomerResult is the invoiced total of one customer name
type TopCustomerResult struct {
	Name      string          `json:"name"`
	Total     decimal.Decimal `json:"total"`
	Documents int64           `json:"documents"`
}

// OverdueResult sums unpaid invoices past their due date
type OverdueResult struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// AnalyticsRepository defines the aggregation queries behind the dashboard.
// Sales are invoices that are not canceled.
type AnalyticsRepository interface {
	// TotalsByStatus groups every document type by status
	TotalsByStatus(ctx context.Context, period Period) ([]StatusTotal, error)

	// DailySales returns the days with sales, oldest first
	DailySales(ctx context.Context, period Period) ([]DailySalesResult, error)

	// TopProducts ranks line item names by revenue
	TopProducts(ctx context.Context, period Period, limit int) ([]TopProductResult, error)

	// TopCustomers ranks customer names by invoiced total
	TopCustomers(ctx context.Context, period Period, limit int) ([]TopCustomerResult, error)

	// Overdue sums pending or approved invoices due before asOf
	Overdue(ctx context.Context, asOf time.Time) (*OverdueResult, error)
}
