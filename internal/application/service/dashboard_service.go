package service

import (
	"context"
	"time"

	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/sangkips/salesdoc-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	DefaultTrendDays   = 30
	MaxTrendDays       = 366
	DefaultTrendMonths = 12
	MaxTrendMonths     = 36
	DefaultRankLimit   = 5
	MaxRankLimit       = 50
)

// DashboardService provides the sales overview of a business
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo, now: time.Now}
}

// DashboardSummary holds the headline figures. Sales are invoices that are
// not canceled, dated in the month.
type DashboardSummary struct {
	MonthlySales    decimal.Decimal          `json:"monthly_sales"`
	LastMonthSales  decimal.Decimal          `json:"last_month_sales"`
	SalesGrowth     float64                  `json:"sales_growth"`
	PendingInvoices int64                    `json:"pending_invoices"`
	Overdue         repository.OverdueResult `json:"overdue"`
	ByStatus        []repository.StatusTotal `json:"by_status"`
}

// SalesPoint is the sales total of one day ("2006-01-02") or month ("2006-01")
type SalesPoint struct {
	Period string          `json:"period"`
	Total  decimal.Decimal `json:"total"`
}

// Ranking lists the best selling line items and customers
type Ranking struct {
	TopProducts  []repository.TopProductResult  `json:"top_products"`
	TopCustomers []repository.TopCustomerResult `json:"top_customers"`
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func clamp(n, def, hi int) int {
	switch {
	case n <= 0:
		return def
	case n > hi:
		return hi
	}
	return n
}

func sumSales(totals []repository.StatusTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		if t.Type == enum.DocumentTypeInvoice && t.Status != enum.DocumentStatusCanceled {
			sum = sum.Add(t.Total)
		}
	}
	return sum
}

// growth is the change from prev to cur in percent. Growth from nothing is
// 100, or 0 when both are nothing.
func growth(cur, prev decimal.Decimal) float64 {
	if prev.IsZero() {
		if cur.IsZero() {
			return 0
		}
		return 100
	}
	return cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

// GetSummary returns this month's sales against last month's, the open and
// overdue invoices and the all-time totals by type and status
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	if _, err := businessFromContext(ctx); err != nil {
		return nil, err
	}
	now := s.now()
	month := startOfMonth(now)

	current, err := s.analyticsRepo.TotalsByStatus(ctx, repository.Period{From: month, To: month.AddDate(0, 1, 0)})
	if err != nil {
		return nil, err
	}
	previous, err := s.analyticsRepo.TotalsByStatus(ctx, repository.Period{From: month.AddDate(0, -1, 0), To: month})
	if err != nil {
		return nil, err
	}
	all, err := s.analyticsRepo.TotalsByStatus(ctx, repository.Period{})
	if err != nil {
		return nil, err
	}
	overdue, err := s.analyticsRepo.Overdue(ctx, startOfDay(now))
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		MonthlySales:   sumSales(current),
		LastMonthSales: sumSales(previous),
		Overdue:        *overdue,
		ByStatus:       all,
	}
	summary.SalesGrowth = growth(summary.MonthlySales, summary.LastMonthSales)
	for _, t := range all {
		if t.Type == enum.DocumentTypeInvoice && t.Status == enum.DocumentStatusPending {
			summary.PendingInvoices += t.Count
		}
	}
	return summary, nil
}

// GetDailyTrend returns the sales of each of the last days days, today
// included, with empty days as zero
func (s *DashboardService) GetDailyTrend(ctx context.Context, days int) ([]SalesPoint, error) {
	if _, err := businessFromContext(ctx); err != nil {
		return nil, err
	}
	days = clamp(days, DefaultTrendDays, MaxTrendDays)
	today := startOfDay(s.now())
	from := today.AddDate(0, 0, -(days - 1))

	rows, err := s.analyticsRepo.DailySales(ctx, repository.Period{From: from, To: today.AddDate(0, 0, 1)})
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		key := r.Date.Format("2006-01-02")
		byDay[key] = byDay[key].Add(r.Total)
	}

	points := make([]SalesPoint, 0, days)
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		points = append(points, SalesPoint{Period: key, Total: byDay[key]})
	}
	return points, nil
}

// GetMonthlyTrend returns the sales of each of the last months months, this
// month included, with empty months as zero
func (s *DashboardService) GetMonthlyTrend(ctx context.Context, months int) ([]SalesPoint, error) {
	if _, err := businessFromContext(ctx); err != nil {
		return nil, err
	}
	months = clamp(months, DefaultTrendMonths, MaxTrendMonths)
	current := startOfMonth(s.now())
	from := current.AddDate(0, -(months - 1), 0)

	rows, err := s.analyticsRepo.DailySales(ctx, repository.Period{From: from, To: current.AddDate(0, 1, 0)})
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]decimal.Decimal, months)
	for _, r := range rows {
		key := r.Date.Format("2006-01")
		byMonth[key] = byMonth[key].Add(r.Total)
	}

	points := make([]SalesPoint, 0, months)
	for m := from; !m.After(current); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		points = append(points, SalesPoint{Period: key, Total: byMonth[key]})
	}
	return points, nil
}

// GetRanking returns the best selling line items and customers of all time
func (s *DashboardService) GetRanking(ctx context.Context, limit int) (*Ranking, error) {
	if _, err := businessFromContext(ctx); err != nil {
		return nil, err
	}
	limit = clamp(limit, DefaultRankLimit, MaxRankLimit)

	products, err := s.analyticsRepo.TopProducts(ctx, repository.Period{}, limit)
	if err != nil {
		return nil, err
	}
	customers, err := s.analyticsRepo.TopCustomers(ctx, repository.Period{}, limit)
	if err != nil {
		return nil, err
	}
	return &Ranking{TopProducts: products, TopCustomers: customers}, nil
}
