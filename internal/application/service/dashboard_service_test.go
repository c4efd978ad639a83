package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/sangkips/salesdoc-api/internal/domain/repository"
	"github.com/sangkips/salesdoc-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSales files a small ledger around 15 Jan 2024 and returns a dashboard
// over it.
func seedSales(t *testing.T) (*documentFixture, *DashboardService) {
	t.Helper()
	f := newDocumentFixture(t)

	add := func(typ enum.DocumentType, date time.Time, customer, item string, qty, price string, status enum.DocumentStatus) {
		t.Helper()
		doc, err := f.svc.CreateDocument(f.ctx, &DocumentInput{
			Type:     typ,
			Date:     &date,
			Customer: &entity.CustomerSnapshot{Name: customer},
			Items:    []ItemInput{{Name: item, Unit: "ชิ้น", Quantity: d(qty), UnitPrice: ptr(d(price))}},
		})
		require.NoError(t, err)
		if status != enum.DocumentStatusPending {
			_, err = f.svc.UpdateStatus(f.ctx, doc.ID, status)
			require.NoError(t, err)
		}
	}
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	add(enum.DocumentTypeInvoice, day(2024, 1, 10), "ร้าน ก", "งานพิมพ์", "2", "100", enum.DocumentStatusPending)
	add(enum.DocumentTypeInvoice, day(2024, 1, 15), "ร้าน ข", "ป้าย", "1", "500", enum.DocumentStatusPaid)
	add(enum.DocumentTypeInvoice, day(2023, 12, 20), "ร้าน ก", "งานพิมพ์", "3", "100", enum.DocumentStatusPending)
	add(enum.DocumentTypeInvoice, day(2023, 11, 1), "ร้าน ค", "ป้าย", "1", "1000", enum.DocumentStatusCanceled)
	add(enum.DocumentTypeInvoice, day(2023, 11, 1), "ร้าน ก", "งานพิมพ์", "1", "50", enum.DocumentStatusPending)
	add(enum.DocumentTypeQuotation, day(2024, 1, 12), "ร้าน ง", "ป้าย", "1", "9999", enum.DocumentStatusPending)

	dash := NewDashboardService(memory.NewAnalyticsRepository(f.docs))
	dash.now = f.svc.now
	return f, dash
}

func TestDashboardSummary(t *testing.T) {
	f, dash := seedSales(t)

	summary, err := dash.GetSummary(f.ctx)
	require.NoError(t, err)
	assert.True(t, summary.MonthlySales.Equal(d("700")), summary.MonthlySales.String())
	assert.True(t, summary.LastMonthSales.Equal(d("300")), summary.LastMonthSales.String())
	assert.InDelta(t, 133.3, summary.SalesGrowth, 0.001)
	assert.Equal(t, int64(3), summary.PendingInvoices)
	assert.Equal(t, int64(1), summary.Overdue.Count)
	assert.True(t, summary.Overdue.Amount.Equal(d("50")))

	byStatus := map[string]repository.StatusTotal{}
	for _, s := range summary.ByStatus {
		byStatus[s.Type.String()+"/"+s.Status.String()] = s
	}
	require.Len(t, byStatus, 4)
	assert.Equal(t, int64(3), byStatus[enum.DocumentTypeInvoice.String()+"/Pending"].Count)
	assert.True(t, byStatus[enum.DocumentTypeInvoice.String()+"/Pending"].Total.Equal(d("550")))
	assert.True(t, byStatus[enum.DocumentTypeInvoice.String()+"/Canceled"].Total.Equal(d("1000")))
	assert.Equal(t, int64(1), byStatus[enum.DocumentTypeQuotation.String()+"/Pending"].Count)
}

func TestDashboardTrends(t *testing.T) {
	f, dash := seedSales(t)

	daily, err := dash.GetDailyTrend(f.ctx, 7)
	require.NoError(t, err)
	require.Len(t, daily, 7)
	assert.Equal(t, "2024-01-09", daily[0].Period)
	assert.Equal(t, "2024-01-15", daily[6].Period)
	assert.True(t, daily[0].Total.IsZero())
	assert.True(t, daily[1].Total.Equal(d("200")))
	assert.True(t, daily[6].Total.Equal(d("500")))

	monthly, err := dash.GetMonthlyTrend(f.ctx, 3)
	require.NoError(t, err)
	require.Len(t, monthly, 3)
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01"},
		[]string{monthly[0].Period, monthly[1].Period, monthly[2].Period})
	assert.True(t, monthly[0].Total.Equal(d("50")), "canceled invoices are not sales")
	assert.True(t, monthly[1].Total.Equal(d("300")))
	assert.True(t, monthly[2].Total.Equal(d("700")))

	defaults, err := dash.GetDailyTrend(f.ctx, 0)
	require.NoError(t, err)
	assert.Len(t, defaults, DefaultTrendDays)
}

func TestDashboardRanking(t *testing.T) {
	f, dash := seedSales(t)

	ranking, err := dash.GetRanking(f.ctx, 1)
	require.NoError(t, err)
	require.Len(t, ranking.TopProducts, 1)
	assert.Equal(t, "งานพิมพ์", ranking.TopProducts[0].Name)
	assert.True(t, ranking.TopProducts[0].Quantity.Equal(d("6")))
	assert.True(t, ranking.TopProducts[0].Revenue.Equal(d("550")))

	require.Len(t, ranking.TopCustomers, 1)
	assert.Equal(t, "ร้าน ก", ranking.TopCustomers[0].Name)
	assert.Equal(t, int64(3), ranking.TopCustomers[0].Documents)

	all, err := dash.GetRanking(f.ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all.TopProducts, 2)
	assert.Len(t, all.TopCustomers, 2)
}

func TestDashboardNeedsBusiness(t *testing.T) {
	dash := NewDashboardService(memory.NewAnalyticsRepository(memory.NewDocumentRepository()))

	_, err := dash.GetSummary(context.Background())
	assert.Equal(t, http.StatusBadRequest, appCode(t, err))

	f := newDocumentFixture(t)
	summary, err := dash.GetSummary(f.ctx)
	require.NoError(t, err)
	assert.True(t, summary.MonthlySales.IsZero())
	assert.Zero(t, summary.SalesGrowth)
	assert.Empty(t, summary.ByStatus)
}
