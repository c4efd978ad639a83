package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salesdoc-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// periodScope filters on the document date column col.
func periodScope(col string, p domainRepo.Period) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !p.From.IsZero() {
			db = db.Where(col+" >= ?", p.From)
		}
		if !p.To.IsZero() {
			db = db.Where(col+" < ?", p.To)
		}
		return db
	}
}

// sales limits a query over sales_documents aliased d to live invoices that
// are not canceled.
func sales(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		businessID, ok := GetBusinessID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("d.business_id = ? AND d.deleted_at IS NULL AND d.type = ? AND d.status <> ?",
			businessID, enum.DocumentTypeInvoice, enum.DocumentStatusCanceled)
	}
}

func (r *analyticsRepository) TotalsByStatus(ctx context.Context, period domainRepo.Period) ([]domainRepo.StatusTotal, error) {
	results := []domainRepo.StatusTotal{}
	err := r.db.WithContext(ctx).Model(&entity.SalesDocument{}).
		Scopes(BusinessScope(ctx), periodScope("date", period)).
		Select("type, status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Group("type, status").
		Order("type, status").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) DailySales(ctx context.Context, period domainRepo.Period) ([]domainRepo.DailySalesResult, error) {
	results := []domainRepo.DailySalesResult{}
	err := r.db.WithContext(ctx).Table("sales_documents AS d").
		Scopes(sales(ctx), periodScope("d.date", period)).
		Select("d.date AS date, COALESCE(SUM(d.total), 0) AS total").
		Group("d.date").
		Order("d.date").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) TopProducts(ctx context.Context, period domainRepo.Period, limit int) ([]domainRepo.TopProductResult, error) {
	results := []domainRepo.TopProductResult{}
	err := r.db.WithContext(ctx).Table("sales_document_items AS i").
		Joins("JOIN sales_documents d ON d.id = i.document_id").
		Scopes(sales(ctx), periodScope("d.date", period)).
		Select("i.name AS name, MAX(i.unit) AS unit, COALESCE(SUM(i.quantity), 0) AS quantity, COALESCE(SUM(i.subtotal), 0) AS revenue").
		Group("i.name").
		Order("revenue DESC, i.name").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) TopCustomers(ctx context.Context, period domainRepo.Period, limit int) ([]domainRepo.TopCustomerResult, error) {
	results := []domainRepo.TopCustomerResult{}
	err := r.db.WithContext(ctx).Table("sales_documents AS d").
		Scopes(sales(ctx), periodScope("d.date", period)).
		Where("d.customer_name <> ''").
		Select("d.customer_name AS name, COALESCE(SUM(d.total), 0) AS total, COUNT(*) AS documents").
		Group("d.customer_name").
		Order("total DESC, d.customer_name").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) Overdue(ctx context.Context, asOf time.Time) (*domainRepo.OverdueResult, error) {
	var result domainRepo.OverdueResult
	err := r.db.WithContext(ctx).Table("sales_documents AS d").
		Scopes(sales(ctx)).
		Where("d.status IN ? AND d.due_date < ?",
			[]enum.DocumentStatus{enum.DocumentStatusPending, enum.DocumentStatusApproved}, asOf).
		Select("COUNT(*) AS count, COALESCE(SUM(d.total), 0) AS amount").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
