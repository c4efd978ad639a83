package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/salesdoc-api/pkg/pagination"
)

type ctxKey string

// BusinessIDKey is the context key for the issuing business ID
const BusinessIDKey ctxKey = "business_id"

// BusinessScope returns a GORM scope that filters by the business in ctx.
// Without a business in ctx the scope matches nothing.
func BusinessScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		businessID, ok := GetBusinessID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("business_id = ?", businessID)
	}
}

// WithBusiness adds business ID to context
func WithBusiness(ctx context.Context, businessID uuid.UUID) context.Context {
	return context.WithValue(ctx, BusinessIDKey, businessID)
}

// GetBusinessID extracts business ID from context
func GetBusinessID(ctx context.Context) (uuid.UUID, bool) {
	businessID, ok := ctx.Value(BusinessIDKey).(uuid.UUID)
	if !ok || businessID == uuid.Nil {
		return uuid.Nil, false
	}
	return businessID, true
}

// Search matches term case-insensitively against any of the columns.
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + term + "%"
		cond := db.Session(&gorm.Session{NewDB: true})
		for i, col := range columns {
			if i == 0 {
				cond = cond.Where(col+" ILIKE ?", like)
			} else {
				cond = cond.Or(col+" ILIKE ?", like)
			}
		}
		return db.Where(cond)
	}
}

// Paginate applies the offset and limit of params.
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// first loads one row of T by id within the business in ctx, or nil when
// there is none.
func first[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var out T
	err := db.WithContext(ctx).Scopes(BusinessScope(ctx)).First(&out, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
