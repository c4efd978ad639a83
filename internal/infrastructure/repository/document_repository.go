package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salesdoc-api/internal/domain/repository"
	"gorm.io/gorm"
)

var documentSortColumns = map[string]string{
	"date":       "date",
	"number":     "number",
	"total":      "total",
	"created_at": "created_at",
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new sales document repository
func NewDocumentRepository(db *gorm.DB) domainRepo.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.SalesDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesDocument, error) {
	var doc entity.SalesDocument
	err := r.db.WithContext(ctx).
		Scopes(BusinessScope(ctx)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) GetByNumber(ctx context.Context, docType enum.DocumentType, number string) (*entity.SalesDocument, error) {
	var doc entity.SalesDocument
	err := r.db.WithContext(ctx).Unscoped().
		Scopes(BusinessScope(ctx)).
		First(&doc, "type = ? AND number = ?", docType, number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doc, err
}

func (r *documentRepository) Update(ctx context.Context, doc *entity.SalesDocument) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", doc.ID).Delete(&entity.SalesDocumentItem{}).Error; err != nil {
			return err
		}
		for i := range doc.Items {
			doc.Items[i].ID = uuid.Nil
			doc.Items[i].DocumentID = doc.ID
		}
		if len(doc.Items) > 0 {
			if err := tx.Create(&doc.Items).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Items").Save(doc).Error
	})
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(BusinessScope(ctx)).Delete(&entity.SalesDocument{}, "id = ?", id).Error
}

func (r *documentRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.SalesDocument, int64, error) {
	var docs []entity.SalesDocument
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SalesDocument{}).Scopes(BusinessScope(ctx))

	query = query.Scopes(Search(params.Search, "number", "customer_name"))
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	if col, ok := documentSortColumns[params.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order(sortBy + " " + sortOrder).
		Find(&docs).Error

	return docs, total, err
}

func (r *documentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	return r.db.WithContext(ctx).Model(&entity.SalesDocument{}).
		Scopes(BusinessScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *documentRepository) CountWithPrefix(ctx context.Context, docType enum.DocumentType, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.SalesDocument{}).
		Scopes(BusinessScope(ctx)).
		Where("type = ? AND number LIKE ?", docType, prefix+"%").
		Count(&count).Error
	return count, err
}
