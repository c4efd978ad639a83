package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/sangkips/salesdoc-api/pkg/pagination"
)

// DocumentRepository defines the interface for sales document data operations
type DocumentRepository interface {
	// Create stores the document together with its items
	Create(ctx context.Context, doc *entity.SalesDocument) error
	// GetByID returns the document with its items in position order
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesDocument, error)
	// GetByNumber looks a number up across live and deleted documents, since
	// a deleted document keeps its number
	GetByNumber(ctx context.Context, docType enum.DocumentType, number string) (*entity.SalesDocument, error)
	// Update saves the header and replaces the items
	Update(ctx context.Context, doc *entity.SalesDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.SalesDocument, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error
	// CountWithPrefix counts documents of a type, deleted ones included, whose
	// number starts with prefix
	CountWithPrefix(ctx context.Context, docType enum.DocumentType, prefix string) (int64, error)
}

// DocumentFilterParams contains filtering parameters for document queries
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.DocumentType
	Status     *enum.DocumentStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}
