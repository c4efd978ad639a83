package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
)

// BusinessRepository defines the interface for business profile data operations
type BusinessRepository interface {
	// Create creates a new business
	Create(ctx context.Context, business *entity.Business) error

	// GetByID retrieves a business by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// Update updates an existing business
	Update(ctx context.Context, business *entity.Business) error
}
