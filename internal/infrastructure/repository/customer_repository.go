package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	domainRepo "github.com/sangkips/salesdoc-api/internal/domain/repository"
	"github.com/sangkips/salesdoc-api/pkg/pagination"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return first[entity.Customer](ctx, r.db, id)
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(BusinessScope(ctx)).Delete(&entity.Customer{}, "id = ?", id).Error
}

// List searches name, phone and tax id, ordered by name.
func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Scopes(BusinessScope(ctx), Search(search, "name", "phone", "tax_id"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	customers := []entity.Customer{}
	err := query.Scopes(Paginate(params)).Order("name").Find(&customers).Error
	return customers, total, err
}
