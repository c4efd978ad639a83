package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/repository"
	"github.com/sangkips/salesdoc-api/pkg/apperror"
	"github.com/sangkips/salesdoc-api/pkg/pagination"
	"github.com/sangkips/salesdoc-api/pkg/utils"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create or update customer input. Nil fields
// are left unchanged on update.
type CustomerInput struct {
	Name    *string
	Address *string
	Phone   *string
	TaxID   *string
	Email   *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	businessID, err := businessFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if input.Name == nil || utils.SanitizeText(*input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "name is required"}})
	}

	customer := &entity.Customer{BusinessID: businessID}
	applyCustomerInput(customer, input)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists the customers of the business in ctx
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params.Validate()
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	applyCustomerInput(customer, input)

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer. Documents keep their customer snapshot.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

func applyCustomerInput(c *entity.Customer, input *CustomerInput) {
	if input.Name != nil {
		c.Name = utils.SanitizeText(*input.Name)
	}
	if input.Address != nil {
		c.Address = utils.SanitizeText(*input.Address)
	}
	if input.Phone != nil {
		c.Phone = utils.SanitizeText(*input.Phone)
	}
	if input.TaxID != nil {
		c.TaxID = utils.SanitizeText(*input.TaxID)
	}
	if input.Email != nil {
		email := utils.SanitizeText(*input.Email)
		c.Email = &email
	}
}
