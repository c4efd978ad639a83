package service

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/repository"
	infraRepo "github.com/sangkips/salesdoc-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdoc-api/pkg/apperror"
	"github.com/sangkips/salesdoc-api/pkg/utils"
)

var branchCodePattern = regexp.MustCompile(`^\d{5}$`)

// businessFromContext returns the business the request acts for
func businessFromContext(ctx context.Context) (uuid.UUID, error) {
	businessID, ok := infraRepo.GetBusinessID(ctx)
	if !ok {
		return uuid.Nil, apperror.NewBadRequestError("Business context required")
	}
	return businessID, nil
}

// BusinessService handles the issuing business profile
type BusinessService struct {
	businessRepo repository.BusinessRepository
}

// NewBusinessService creates a new business service
func NewBusinessService(businessRepo repository.BusinessRepository) *BusinessService {
	return &BusinessService{businessRepo: businessRepo}
}

// BusinessInput represents the create or update business input. Nil fields
// are left unchanged on update.
type BusinessInput struct {
	Name       *string
	BranchCode *string
	Logo       *string
	Address    *string
	TaxID      *string
	Phone      *string
	Banks      []entity.BankAccount
}

// CreateBusiness registers a new business. With a business in ctx the
// profile is created under that ID.
func (s *BusinessService) CreateBusiness(ctx context.Context, input *BusinessInput) (*entity.Business, error) {
	if input.Name == nil || utils.SanitizeText(*input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "name is required"}})
	}
	business := &entity.Business{BranchCode: entity.HeadOfficeBranch}
	if id, ok := infraRepo.GetBusinessID(ctx); ok {
		existing, err := s.businessRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Business profile already exists")
		}
		business.ID = id
	}
	if err := applyBusinessInput(business, input); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// GetProfile returns the business the request acts for
func (s *BusinessService) GetProfile(ctx context.Context) (*entity.Business, error) {
	businessID, err := businessFromContext(ctx)
	if err != nil {
		return nil, err
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	return business, nil
}

// UpdateProfile updates the business the request acts for
func (s *BusinessService) UpdateProfile(ctx context.Context, input *BusinessInput) (*entity.Business, error) {
	business, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if err := applyBusinessInput(business, input); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

func applyBusinessInput(b *entity.Business, input *BusinessInput) error {
	if input.BranchCode != nil {
		if !branchCodePattern.MatchString(*input.BranchCode) {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "branch_code", Message: "branch code must be 5 digits"}})
		}
		b.BranchCode = *input.BranchCode
	}
	if input.Name != nil {
		b.Name = utils.SanitizeText(*input.Name)
	}
	if input.Logo != nil {
		b.Logo = *input.Logo
	}
	if input.Address != nil {
		b.Address = utils.SanitizeText(*input.Address)
	}
	if input.TaxID != nil {
		b.TaxID = utils.SanitizeText(*input.TaxID)
	}
	if input.Phone != nil {
		b.Phone = utils.SanitizeText(*input.Phone)
	}
	if input.Banks != nil {
		banks := make(entity.BankAccounts, 0, len(input.Banks))
		for _, bank := range input.Banks {
			banks = append(banks, entity.BankAccount{
				BankName:      utils.SanitizeText(bank.BankName),
				AccountName:   utils.SanitizeText(bank.AccountName),
				AccountNumber: utils.SanitizeText(bank.AccountNumber),
			})
		}
		b.Banks = banks
	}
	return nil
}
