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

// CategoryService handles product category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// categoryName cleans name and rejects blanks and the reserved "no category" label.
func categoryName(name string) (string, error) {
	name = utils.SanitizeText(name)
	switch name {
	case "":
		return "", apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "กรุณาระบุชื่อหมวดหมู่"}})
	case entity.UncategorizedLabel:
		return "", apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "name is reserved"}})
	}
	return name, nil
}

// ensureUniqueName fails when another category of the business already uses name.
func (s *CategoryService) ensureUniqueName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("ชื่อหมวดหมู่นี้มีอยู่แล้ว")
	}
	return nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	businessID, err := businessFromContext(ctx)
	if err != nil {
		return nil, err
	}
	name, err = categoryName(name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &entity.Category{BusinessID: businessID, Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists the categories of the business in ctx
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	params.Validate()
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err = categoryName(name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, name, category.ID); err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a category that no product is filed under
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	inUse, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return apperror.NewConflictError("ไม่สามารถลบหมวดหมู่ได้เนื่องจากมีการใช้งานอยู่")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// resolveByName finds a category by name for the spreadsheet import and
// creates it when missing. Blank names and the "no category" label give nil.
func (s *CategoryService) resolveByName(ctx context.Context, name string) (*uuid.UUID, error) {
	name = utils.SanitizeText(name)
	if name == "" || name == entity.UncategorizedLabel {
		return nil, nil
	}
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &existing.ID, nil
	}
	created, err := s.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	return &created.ID, nil
}
