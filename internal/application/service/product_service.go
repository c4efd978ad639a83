package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/repository"
	"github.com/sangkips/salesdoc-api/pkg/apperror"
	"github.com/sangkips/salesdoc-api/pkg/pagination"
	"github.com/sangkips/salesdoc-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	categories  *CategoryService
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		categories:  NewCategoryService(categoryRepo, productRepo),
	}
}

// ProductInput represents the create or update product input. Nil fields
// are left unchanged on update. An empty CategoryID files the product under
// no category.
type ProductInput struct {
	Name       *string
	Price      *decimal.Decimal
	Detail     *string
	Unit       *string
	CategoryID *string
}

// ProductListFilter narrows ListProducts. CategoryID "none" lists the
// products without a category.
type ProductListFilter struct {
	Search     string
	CategoryID string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	businessID, err := businessFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if input.Name == nil || utils.SanitizeText(*input.Name) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "name", Message: "name is required"}})
	}

	product := &entity.Product{BusinessID: businessID}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.applyCategory(ctx, product, input.CategoryID); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByName(ctx, product.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product name already exists")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists the catalog of the business in ctx
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, filter ProductListFilter) (*pagination.PaginatedResult[entity.Product], error) {
	params.Validate()
	query := &repository.ProductFilterParams{Pagination: params, Search: filter.Search}
	switch filter.CategoryID {
	case "":
	case "none":
		query.Uncategorized = true
	default:
		id, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid category ID")
		}
		query.CategoryID = &id
	}

	products, total, err := s.productRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.applyCategory(ctx, product, input.CategoryID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product. Line items keep their copied fields.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func applyProductInput(p *entity.Product, input *ProductInput) error {
	if input.Price != nil {
		if input.Price.IsNegative() {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "price", Message: "price must not be negative"}})
		}
		p.Price = input.Price.Round(2)
	}
	if input.Name != nil {
		p.Name = utils.SanitizeText(*input.Name)
	}
	if input.Detail != nil {
		p.Detail = utils.SanitizeText(*input.Detail)
	}
	if input.Unit != nil {
		p.Unit = utils.SanitizeText(*input.Unit)
	}
	return nil
}

// applyCategory files p under the category named by raw. nil leaves p as is.
func (s *ProductService) applyCategory(ctx context.Context, p *entity.Product, raw *string) error {
	if raw == nil {
		return nil
	}
	id, err := utils.ParseOptionalUUID(*raw)
	if err != nil {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "category_id", Message: "invalid category ID"}})
	}
	if id == nil {
		p.CategoryID = nil
		p.Category = nil
		return nil
	}
	category, err := s.categories.categoryRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "category_id", Message: "category does not exist"}})
	}
	p.CategoryID = &category.ID
	p.Category = category
	return nil
}

// ImportRowError describes a spreadsheet row that was not imported
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a catalog import
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  []ImportRowError `json:"skipped"`
}

var importHeaders = map[string]string{
	"name":        "name",
	"product":     "name",
	"ชื่อสินค้า":  "name",
	"สินค้า":      "name",
	"price":       "price",
	"ราคา":        "price",
	"detail":      "detail",
	"description": "detail",
	"รายละเอียด":  "detail",
	"unit":        "unit",
	"หน่วย":       "unit",
	"category":    "category",
	"หมวดหมู่":    "category",
}

// ImportProducts reads the first sheet of an .xlsx workbook and adds every
// row whose name is not in the catalog yet. The first row is a header naming
// the name, price, detail, unit and category columns; without a recognizable
// header the columns are taken in that order. Unknown category names are
// created.
func (s *ProductService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	businessID, err := businessFromContext(ctx)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid spreadsheet: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	result := &ImportResult{Skipped: []ImportRowError{}}
	if len(rows) == 0 {
		return result, nil
	}

	columns, hasHeader := importColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}

	existing, err := s.productRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Name] = true
	}

	var products []entity.Product
	for i := start; i < len(rows); i++ {
		rowNum := i + 1
		cell := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(rows[i]) {
				return ""
			}
			return strings.TrimSpace(rows[i][idx])
		}

		name := utils.SanitizeText(cell("name"))
		if name == "" {
			if strings.TrimSpace(strings.Join(rows[i], "")) != "" {
				result.Skipped = append(result.Skipped, ImportRowError{Row: rowNum, Message: "name is empty"})
			}
			continue
		}
		if seen[name] {
			result.Skipped = append(result.Skipped, ImportRowError{Row: rowNum, Message: "product already exists"})
			continue
		}

		price := decimal.Zero
		if raw := strings.ReplaceAll(cell("price"), ",", ""); raw != "" {
			price, err = decimal.NewFromString(raw)
			if err != nil || price.IsNegative() {
				result.Skipped = append(result.Skipped, ImportRowError{Row: rowNum, Message: fmt.Sprintf("invalid price %q", raw)})
				continue
			}
		}

		categoryID, err := s.categories.resolveByName(ctx, cell("category"))
		if err != nil {
			return nil, err
		}

		seen[name] = true
		products = append(products, entity.Product{
			BusinessID: businessID,
			CategoryID: categoryID,
			Name:       name,
			Price:      price.Round(2),
			Detail:     utils.SanitizeText(cell("detail")),
			Unit:       utils.SanitizeText(cell("unit")),
		})
	}

	if len(products) > 0 {
		if err := s.productRepo.CreateBatch(ctx, products); err != nil {
			return nil, err
		}
	}
	result.Imported = len(products)
	return result, nil
}

func importColumns(header []string) (map[string]int, bool) {
	columns := map[string]int{}
	for i, h := range header {
		if field, ok := importHeaders[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}
	if _, ok := columns["name"]; ok {
		return columns, true
	}
	return map[string]int{"name": 0, "price": 1, "detail": 2, "unit": 3, "category": 4}, false
}
