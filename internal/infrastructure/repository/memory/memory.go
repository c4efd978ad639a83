// Package memory holds map-backed repositories with the same business
// scoping as the gorm ones. They back DB_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	domainRepo "github.com/sangkips/salesdoc-api/internal/domain/repository"
	infraRepo "github.com/sangkips/salesdoc-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdoc-api/pkg/pagination"
)

func scoped(ctx context.Context, businessID uuid.UUID) bool {
	id, ok := infraRepo.GetBusinessID(ctx)
	return ok && id == businessID
}

func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func page[T any](items []T, params *pagination.PaginationParams) []T {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()
	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func stamp(id *uuid.UUID, created, updated *time.Time) {
	now := time.Now()
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// BusinessRepository stores business profiles.
type BusinessRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Business
}

func NewBusinessRepository(seed ...entity.Business) *BusinessRepository {
	r := &BusinessRepository{items: map[uuid.UUID]entity.Business{}}
	for _, b := range seed {
		r.items[b.ID] = b
	}
	return r
}

func (r *BusinessRepository) Create(_ context.Context, b *entity.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	r.items[b.ID] = *b
	return nil
}

func (r *BusinessRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BusinessRepository) Update(ctx context.Context, b *entity.Business) error {
	return r.Create(ctx, b)
}

// CustomerRepository stores customers.
type CustomerRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{items: map[uuid.UUID]entity.Customer{}}
}

func (r *CustomerRepository) Create(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	r.items[c.ID] = *c
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok || !scoped(ctx, c.BusinessID) {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	return r.Create(ctx, c)
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok && scoped(ctx, c.BusinessID) {
		delete(r.items, id)
	}
	return nil
}

func (r *CustomerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Customer
	for _, c := range r.items {
		if !scoped(ctx, c.BusinessID) {
			continue
		}
		if search == "" || contains(c.Name, search) || contains(c.Phone, search) || contains(c.TaxID, search) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, params), int64(len(out)), nil
}

// ProductRepository stores the product catalog.
type ProductRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{items: map[uuid.UUID]entity.Product{}}
}

func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	r.items[p.ID] = *p
	return nil
}

func (r *ProductRepository) CreateBatch(ctx context.Context, products []entity.Product) error {
	for i := range products {
		if err := r.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok || !scoped(ctx, p.BusinessID) {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepository) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.Name == name && scoped(ctx, p.BusinessID) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.Create(ctx, p)
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok && scoped(ctx, p.BusinessID) {
		delete(r.items, id)
	}
	return nil
}

func (r *ProductRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	all, _ := r.All(ctx)
	var out []entity.Product
	for _, p := range all {
		switch {
		case params.Uncategorized && p.CategoryID != nil:
		case !params.Uncategorized && params.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *params.CategoryID):
		case params.Search != "" && !contains(p.Name, params.Search) && !contains(p.Detail, params.Search):
		default:
			out = append(out, p)
		}
	}
	return page(out, params.Pagination), int64(len(out)), nil
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	all, _ := r.All(ctx)
	var n int64
	for _, p := range all {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// CategoryRepository stores product categories.
type CategoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{items: map[uuid.UUID]entity.Category{}}
}

var _ domainRepo.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	r.items[c.ID] = *c
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok || !scoped(ctx, c.BusinessID) {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) && scoped(ctx, c.BusinessID) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	return r.Create(ctx, c)
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok && scoped(ctx, c.BusinessID) {
		delete(r.items, id)
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Category
	for _, c := range r.items {
		if scoped(ctx, c.BusinessID) && (search == "" || contains(c.Name, search)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, params), int64(len(out)), nil
}

func (r *ProductRepository) All(ctx context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Product{}
	for _, p := range r.items {
		if scoped(ctx, p.BusinessID) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DocumentRepository stores sales documents. Deleted documents are kept
// aside so they still count towards running numbers.
type DocumentRepository struct {
	mu      sync.RWMutex
	items   map[uuid.UUID]entity.SalesDocument
	deleted map[uuid.UUID]entity.SalesDocument
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		items:   map[uuid.UUID]entity.SalesDocument{},
		deleted: map[uuid.UUID]entity.SalesDocument{},
	}
}

var _ domainRepo.DocumentRepository = (*DocumentRepository)(nil)

func (r *DocumentRepository) Create(_ context.Context, d *entity.SalesDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(d)
	return nil
}

func (r *DocumentRepository) store(d *entity.SalesDocument) {
	stamp(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	for i := range d.Items {
		if d.Items[i].ID == uuid.Nil {
			d.Items[i].ID = uuid.New()
		}
		d.Items[i].DocumentID = d.ID
	}
	cp := *d
	cp.Items = append([]entity.SalesDocumentItem(nil), d.Items...)
	r.items[d.ID] = cp
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.items[id]
	if !ok || !scoped(ctx, d.BusinessID) {
		return nil, nil
	}
	d.Items = append([]entity.SalesDocumentItem(nil), d.Items...)
	sort.SliceStable(d.Items, func(i, j int) bool { return d.Items[i].Position < d.Items[j].Position })
	return &d, nil
}

func (r *DocumentRepository) GetByNumber(ctx context.Context, docType enum.DocumentType, number string) (*entity.SalesDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, set := range []map[uuid.UUID]entity.SalesDocument{r.items, r.deleted} {
		for _, d := range set {
			if d.Type == docType && d.Number == number && scoped(ctx, d.BusinessID) {
				return &d, nil
			}
		}
	}
	return nil, nil
}

func (r *DocumentRepository) Update(ctx context.Context, d *entity.SalesDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.items[d.ID]; !ok || !scoped(ctx, cur.BusinessID) {
		return nil
	}
	r.store(d)
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.items[id]; ok && scoped(ctx, d.BusinessID) {
		r.deleted[id] = d
		delete(r.items, id)
	}
	return nil
}

func documentLess(sortBy string) func(a, b *entity.SalesDocument) bool {
	switch sortBy {
	case "date":
		return func(a, b *entity.SalesDocument) bool { return a.Date.Before(b.Date) }
	case "number":
		return func(a, b *entity.SalesDocument) bool { return a.Number < b.Number }
	case "total":
		return func(a, b *entity.SalesDocument) bool { return a.Total.LessThan(b.Total) }
	default:
		return func(a, b *entity.SalesDocument) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

func (r *DocumentRepository) List(ctx context.Context, params *domainRepo.DocumentFilterParams) ([]entity.SalesDocument, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.SalesDocument
	for _, d := range r.items {
		switch {
		case !scoped(ctx, d.BusinessID):
		case params.Type != nil && d.Type != *params.Type:
		case params.Status != nil && d.Status != *params.Status:
		case params.CustomerID != nil && (d.CustomerID == nil || *d.CustomerID != *params.CustomerID):
		case params.Search != "" && !contains(d.Number, params.Search) && !contains(d.Customer.Name, params.Search):
		default:
			d.Items = nil
			out = append(out, d)
		}
	}

	less := documentLess(params.SortBy)
	asc := strings.EqualFold(params.SortOrder, "asc")
	sort.SliceStable(out, func(i, j int) bool {
		if asc {
			return less(&out[i], &out[j])
		}
		return less(&out[j], &out[i])
	})
	return page(out, params.Pagination), int64(len(out)), nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok || !scoped(ctx, d.BusinessID) {
		return nil
	}
	d.Status = status
	d.UpdatedAt = time.Now()
	r.items[id] = d
	return nil
}

func (r *DocumentRepository) CountWithPrefix(ctx context.Context, docType enum.DocumentType, prefix string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, set := range []map[uuid.UUID]entity.SalesDocument{r.items, r.deleted} {
		for _, d := range set {
			if d.Type == docType && strings.HasPrefix(d.Number, prefix) && scoped(ctx, d.BusinessID) {
				n++
			}
		}
	}
	return n, nil
}

// AnalyticsRepository aggregates the documents of a DocumentRepository.
type AnalyticsRepository struct {
	docs *DocumentRepository
}

func NewAnalyticsRepository(docs *DocumentRepository) *AnalyticsRepository {
	return &AnalyticsRepository{docs: docs}
}

var _ domainRepo.AnalyticsRepository = (*AnalyticsRepository)(nil)

func inPeriod(t time.Time, p domainRepo.Period) bool {
	return (p.From.IsZero() || !t.Before(p.From)) && (p.To.IsZero() || t.Before(p.To))
}

func isSale(d *entity.SalesDocument) bool {
	return d.Type == enum.DocumentTypeInvoice && d.Status != enum.DocumentStatusCanceled
}

// each calls fn for every live document of the business in ctx dated within p.
func (r *AnalyticsRepository) each(ctx context.Context, p domainRepo.Period, fn func(d *entity.SalesDocument)) {
	r.docs.mu.RLock()
	defer r.docs.mu.RUnlock()
	for _, d := range r.docs.items {
		if scoped(ctx, d.BusinessID) && inPeriod(d.Date, p) {
			fn(&d)
		}
	}
}

func (r *AnalyticsRepository) TotalsByStatus(ctx context.Context, period domainRepo.Period) ([]domainRepo.StatusTotal, error) {
	type key struct {
		t enum.DocumentType
		s enum.DocumentStatus
	}
	groups := map[key]*domainRepo.StatusTotal{}
	r.each(ctx, period, func(d *entity.SalesDocument) {
		k := key{d.Type, d.Status}
		g, ok := groups[k]
		if !ok {
			g = &domainRepo.StatusTotal{Type: d.Type, Status: d.Status}
			groups[k] = g
		}
		g.Count++
		g.Total = g.Total.Add(d.Total)
	})

	out := []domainRepo.StatusTotal{}
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}

func (r *AnalyticsRepository) DailySales(ctx context.Context, period domainRepo.Period) ([]domainRepo.DailySalesResult, error) {
	days := map[time.Time]decimal.Decimal{}
	r.each(ctx, period, func(d *entity.SalesDocument) {
		if isSale(d) {
			day := time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, d.Date.Location())
			days[day] = days[day].Add(d.Total)
		}
	})

	out := []domainRepo.DailySalesResult{}
	for day, total := range days {
		out = append(out, domainRepo.DailySalesResult{Date: day, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *AnalyticsRepository) TopProducts(ctx context.Context, period domainRepo.Period, limit int) ([]domainRepo.TopProductResult, error) {
	groups := map[string]*domainRepo.TopProductResult{}
	r.each(ctx, period, func(d *entity.SalesDocument) {
		if !isSale(d) {
			return
		}
		for _, item := range d.Items {
			g, ok := groups[item.Name]
			if !ok {
				g = &domainRepo.TopProductResult{Name: item.Name}
				groups[item.Name] = g
			}
			if item.Unit > g.Unit {
				g.Unit = item.Unit
			}
			g.Quantity = g.Quantity.Add(item.Quantity)
			g.Revenue = g.Revenue.Add(item.Subtotal)
		}
	})

	out := []domainRepo.TopProductResult{}
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return limitTo(out, limit), nil
}

func (r *AnalyticsRepository) TopCustomers(ctx context.Context, period domainRepo.Period, limit int) ([]domainRepo.TopCustomerResult, error) {
	groups := map[string]*domainRepo.TopCustomerResult{}
	r.each(ctx, period, func(d *entity.SalesDocument) {
		if !isSale(d) || d.Customer.Name == "" {
			return
		}
		g, ok := groups[d.Customer.Name]
		if !ok {
			g = &domainRepo.TopCustomerResult{Name: d.Customer.Name}
			groups[d.Customer.Name] = g
		}
		g.Total = g.Total.Add(d.Total)
		g.Documents++
	})

	out := []domainRepo.TopCustomerResult{}
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return limitTo(out, limit), nil
}

func (r *AnalyticsRepository) Overdue(ctx context.Context, asOf time.Time) (*domainRepo.OverdueResult, error) {
	res := &domainRepo.OverdueResult{}
	r.each(ctx, domainRepo.Period{}, func(d *entity.SalesDocument) {
		unpaid := d.Status == enum.DocumentStatusPending || d.Status == enum.DocumentStatusApproved
		if isSale(d) && unpaid && d.DueDate != nil && d.DueDate.Before(asOf) {
			res.Count++
			res.Amount = res.Amount.Add(d.Total)
		}
	})
	return res, nil
}

func limitTo[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
