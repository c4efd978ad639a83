package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/sangkips/salesdoc-api/internal/domain/repository"
	"github.com/sangkips/salesdoc-api/pkg/apperror"
	"github.com/sangkips/salesdoc-api/pkg/pagination"
	"github.com/sangkips/salesdoc-api/pkg/thai"
	"github.com/sangkips/salesdoc-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// Quotation terms used when a quotation is created without parameters.
const (
	DefaultDeposit  = "60"
	DefaultDuration = "2-3"
)

// RemarkParams fills the blanks of the quotation terms.
type RemarkParams struct {
	Deposit  string `json:"deposit"`
	Duration string `json:"duration"`
	Bank     string `json:"bank"`
}

var (
	depositPattern  = regexp.MustCompile(`2\. มัดจ(?:ำ|ํา)ค่าสินค้า (.*?)%`)
	durationPattern = regexp.MustCompile(`3\. ระยะเวลาด(?:ำ|ํา)เนินการ (.*?) วัน`)
	bankPattern     = regexp.MustCompile(`4\. โอนเงินช(?:ำ|ํา)ระค่าสินค้า ที่ (.*)`)
)

// DefaultRemarkParams uses the first bank account of the business.
func DefaultRemarkParams(banks entity.BankAccounts) RemarkParams {
	p := RemarkParams{Deposit: DefaultDeposit, Duration: DefaultDuration}
	if bank, ok := banks.Default(); ok {
		p.Bank = BankLine(bank)
	}
	return p
}

// Remark renders the four numbered quotation terms.
func (p RemarkParams) Remark() string {
	return fmt.Sprintf("1. ราคาทีเสนอเป็นเงินบาทไทย\n"+
		"2. มัดจําค่าสินค้า %s%% ส่วนที่เหลือชําระทั้งหมดในวันส่งของ หรือ ติดตั้งแล้วเสร็จ\n"+
		"3. ระยะเวลาดําเนินการ %s วัน หลังจากได้รับ มัดจํา หรือระยะเวลาขึ้น อยู่กับปริมาณสินค้าทีลูกค้าสั่งซื้อ หรือตามเงือนไขอื่นๆ ตามที่ตกลงกัน\n"+
		"4. โอนเงินชําระค่าสินค้า ที่ %s",
		p.Deposit, p.Duration, p.Bank)
}

// ParseRemarkParams recovers the parameters of a remark written by Remark.
// Blanks that cannot be found keep the value from fallback.
func ParseRemarkParams(remark string, fallback RemarkParams) RemarkParams {
	p := fallback
	if m := depositPattern.FindStringSubmatch(remark); m != nil {
		p.Deposit = m[1]
	}
	if m := durationPattern.FindStringSubmatch(remark); m != nil {
		p.Duration = m[1]
	}
	if m := bankPattern.FindStringSubmatch(remark); m != nil {
		p.Bank = m[1]
	}
	return p
}

// BankLine formats an account the way remarks print it, e.g.
// "ธนาคารไทยพาณิชย์ ( ร้าน เอช แอนด์ ดี ) 146-279212-6".
func BankLine(b entity.BankAccount) string {
	name := ""
	if b.BankName != "" {
		name = "ธนาคาร" + b.BankName
	}
	return fmt.Sprintf("%s ( %s ) %s", name, b.AccountName, b.AccountNumber)
}

// DocumentNumberPrefix is the type prefix followed by the two-digit Buddhist
// year and the month of date, e.g. "QT-6701-".
func DocumentNumberPrefix(t enum.DocumentType, date time.Time) string {
	return fmt.Sprintf("%s-%02d%02d-", t.Prefix(), thai.BuddhistYear(date)%100, int(date.Month()))
}

// DraftDefaults are the values a blank document is started from.
type DraftDefaults struct {
	BusinessID uuid.UUID
	EmployeeID uuid.UUID
	Date       time.Time
	Profile    *entity.Business
}

// NewDraft builds a blank document of type t. It has no number and no items.
func NewDraft(t enum.DocumentType, d DraftDefaults) *entity.SalesDocument {
	date := d.Date
	if date.IsZero() {
		date = time.Now()
	}
	doc := &entity.SalesDocument{
		BusinessID: d.BusinessID,
		EmployeeID: d.EmployeeID,
		Type:       t,
		Date:       dateOnly(date),
		VatMode:    enum.VatModeNone,
		Status:     enum.DocumentStatusPending,
		Items:      []entity.SalesDocumentItem{},
	}

	var banks entity.BankAccounts
	if d.Profile != nil {
		banks = d.Profile.Banks
	}

	switch t {
	case enum.DocumentTypeQuotation:
		doc.Remark = DefaultRemarkParams(banks).Remark()
	case enum.DocumentTypeInvoice:
		doc.SetCredit(entity.DefaultCreditDays)
		if bank, ok := banks.Default(); ok {
			doc.Remark = "โอนเงินชําระค่าสินค้า ที่ " + BankLine(bank)
		}
	case enum.DocumentTypeBillingNote:
		payDate := doc.Date
		doc.Payment = entity.Payment{Method: enum.PaymentMethodCash, Date: &payDate}
	}
	return doc
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DocumentService handles sales document construction and editing
type DocumentService struct {
	docRepo      repository.DocumentRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	businessRepo repository.BusinessRepository
	now          func() time.Time
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	businessRepo repository.BusinessRepository,
) *DocumentService {
	return &DocumentService{
		docRepo:      docRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		businessRepo: businessRepo,
		now:          time.Now,
	}
}

// DocumentInput represents the create or update document input. Nil fields
// are left unchanged on update; a nil Items keeps the current lines.
type DocumentInput struct {
	Type           enum.DocumentType
	EmployeeID     uuid.UUID
	Number         string
	Date           *time.Time
	CreditDays     *int
	CustomerID     *uuid.UUID
	Customer       *entity.CustomerSnapshot
	VatMode        *enum.VatMode
	Items          []ItemInput
	Remark         *string
	RemarkParams   *RemarkParams
	InternalRemark *string
	Payment        *entity.Payment
}

// ItemInput is one requested line. With a ProductID the catalog fills the
// name, description, unit and price; explicit values win.
type ItemInput struct {
	ProductID   *uuid.UUID
	Name        string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// Draft returns a blank document for the business in ctx without saving it
func (s *DocumentService) Draft(ctx context.Context, t enum.DocumentType, employeeID uuid.UUID) (*entity.SalesDocument, error) {
	if !t.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid document type")
	}
	businessID, err := businessFromContext(ctx)
	if err != nil {
		return nil, err
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	doc := NewDraft(t, DraftDefaults{BusinessID: businessID, EmployeeID: employeeID, Date: s.now(), Profile: business})
	prefix := DocumentNumberPrefix(t, doc.Date)
	count, err := s.docRepo.CountWithPrefix(ctx, t, prefix)
	if err != nil {
		return nil, err
	}
	doc.Number = fmt.Sprintf("%s%04d", prefix, count+1)
	return doc, nil
}

// CreateDocument creates a new document for the business in ctx
func (s *DocumentService) CreateDocument(ctx context.Context, input *DocumentInput) (*entity.SalesDocument, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid document type")
	}
	businessID, err := businessFromContext(ctx)
	if err != nil {
		return nil, err
	}
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}
	doc := NewDraft(input.Type, DraftDefaults{
		BusinessID: businessID,
		EmployeeID: input.EmployeeID,
		Date:       date,
		Profile:    business,
	})

	if input.RemarkParams != nil && input.Remark == nil && input.Type == enum.DocumentTypeQuotation {
		params := ParseRemarkParams(doc.Remark, DefaultRemarkParams(nil))
		if input.RemarkParams.Bank == "" {
			input.RemarkParams.Bank = params.Bank
		}
	}

	if err := s.applyInput(ctx, doc, input); err != nil {
		return nil, err
	}
	if err := s.assignNumber(ctx, doc, input.Number); err != nil {
		return nil, err
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument retrieves a document with its items
func (s *DocumentService) GetDocument(ctx context.Context, id uuid.UUID) (*entity.SalesDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return doc, nil
}

// ListDocumentsInput represents the input for listing documents
type ListDocumentsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.DocumentType
	Status     *enum.DocumentStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListDocuments lists the documents of the business in ctx
func (s *DocumentService) ListDocuments(ctx context.Context, input *ListDocumentsInput) (*pagination.PaginatedResult[entity.SalesDocument], error) {
	if input.Pagination == nil {
		input.Pagination = pagination.DefaultPagination()
	}
	input.Pagination.Validate()

	docs, total, err := s.docRepo.List(ctx, &repository.DocumentFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Type:       input.Type,
		Status:     input.Status,
		CustomerID: input.CustomerID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(docs, pag), nil
}

// UpdateDocument edits the header and, when Items is set, replaces the lines.
// The document type never changes.
func (s *DocumentService) UpdateDocument(ctx context.Context, id uuid.UUID, input *DocumentInput) (*entity.SalesDocument, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == enum.DocumentStatusCanceled {
		return nil, apperror.NewBadRequestError("Canceled documents cannot be edited")
	}

	if input.RemarkParams != nil && input.Remark == nil && doc.Type == enum.DocumentTypeQuotation {
		params := ParseRemarkParams(doc.Remark, DefaultRemarkParams(nil))
		if input.RemarkParams.Bank == "" {
			input.RemarkParams.Bank = params.Bank
		}
	}

	if err := s.applyInput(ctx, doc, input); err != nil {
		return nil, err
	}
	if input.Number != "" && input.Number != doc.Number {
		if err := s.assignNumber(ctx, doc, input.Number); err != nil {
			return nil, err
		}
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateStatus moves a document to a new status. Canceled is final.
func (s *DocumentService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.DocumentStatus) (*entity.SalesDocument, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == enum.DocumentStatusCanceled && status != enum.DocumentStatusCanceled {
		return nil, apperror.NewBadRequestError("Canceled documents cannot be reopened")
	}
	if status == enum.DocumentStatusPaid && doc.Type == enum.DocumentTypeQuotation {
		return nil, apperror.NewBadRequestError("A quotation cannot be paid")
	}

	if err := s.docRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	doc.Status = status
	return doc, nil
}

// SetPaymentProof attaches a stored slip or cheque image to a billing note.
func (s *DocumentService) SetPaymentProof(ctx context.Context, id uuid.UUID, ref string) (*entity.SalesDocument, error) {
	doc, err := s.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Type != enum.DocumentTypeBillingNote {
		return nil, apperror.NewBadRequestError("Only billing notes carry payment details")
	}
	doc.Payment.Proof = ref
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteDocument deletes a document
func (s *DocumentService) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDocument(ctx, id); err != nil {
		return err
	}
	return s.docRepo.Delete(ctx, id)
}

// CreateBillingNoteFromSource starts a billing note from a quotation or an
// invoice, copying the customer, VAT mode and lines.
func (s *DocumentService) CreateBillingNoteFromSource(ctx context.Context, sourceID, employeeID uuid.UUID) (*entity.SalesDocument, error) {
	return s.createFromSource(ctx, sourceID, enum.DocumentTypeBillingNote, employeeID)
}

// CreateInvoiceFromQuotation starts an invoice from a quotation.
func (s *DocumentService) CreateInvoiceFromQuotation(ctx context.Context, sourceID, employeeID uuid.UUID) (*entity.SalesDocument, error) {
	return s.createFromSource(ctx, sourceID, enum.DocumentTypeInvoice, employeeID)
}

func (s *DocumentService) createFromSource(ctx context.Context, sourceID uuid.UUID, target enum.DocumentType, employeeID uuid.UUID) (*entity.SalesDocument, error) {
	src, err := s.GetDocument(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if src.Type >= target {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("A %s cannot be created from a %s", target, src.Type))
	}
	if src.Status == enum.DocumentStatusCanceled {
		return nil, apperror.NewBadRequestError("Canceled documents cannot be used as a source")
	}

	business, err := s.businessRepo.GetByID(ctx, src.BusinessID)
	if err != nil {
		return nil, err
	}

	doc := NewDraft(target, DraftDefaults{
		BusinessID: src.BusinessID,
		EmployeeID: employeeID,
		Date:       s.now(),
		Profile:    business,
	})
	doc.CustomerID = src.CustomerID
	doc.Customer = src.Customer
	doc.VatMode = src.VatMode
	doc.SourceID = &src.ID
	for _, item := range src.Items {
		item.ID = uuid.Nil
		item.DocumentID = uuid.Nil
		doc.Items = append(doc.Items, item)
	}
	doc.Recalculate()

	if err := s.assignNumber(ctx, doc, ""); err != nil {
		return nil, err
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) applyInput(ctx context.Context, doc *entity.SalesDocument, input *DocumentInput) error {
	if input.Date != nil {
		doc.Date = dateOnly(*input.Date)
		if doc.DueDate != nil {
			doc.SetCredit(doc.CreditDays)
		}
	}
	if input.CreditDays != nil && doc.Type == enum.DocumentTypeInvoice {
		if *input.CreditDays < 0 {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "credit_days", Message: "credit days must not be negative"}})
		}
		doc.SetCredit(*input.CreditDays)
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
		id := customer.ID
		doc.CustomerID = &id
		doc.Customer = entity.CustomerSnapshot{
			Name:    customer.Name,
			Address: customer.Address,
			Phone:   customer.Phone,
			TaxID:   customer.TaxID,
		}
	}
	if input.Customer != nil {
		doc.Customer = entity.CustomerSnapshot{
			Name:    utils.SanitizeText(input.Customer.Name),
			Address: utils.SanitizeText(input.Customer.Address),
			Phone:   utils.SanitizeText(input.Customer.Phone),
			TaxID:   utils.SanitizeText(input.Customer.TaxID),
		}
	}

	if input.VatMode != nil {
		if *input.VatMode < enum.VatModeNone || *input.VatMode > enum.VatModeExcluded {
			return apperror.NewValidationError([]apperror.FieldError{{Field: "vat_mode", Message: "unknown VAT mode"}})
		}
		doc.VatMode = *input.VatMode
	}

	switch {
	case input.Remark != nil:
		doc.Remark = utils.SanitizeText(*input.Remark)
	case input.RemarkParams != nil && doc.Type == enum.DocumentTypeQuotation:
		doc.Remark = RemarkParams{
			Deposit:  utils.SanitizeText(input.RemarkParams.Deposit),
			Duration: utils.SanitizeText(input.RemarkParams.Duration),
			Bank:     utils.SanitizeText(input.RemarkParams.Bank),
		}.Remark()
	}
	if input.InternalRemark != nil {
		doc.Internal = utils.SanitizeText(*input.InternalRemark)
	}

	if input.Payment != nil {
		if doc.Type != enum.DocumentTypeBillingNote {
			return apperror.NewBadRequestError("Only billing notes carry payment details")
		}
		doc.Payment = entity.Payment{
			Method: input.Payment.Method,
			Bank:   utils.SanitizeText(input.Payment.Bank),
			Number: utils.SanitizeText(input.Payment.Number),
			Branch: utils.SanitizeText(input.Payment.Branch),
			Date:   input.Payment.Date,
			Time:   utils.SanitizeText(input.Payment.Time),
			Proof:  input.Payment.Proof,
		}
	}

	if input.Items != nil {
		return s.replaceItems(ctx, doc, input.Items)
	}
	return nil
}

func (s *DocumentService) replaceItems(ctx context.Context, doc *entity.SalesDocument, inputs []ItemInput) error {
	doc.Items = make([]entity.SalesDocumentItem, 0, len(inputs))

	for i, in := range inputs {
		price := decimal.Zero
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		idx, err := doc.AddItem(entity.SalesDocumentItem{
			Quantity:  in.Quantity,
			UnitPrice: price,
		})
		if err != nil {
			return itemError(i, err)
		}

		if in.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, *in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return apperror.NewNotFoundError("Product")
			}
			if err := doc.ApplyProduct(idx, product); err != nil {
				return itemError(i, err)
			}
			if in.UnitPrice != nil {
				if err := doc.SetUnitPrice(idx, *in.UnitPrice); err != nil {
					return itemError(i, err)
				}
			}
		}

		item := &doc.Items[idx]
		if name := utils.SanitizeText(in.Name); name != "" {
			item.Name = name
		}
		if desc := utils.SanitizeText(in.Description); desc != "" {
			item.Description = desc
		}
		if unit := utils.SanitizeText(in.Unit); unit != "" {
			item.Unit = unit
		}
	}
	doc.Recalculate()
	return nil
}

func itemError(i int, err error) error {
	field := fmt.Sprintf("items[%d]", i)
	switch {
	case errors.Is(err, entity.ErrInvalidQuantity):
		field += ".quantity"
	case errors.Is(err, entity.ErrNegativePrice):
		field += ".unit_price"
	}
	return apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: err.Error()}})
}

func (s *DocumentService) assignNumber(ctx context.Context, doc *entity.SalesDocument, requested string) error {
	if requested = utils.SanitizeText(requested); requested != "" {
		existing, err := s.docRepo.GetByNumber(ctx, doc.Type, requested)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != doc.ID {
			return apperror.NewConflictError("Document number already exists")
		}
		doc.Number = requested
		return nil
	}

	prefix := DocumentNumberPrefix(doc.Type, doc.Date)
	count, err := s.docRepo.CountWithPrefix(ctx, doc.Type, prefix)
	if err != nil {
		return err
	}
	for n := count + 1; ; n++ {
		candidate := fmt.Sprintf("%s%04d", prefix, n)
		existing, err := s.docRepo.GetByNumber(ctx, doc.Type, candidate)
		if err != nil {
			return err
		}
		if existing == nil {
			doc.Number = candidate
			return nil
		}
	}
}
