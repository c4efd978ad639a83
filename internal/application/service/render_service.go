package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/salesdoc-api/internal/docgen"
	"github.com/sangkips/salesdoc-api/internal/domain/entity"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/sangkips/salesdoc-api/internal/domain/repository"
	"github.com/sangkips/salesdoc-api/pkg/apperror"
)

// PreviewSource resolves a preview handle back to PDF bytes.
type PreviewSource interface {
	Get(handle string) ([]byte, bool)
}

// OutputTarget is where downloads end up.
type OutputTarget interface {
	Ready() bool
}

// RenderService turns stored documents into PDFs.
type RenderService struct {
	generator    *docgen.Generator
	docRepo      repository.DocumentRepository
	productRepo  repository.ProductRepository
	businessRepo repository.BusinessRepository
	previews     PreviewSource
	output       OutputTarget
	outputType   string
	log          zerolog.Logger
}

// NewRenderService creates a new render service.
func NewRenderService(
	generator *docgen.Generator,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	businessRepo repository.BusinessRepository,
	previews PreviewSource,
	output OutputTarget,
	outputType string,
	log zerolog.Logger,
) *RenderService {
	return &RenderService{
		generator:    generator,
		docRepo:      docRepo,
		productRepo:  productRepo,
		businessRepo: businessRepo,
		previews:     previews,
		output:       output,
		outputType:   outputType,
		log:          log,
	}
}

// OutputStatus describes the download destination.
type OutputStatus struct {
	Configured bool   `json:"configured"`
	Ready      bool   `json:"ready"`
	Type       string `json:"type"`
}

// GetStatus returns the output destination status.
func (s *RenderService) GetStatus() *OutputStatus {
	return &OutputStatus{
		Configured: s.outputType != "none" && s.outputType != "",
		Ready:      s.output != nil && s.output.Ready(),
		Type:       s.outputType,
	}
}

// RenderDocument renders a stored document of the business in ctx.
func (s *RenderService) RenderDocument(ctx context.Context, id uuid.UUID, action docgen.Action) (*docgen.Result, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NewNotFoundError("Document")
	}
	return s.render(ctx, ToDocument(doc), action)
}

// RenderDraft renders an unsaved document against the profile and catalog
// of the business in ctx.
func (s *RenderService) RenderDraft(ctx context.Context, doc *docgen.Document, action docgen.Action) (*docgen.Result, error) {
	if doc == nil {
		return nil, apperror.NewBadRequestError("Document is required")
	}
	if !doc.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid document type")
	}
	return s.render(ctx, doc, action)
}

func (s *RenderService) render(ctx context.Context, doc *docgen.Document, action docgen.Action) (*docgen.Result, error) {
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

	products, err := s.productRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.generator.Generate(ctx, action, doc, ToProfile(business), ToCatalog(products))
	if err != nil {
		s.log.Error().Err(err).Str("document", doc.Number).Str("action", string(action)).Msg("render failed")
		return nil, fmt.Errorf("failed to render %s: %w", doc.Number, err)
	}
	return res, nil
}

// GetPreview returns the PDF bytes behind a preview handle.
func (s *RenderService) GetPreview(handle string) ([]byte, error) {
	if s.previews == nil {
		return nil, apperror.NewNotFoundError("Preview")
	}
	data, ok := s.previews.Get(handle)
	if !ok {
		return nil, apperror.NewNotFoundError("Preview")
	}
	return data, nil
}

// ToDocument maps a stored document onto the render input.
func ToDocument(d *entity.SalesDocument) *docgen.Document {
	doc := &docgen.Document{
		Type:   d.Type,
		Number: d.Number,
		Date:   d.Date,
		Party: docgen.Party{
			Name:    d.Customer.Name,
			Address: d.Customer.Address,
			Phone:   d.Customer.Phone,
			TaxID:   d.Customer.TaxID,
		},
		VatMode:     d.VatMode,
		StoredTotal: d.Total,
		Remark:      d.Remark,
		Items:       make([]docgen.LineItem, 0, len(d.Items)),
	}
	if d.DueDate != nil {
		doc.DueDate = *d.DueDate
	}

	for _, item := range d.Items {
		line := docgen.LineItem{
			DisplayName: item.Name,
			Description: item.Description,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
		if item.ProductID != nil {
			line.ProductRef = item.ProductID.String()
		}
		doc.Items = append(doc.Items, line)
	}

	if d.Type == enum.DocumentTypeBillingNote {
		pay := &docgen.PaymentDetails{
			Method:     d.Payment.Method,
			Bank:       d.Payment.Bank,
			Number:     d.Payment.Number,
			Branch:     d.Payment.Branch,
			Time:       d.Payment.Time,
			ProofImage: d.Payment.Proof,
		}
		if d.Payment.Date != nil {
			pay.Date = *d.Payment.Date
		}
		doc.Payment = pay
	}
	return doc
}

// ToProfile maps a business onto the issuer block.
func ToProfile(b *entity.Business) *docgen.BusinessProfile {
	p := &docgen.BusinessProfile{
		Name:       b.Name,
		BranchCode: b.BranchCode,
		Logo:       b.Logo,
		Address:    b.Address,
		TaxID:      b.TaxID,
		Phone:      b.Phone,
	}
	for _, bank := range b.Banks {
		p.Banks = append(p.Banks, docgen.BankAccount{
			BankName:      bank.BankName,
			AccountName:   bank.AccountName,
			AccountNumber: bank.AccountNumber,
		})
	}
	return p
}

// ToCatalog maps products onto a render catalog.
func ToCatalog(products []entity.Product) docgen.ProductList {
	list := make(docgen.ProductList, 0, len(products))
	for _, p := range products {
		list = append(list, docgen.Product{
			ID:     p.ID.String(),
			Name:   p.Name,
			Price:  p.Price,
			Detail: p.Detail,
			Unit:   p.Unit,
		})
	}
	return list
}
