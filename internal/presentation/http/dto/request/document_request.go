package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/docgen"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DocumentItemRequest is one line of a document request
type DocumentItemRequest struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	Name        string           `json:"name" binding:"max=255"`
	Description string           `json:"description"`
	Unit        string           `json:"unit" binding:"max=50"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// PartyRequest is a customer typed directly onto a document
type PartyRequest struct {
	Name    string `json:"name" binding:"max=255"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"max=50"`
	TaxID   string `json:"tax_id" binding:"max=13"`
}

// PaymentRequest is the settlement block of a billing note
type PaymentRequest struct {
	Method     enum.PaymentMethod `json:"method"`
	Bank       string             `json:"bank"`
	Number     string             `json:"number"`
	Branch     string             `json:"branch"`
	Date       string             `json:"date"` // 2006-01-02
	Time       string             `json:"time"`
	ProofImage string             `json:"proof_image"`
}

// RemarkParamsRequest fills the blanks of the quotation terms
type RemarkParamsRequest struct {
	Deposit  string `json:"deposit"`
	Duration string `json:"duration"`
	Bank     string `json:"bank"`
}

// DocumentRequest represents a document create or update request. Type is
// required on create and ignored on update.
type DocumentRequest struct {
	Type           *enum.DocumentType    `json:"type"`
	Number         string                `json:"number" binding:"max=50"`
	Date           string                `json:"date"` // 2006-01-02
	CreditDays     *int                  `json:"credit_days" binding:"omitempty,min=0"`
	CustomerID     *uuid.UUID            `json:"customer_id"`
	Customer       *PartyRequest         `json:"customer"`
	VatMode        *enum.VatMode         `json:"vat_mode"`
	Items          []DocumentItemRequest `json:"items" binding:"omitempty,dive"`
	Remark         *string               `json:"remark"`
	RemarkParams   *RemarkParamsRequest  `json:"remark_params"`
	InternalRemark *string               `json:"internal_remark"`
	Payment        *PaymentRequest       `json:"payment"`
}

// DocumentFilterRequest represents document list parameters
type DocumentFilterRequest struct {
	Search     string `form:"search"`
	Type       string `form:"type"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// UpdateStatusRequest moves a document to another status
type UpdateStatusRequest struct {
	Status *enum.DocumentStatus `json:"status" binding:"required"`
}

// RenderDraftRequest renders a document that is not stored
type RenderDraftRequest struct {
	Action   string           `json:"action"`
	Document *docgen.Document `json:"document" binding:"required"`
}
