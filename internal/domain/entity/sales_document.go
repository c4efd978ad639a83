package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrItemIndex       = errors.New("line item index out of range")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrNegativePrice   = errors.New("unit price must not be negative")
)

// DefaultCreditDays is the payment term of a new invoice
const DefaultCreditDays = 30

// SalesDocument is a quotation, invoice or billing note
type SalesDocument struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_document_number,priority:1" json:"business_id"`
	EmployeeID uuid.UUID           `gorm:"type:uuid;index" json:"employee_id"`
	Type       enum.DocumentType   `gorm:"not null;uniqueIndex:idx_document_number,priority:2" json:"type"`
	Number     string              `gorm:"size:50;not null;uniqueIndex:idx_document_number,priority:3" json:"number"`
	Date       time.Time           `gorm:"type:date;not null" json:"date"`
	CreditDays int                 `gorm:"default:0" json:"credit_days"`
	DueDate    *time.Time          `gorm:"type:date" json:"due_date,omitempty"`
	CustomerID *uuid.UUID          `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   CustomerSnapshot    `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	VatMode    enum.VatMode        `gorm:"default:0" json:"vat_mode"`
	Total      decimal.Decimal     `gorm:"type:decimal(15,2);default:0" json:"stored_total"`
	Remark     string              `gorm:"type:text" json:"remark"`
	Internal   string              `gorm:"type:text" json:"internal_remark"`
	Status     enum.DocumentStatus `gorm:"default:0" json:"status"`
	Payment    Payment             `gorm:"embedded;embeddedPrefix:pay_" json:"payment"`
	SourceID   *uuid.UUID          `gorm:"type:uuid;index" json:"source_id,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	DeletedAt  gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Business Business            `gorm:"foreignKey:BusinessID" json:"-"`
	Items    []SalesDocumentItem `gorm:"foreignKey:DocumentID" json:"items"`
}

// CustomerSnapshot is the counterparty as it was when the document was written
type CustomerSnapshot struct {
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	TaxID   string `gorm:"size:13" json:"tax_id"`
}

// Payment records how a billing note was settled
type Payment struct {
	Method enum.PaymentMethod `gorm:"default:0" json:"method"`
	Bank   string             `gorm:"size:255" json:"bank,omitempty"`
	Number string             `gorm:"size:100" json:"number,omitempty"` // account or cheque number
	Branch string             `gorm:"size:255" json:"branch,omitempty"`
	Date   *time.Time         `gorm:"type:date" json:"date,omitempty"`
	Time   string             `gorm:"size:10" json:"time,omitempty"`
	Proof  string             `gorm:"type:text" json:"proof_image,omitempty"`
}

// BeforeCreate generates a UUID before creating a new document
func (d *SalesDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesDocument model
func (SalesDocument) TableName() string {
	return "sales_documents"
}

// SetCredit sets the payment term and derives the due date from the document date
func (d *SalesDocument) SetCredit(days int) {
	if days < 0 {
		days = 0
	}
	d.CreditDays = days
	due := d.Date.AddDate(0, 0, days)
	d.DueDate = &due
}

// AddItem appends a line item and returns its index
func (d *SalesDocument) AddItem(item SalesDocumentItem) (int, error) {
	if !item.Quantity.IsPositive() {
		return 0, ErrInvalidQuantity
	}
	if item.UnitPrice.IsNegative() {
		return 0, ErrNegativePrice
	}
	item.DocumentID = d.ID
	d.Items = append(d.Items, item)
	d.Recalculate()
	return len(d.Items) - 1, nil
}

// SetQuantity changes the quantity of the item at index i
func (d *SalesDocument) SetQuantity(i int, qty decimal.Decimal) error {
	if i < 0 || i >= len(d.Items) {
		return ErrItemIndex
	}
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	d.Items[i].Quantity = qty
	d.Recalculate()
	return nil
}

// SetUnitPrice changes the unit price of the item at index i
func (d *SalesDocument) SetUnitPrice(i int, price decimal.Decimal) error {
	if i < 0 || i >= len(d.Items) {
		return ErrItemIndex
	}
	if price.IsNegative() {
		return ErrNegativePrice
	}
	d.Items[i].UnitPrice = price
	d.Recalculate()
	return nil
}

// ApplyProduct copies name, price, detail and unit from a catalog product
// into the item at index i
func (d *SalesDocument) ApplyProduct(i int, p *Product) error {
	if i < 0 || i >= len(d.Items) {
		return ErrItemIndex
	}
	item := &d.Items[i]
	id := p.ID
	item.ProductID = &id
	item.Name = p.Name
	item.UnitPrice = p.Price
	item.Description = p.Detail
	if p.Unit != "" {
		item.Unit = p.Unit
	}
	d.Recalculate()
	return nil
}

// RemoveItem deletes the item at index i
func (d *SalesDocument) RemoveItem(i int) error {
	if i < 0 || i >= len(d.Items) {
		return ErrItemIndex
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
	d.Recalculate()
	return nil
}

// Recalculate renumbers the items, sets every subtotal to quantity * unit
// price and sets Total to the sum of the subtotals. Subtotals are rounded to
// the currency scale (2 places) so they match what decimal(15,2) stores.
func (d *SalesDocument) Recalculate() {
	total := decimal.Zero
	for i := range d.Items {
		d.Items[i].Position = i + 1
		d.Items[i].Subtotal = d.Items[i].Quantity.Mul(d.Items[i].UnitPrice).Round(2)
		total = total.Add(d.Items[i].Subtotal)
	}
	d.Total = total
}

// SalesDocumentItem is one line of a sales document
type SalesDocumentItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	Position    int             `gorm:"not null" json:"position"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name        string          `gorm:"size:255" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Unit        string          `gorm:"size:50" json:"unit"`
	Quantity    decimal.Decimal `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new item
func (i *SalesDocumentItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesDocumentItem model
func (SalesDocumentItem) TableName() string {
	return "sales_document_items"
}
