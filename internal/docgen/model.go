// Package docgen lays out Thai sales documents (quotation, invoice and
// billing note / tax receipt) on an A4 page and serializes them to PDF.
//
// The package only consumes already-fetched values: a Document, the
// BusinessProfile that issues it and an optional product Catalog used to fill
// in missing line-item fields. It never talks to the database or the network.
package docgen

import (
	"time"

	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Party is the counterparty printed in the customer box.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
}

// LineItem is one row of the item table. Subtotal is expected to equal
// Quantity * UnitPrice; the renderer prints it as stored.
type LineItem struct {
	ProductRef  string          `json:"product_ref,omitempty"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PaymentDetails is the settlement block of a billing note.
type PaymentDetails struct {
	Method     enum.PaymentMethod `json:"method"`
	Bank       string             `json:"bank,omitempty"`
	Number     string             `json:"number,omitempty"`
	Branch     string             `json:"branch,omitempty"`
	Date       time.Time          `json:"date,omitempty"`
	Time       string             `json:"time,omitempty"`
	ProofImage string             `json:"proof_image,omitempty"`
}

// Document is the render input. The generator never mutates it.
type Document struct {
	Type        enum.DocumentType `json:"type"`
	Number      string            `json:"number"`
	Date        time.Time         `json:"date"`
	DueDate     time.Time         `json:"due_date,omitempty"`
	Party       Party             `json:"party"`
	Items       []LineItem        `json:"items"`
	VatMode     enum.VatMode      `json:"vat_mode"`
	StoredTotal decimal.Decimal   `json:"stored_total"`
	Remark      string            `json:"remark,omitempty"`
	Payment     *PaymentDetails   `json:"payment,omitempty"`
}

// FileName is the name a downloaded document is saved under.
func (d *Document) FileName() string {
	return d.Number + ".pdf"
}

// BankAccount is one of the issuer's bank accounts.
type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

// HeadOfficeBranch is the branch code of a company's head office.
const HeadOfficeBranch = "00000"

// BusinessProfile is the issuing business.
type BusinessProfile struct {
	Name       string        `json:"name"`
	BranchCode string        `json:"branch_code,omitempty"`
	Logo       string        `json:"logo,omitempty"`
	Address    string        `json:"address"`
	TaxID      string        `json:"tax_id"`
	Phone      string        `json:"phone"`
	Banks      []BankAccount `json:"banks,omitempty"`
}

// DefaultBank returns the first bank account, if any.
func (p *BusinessProfile) DefaultBank() (BankAccount, bool) {
	if p == nil || len(p.Banks) == 0 {
		return BankAccount{}, false
	}
	return p.Banks[0], true
}

// Product is a catalog entry used to fill in missing line-item fields.
type Product struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Detail string          `json:"detail,omitempty"`
	Unit   string          `json:"unit,omitempty"`
}

// Catalog looks up products by reference.
type Catalog interface {
	Find(ref string) (Product, bool)
}

// ProductList is an ordered in-memory Catalog. A ref matches a product id
// first, then a product name.
type ProductList []Product

func (l ProductList) Find(ref string) (Product, bool) {
	if ref == "" {
		return Product{}, false
	}
	for _, p := range l {
		if p.ID == ref {
			return p, true
		}
	}
	for _, p := range l {
		if p.Name == ref {
			return p, true
		}
	}
	return Product{}, false
}
