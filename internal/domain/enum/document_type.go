package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DocumentType is the kind of sales document
type DocumentType int

const (
	DocumentTypeQuotation   DocumentType = 0
	DocumentTypeInvoice     DocumentType = 1
	DocumentTypeBillingNote DocumentType = 2
)

var documentTypeNames = [...]string{"quotation", "invoice", "billing_note"}

func (t DocumentType) String() string {
	if int(t) < 0 || int(t) >= len(documentTypeNames) {
		return documentTypeNames[DocumentTypeQuotation]
	}
	return documentTypeNames[t]
}

// Prefix is the running-number prefix for the type.
func (t DocumentType) Prefix() string {
	switch t {
	case DocumentTypeInvoice:
		return "IV"
	case DocumentTypeBillingNote:
		return "BN"
	default:
		return "QT"
	}
}

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	return t >= DocumentTypeQuotation && t <= DocumentTypeBillingNote
}

func ParseDocumentType(s string) (DocumentType, error) {
	switch s {
	case "quotation", "Quotation":
		return DocumentTypeQuotation, nil
	case "invoice", "Invoice":
		return DocumentTypeInvoice, nil
	case "billing_note", "billingnote", "BillingNote", "receipt":
		return DocumentTypeBillingNote, nil
	}
	return DocumentTypeQuotation, fmt.Errorf("unknown document type %q", s)
}

func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = DocumentType(i)
		return nil
	}
	parsed, err := ParseDocumentType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t DocumentType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *DocumentType) Scan(value interface{}) error {
	if value == nil {
		*t = DocumentTypeQuotation
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = DocumentType(v)
	case int:
		*t = DocumentType(v)
	}
	return nil
}
