package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeadOfficeBranch is the branch code the Revenue Department assigns to a
// company's head office.
const HeadOfficeBranch = "00000"

// Business is the company that issues sales documents
type Business struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	BranchCode string         `gorm:"size:5;default:'00000'" json:"branch_code"`
	Logo       string         `gorm:"type:text" json:"logo,omitempty"`
	Address    string         `gorm:"type:text" json:"address"`
	TaxID      string         `gorm:"size:13" json:"tax_id"`
	Phone      string         `gorm:"size:50" json:"phone"`
	Banks      BankAccounts   `gorm:"type:jsonb" json:"banks"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new business
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}

// IsHeadOffice reports whether the business prints as its head office
func (b *Business) IsHeadOffice() bool {
	return b.BranchCode == HeadOfficeBranch
}

// BankAccount is one account customers can transfer payment to
type BankAccount struct {
	BankName      string `json:"bank_name" binding:"required"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number" binding:"required"`
}

// BankAccounts is stored as an ordered JSON array; the first entry is the default
type BankAccounts []BankAccount

// Scan implements the sql.Scanner interface for BankAccounts
func (b *BankAccounts) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan BankAccounts: unsupported type")
	}

	return json.Unmarshal(bytes, b)
}

// Value implements the driver.Valuer interface for BankAccounts
func (b BankAccounts) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Default returns the first bank account, if any
func (b BankAccounts) Default() (BankAccount, bool) {
	if len(b) == 0 {
		return BankAccount{}, false
	}
	return b[0], true
}
