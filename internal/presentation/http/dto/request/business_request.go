package request

// BankAccountRequest is one bank account of the business
type BankAccountRequest struct {
	BankName      string `json:"bank_name" binding:"max=255"`
	AccountName   string `json:"account_name" binding:"required,max=255"`
	AccountNumber string `json:"account_number" binding:"required,max=50"`
}

// BusinessRequest represents a business profile create or update request
type BusinessRequest struct {
	Name       *string              `json:"name" binding:"omitempty,min=1,max=255"`
	BranchCode *string              `json:"branch_code" binding:"omitempty,len=5,numeric"`
	Logo       *string              `json:"logo"`
	Address    *string              `json:"address"`
	TaxID      *string              `json:"tax_id" binding:"omitempty,max=13"`
	Phone      *string              `json:"phone" binding:"omitempty,max=50"`
	Banks      []BankAccountRequest `json:"banks" binding:"omitempty,dive"`
}

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	TaxID   *string `json:"tax_id" binding:"omitempty,max=13"`
	Email   *string `json:"email" binding:"omitempty,email"`
}
