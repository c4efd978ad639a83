package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineItemEditsKeepSubtotalsAndTotal(t *testing.T) {
	doc := &SalesDocument{}

	i, err := doc.AddItem(SalesDocumentItem{Name: "ป้ายไวนิล", Quantity: dec("2"), UnitPrice: dec("150")})
	require.NoError(t, err)
	_, err = doc.AddItem(SalesDocumentItem{Name: "ติดตั้ง", Quantity: dec("1"), UnitPrice: dec("500")})
	require.NoError(t, err)
	assert.True(t, doc.Total.Equal(dec("800")))

	require.NoError(t, doc.SetQuantity(i, dec("3.5")))
	assert.True(t, doc.Items[i].Subtotal.Equal(dec("525")))
	assert.True(t, doc.Total.Equal(dec("1025")))

	require.NoError(t, doc.SetUnitPrice(i, dec("0")))
	assert.True(t, doc.Items[i].Subtotal.IsZero())
	assert.True(t, doc.Total.Equal(dec("500")))

	for _, item := range doc.Items {
		assert.True(t, item.Subtotal.Equal(item.Quantity.Mul(item.UnitPrice)))
	}
}

func TestLineItemEditsRejectInvalidValues(t *testing.T) {
	doc := &SalesDocument{}

	_, err := doc.AddItem(SalesDocumentItem{Quantity: dec("0"), UnitPrice: dec("1")})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = doc.AddItem(SalesDocumentItem{Quantity: dec("1"), UnitPrice: dec("-1")})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = doc.AddItem(SalesDocumentItem{Quantity: dec("1"), UnitPrice: dec("10")})
	require.NoError(t, err)

	assert.ErrorIs(t, doc.SetQuantity(0, dec("-2")), ErrInvalidQuantity)
	assert.ErrorIs(t, doc.SetUnitPrice(0, dec("-2")), ErrNegativePrice)
	assert.ErrorIs(t, doc.SetQuantity(4, dec("1")), ErrItemIndex)
	assert.ErrorIs(t, doc.RemoveItem(-1), ErrItemIndex)
	assert.True(t, doc.Total.Equal(dec("10")))
}

func TestApplyProductCopiesCatalogFields(t *testing.T) {
	doc := &SalesDocument{}
	_, err := doc.AddItem(SalesDocumentItem{Name: "draft", Unit: "ชิ้น", Quantity: dec("4"), UnitPrice: dec("1")})
	require.NoError(t, err)

	p := &Product{ID: uuid.New(), Name: "สติ๊กเกอร์", Price: dec("25.50"), Detail: "PVC ขาว"}
	require.NoError(t, doc.ApplyProduct(0, p))

	item := doc.Items[0]
	assert.Equal(t, p.ID, *item.ProductID)
	assert.Equal(t, "สติ๊กเกอร์", item.Name)
	assert.Equal(t, "PVC ขาว", item.Description)
	assert.Equal(t, "ชิ้น", item.Unit, "empty product unit keeps the item unit")
	assert.True(t, item.Subtotal.Equal(dec("102")))
	assert.True(t, doc.Total.Equal(dec("102")))
}

func TestRemoveItemRenumbers(t *testing.T) {
	doc := &SalesDocument{}
	for _, n := range []string{"a", "b", "c"} {
		_, err := doc.AddItem(SalesDocumentItem{Name: n, Quantity: dec("1"), UnitPrice: dec("10")})
		require.NoError(t, err)
	}

	require.NoError(t, doc.RemoveItem(1))

	require.Len(t, doc.Items, 2)
	assert.Equal(t, "c", doc.Items[1].Name)
	assert.Equal(t, 2, doc.Items[1].Position)
	assert.True(t, doc.Total.Equal(dec("20")))
}

func TestSetCreditDerivesDueDate(t *testing.T) {
	doc := &SalesDocument{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	doc.SetCredit(DefaultCreditDays)

	require.NotNil(t, doc.DueDate)
	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), *doc.DueDate)

	doc.SetCredit(-5)
	assert.Zero(t, doc.CreditDays)
	assert.Equal(t, doc.Date, *doc.DueDate)
}

func TestBankAccountsScanValue(t *testing.T) {
	banks := BankAccounts{{BankName: "กสิกรไทย", AccountName: "ร้านทดสอบ", AccountNumber: "123-4-56789-0"}}

	v, err := banks.Value()
	require.NoError(t, err)

	var scanned BankAccounts
	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, banks, scanned)

	first, ok := scanned.Default()
	assert.True(t, ok)
	assert.Equal(t, "กสิกรไทย", first.BankName)

	var empty BankAccounts
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
	assert.NoError(t, empty.Scan(nil))
	_, ok = empty.Default()
	assert.False(t, ok)
	assert.Error(t, empty.Scan(42))
}

func TestSalesDocumentJSONUsesEnumNames(t *testing.T) {
	doc := SalesDocument{Number: "IV-6701-0001"}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "quotation", out["type"])
	assert.Equal(t, "non-vat", out["vat_mode"])
	assert.Equal(t, "Pending", out["status"])
}
