package thai

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "081-234-5678", FormatPhone("0812345678"))
	assert.Equal(t, "02-123-4567", FormatPhone("021234567"))
	assert.Equal(t, "-", FormatPhone(""))
	assert.Equal(t, "12345", FormatPhone("12345"))
	assert.Equal(t, "081-234-5678", FormatPhone("081-234-5678"))
	assert.Equal(t, "+66812345678", FormatPhone("+66812345678"))
	assert.Equal(t, "081-234-5678", FormatPhone("081 234 5678"))
	assert.Equal(t, "02-123-4567", FormatPhone("(02) 123-4567"))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2567", FormatDate(d))
	assert.Equal(t, 2567, BuddhistYear(d))
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":           "0.00",
		"1000":        "1,000.00",
		"70":          "70.00",
		"1234567.891": "1,234,567.89",
		"0.5":         "0.50",
		"-1500.25":    "-1,500.25",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2", FormatQuantity(decimal.NewFromInt(2)))
	assert.Equal(t, "1,500", FormatQuantity(decimal.NewFromInt(1500)))
	assert.Equal(t, "2.5", FormatQuantity(decimal.RequireFromString("2.5")))
	assert.Equal(t, "1.235", FormatQuantity(decimal.RequireFromString("1.2346")))
}

func TestStripCompanyAffixes(t *testing.T) {
	assert.Equal(t, "สยามการค้า", StripCompanyAffixes("บริษัท สยามการค้า จำกัด"))
	assert.Equal(t, "สยามการค้า", StripCompanyAffixes("บริษัท สยามการค้า จํากัด"))
	assert.Equal(t, "ร้านดี", StripCompanyAffixes("ร้านดี"))
	assert.Equal(t, "", StripCompanyAffixes(""))
}
