package docgen

import (
	"testing"

	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var vatSamples = []string{"0", "1", "99.99", "107", "1000", "12345.67", "999999.99"}

func TestComputeVatIncluded(t *testing.T) {
	tolerance := decimal.RequireFromString("0.01")
	for _, sample := range vatSamples {
		total := decimal.RequireFromString(sample)
		got := ComputeVat(total, enum.VatModeIncluded)

		assert.True(t, got.Gross.Equal(total), sample)
		roundTrip := got.Net.Mul(decimal.NewFromInt(107)).Div(decimal.NewFromInt(100))
		assert.True(t, roundTrip.Sub(total).Abs().LessThanOrEqual(tolerance), "net*107/100 for %s", sample)
		assert.True(t, got.Net.Add(got.Vat).Sub(total).Abs().LessThanOrEqual(tolerance), "net+vat for %s", sample)
	}
}

func TestComputeVatExcluded(t *testing.T) {
	for _, sample := range vatSamples {
		total := decimal.RequireFromString(sample)
		got := ComputeVat(total, enum.VatModeExcluded)

		assert.True(t, got.Net.Equal(total), sample)
		assert.True(t, got.Gross.Equal(got.Net.Add(got.Vat)), sample)
	}

	got := ComputeVat(decimal.NewFromInt(1000), enum.VatModeExcluded)
	assert.Equal(t, "70.00", got.Vat.StringFixed(2))
	assert.Equal(t, "1070.00", got.Gross.StringFixed(2))
}

func TestComputeVatNone(t *testing.T) {
	for _, sample := range vatSamples {
		total := decimal.RequireFromString(sample)
		got := ComputeVat(total, enum.VatModeNone)

		assert.True(t, got.Vat.IsZero(), sample)
		assert.True(t, got.Gross.Equal(total), sample)
		assert.True(t, got.Net.Equal(total), sample)
	}
}

func TestComputeVatIncludedKnownValue(t *testing.T) {
	got := ComputeVat(decimal.NewFromInt(1070), enum.VatModeIncluded)
	assert.Equal(t, "1000.00", got.Net.StringFixed(2))
	assert.Equal(t, "70.00", got.Vat.StringFixed(2))
}
