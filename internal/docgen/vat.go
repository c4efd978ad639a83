package docgen

import (
	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var (
	vatRate    = decimal.RequireFromString("0.07")
	vatNumer   = decimal.NewFromInt(7)
	netNumer   = decimal.NewFromInt(100)
	grossDenom = decimal.NewFromInt(107)
)

// VatBreakdown is the totals box of a document. Net is printed as TOTAL and
// Gross as NET AMOUNT.
type VatBreakdown struct {
	Net   decimal.Decimal
	Vat   decimal.Decimal
	Gross decimal.Decimal
}

// ComputeVat derives the totals box from the stored total. No rounding is
// applied; callers round when printing.
func ComputeVat(storedTotal decimal.Decimal, mode enum.VatMode) VatBreakdown {
	switch mode {
	case enum.VatModeIncluded:
		return VatBreakdown{
			Net:   storedTotal.Mul(netNumer).Div(grossDenom),
			Vat:   storedTotal.Mul(vatNumer).Div(grossDenom),
			Gross: storedTotal,
		}
	case enum.VatModeExcluded:
		vat := storedTotal.Mul(vatRate)
		return VatBreakdown{
			Net:   storedTotal,
			Vat:   vat,
			Gross: storedTotal.Add(vat),
		}
	default:
		return VatBreakdown{
			Net:   storedTotal,
			Vat:   decimal.Zero,
			Gross: storedTotal,
		}
	}
}
