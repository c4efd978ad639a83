package thai

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// BuddhistEraOffset is added to a Gregorian year to get the Thai year.
const BuddhistEraOffset = 543

var (
	phonePattern = regexp.MustCompile(`^(\d{2,3})(\d{3})(\d{4})$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// FormatPhone groups a 9 or 10 digit number as "aa-bbb-cccc" / "aaa-bbb-cccc".
// Separators in the input are ignored. Empty input prints as "-"; anything
// that does not group is returned unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return "-"
	}
	m := phonePattern.FindStringSubmatch(nonDigit.ReplaceAllString(phone, ""))
	if m == nil {
		return phone
	}
	return m[1] + "-" + m[2] + "-" + m[3]
}

// BuddhistYear returns the Thai calendar year of t.
func BuddhistYear(t time.Time) int {
	return t.Year() + BuddhistEraOffset
}

// FormatDate prints t as DD/MM/YYYY in the Buddhist era.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), BuddhistYear(t))
}

// FormatMoney prints d with thousands separators and exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

// FormatQuantity prints d with thousands separators and at most three decimals.
func FormatQuantity(d decimal.Decimal) string {
	return humanize.Commaf(d.Round(3).InexactFloat64())
}

// StripCompanyAffixes removes the "บริษัท" prefix and "จำกัด" suffix (both
// spellings) from a registered company name.
func StripCompanyAffixes(name string) string {
	r := strings.NewReplacer("บริษัท", "", "จำกัด", "", "จํากัด", "")
	return strings.TrimSpace(r.Replace(name))
}
