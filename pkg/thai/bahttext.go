// Package thai holds the Thai-locale text helpers used on printed sales
// documents: amount-in-words, phone grouping, Buddhist-era dates and number
// grouping.
package thai

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ZeroBaht is the text printed for a zero or unusable amount.
const ZeroBaht = "ศูนย์บาทถ้วน"

var (
	digitWords = [...]string{"ศูนย์", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}
	placeWords = [...]string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน"}
)

const (
	million    = "ล้าน"
	baht       = "บาท"
	satangUnit = "สตางค์"
	exact      = "ถ้วน"
	minus      = "ลบ"
	chunkSize  = 6
)

// BahtText spells amount in Thai baht, e.g. 121.50 ->
// "หนึ่งร้อยยี่สิบเอ็ดบาทห้าสิบสตางค์". The amount is rounded to two decimal
// places first. Negative amounts are prefixed with "ลบ".
func BahtText(amount decimal.Decimal) string {
	amount = amount.Round(2)
	if amount.IsNegative() {
		return minus + BahtText(amount.Neg())
	}

	intPart, frac, _ := strings.Cut(amount.StringFixed(2), ".")

	var b strings.Builder
	if strings.TrimLeft(intPart, "0") == "" {
		b.WriteString(digitWords[0])
	} else {
		chunks := splitChunks(intPart)
		for i, chunk := range chunks {
			b.WriteString(readChunk(chunk))
			if i < len(chunks)-1 {
				b.WriteString(million)
			}
		}
	}
	b.WriteString(baht)

	if strings.TrimLeft(frac, "0") == "" {
		b.WriteString(exact)
		return b.String()
	}
	b.WriteString(readChunk(frac))
	b.WriteString(satangUnit)
	return b.String()
}

// BahtTextFloat is BahtText for float input. NaN and infinities yield ZeroBaht.
func BahtTextFloat(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ZeroBaht
	}
	return BahtText(decimal.NewFromFloat(amount))
}

// BahtTextString parses s as a decimal amount. Unparseable input yields ZeroBaht.
func BahtTextString(s string) string {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return ZeroBaht
	}
	return BahtText(d)
}

// splitChunks cuts a digit string into groups of six from the right, most
// significant group first.
func splitChunks(digits string) []string {
	var chunks []string
	for end := len(digits); end > 0; end -= chunkSize {
		start := end - chunkSize
		if start < 0 {
			start = 0
		}
		chunks = append([]string{digits[start:end]}, chunks...)
	}
	return chunks
}

// readChunk reads up to six digits. An all-zero chunk reads as empty.
func readChunk(chunk string) string {
	var b strings.Builder
	n := len(chunk)
	for i := 0; i < n; i++ {
		d := int(chunk[i] - '0')
		if d == 0 {
			continue
		}
		place := n - i - 1
		switch {
		case place == 0 && d == 1 && n > 1:
			b.WriteString("เอ็ด")
		case place == 1 && d == 2:
			b.WriteString("ยี่")
		case place == 1 && d == 1:
		default:
			b.WriteString(digitWords[d])
		}
		b.WriteString(placeWords[place])
	}
	return b.String()
}
