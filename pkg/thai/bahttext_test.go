package thai

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBahtText(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "ศูนย์บาทถ้วน"},
		{"1", "หนึ่งบาทถ้วน"},
		{"10", "สิบบาทถ้วน"},
		{"11", "สิบเอ็ดบาทถ้วน"},
		{"20", "ยี่สิบบาทถ้วน"},
		{"21", "ยี่สิบเอ็ดบาทถ้วน"},
		{"101", "หนึ่งร้อยเอ็ดบาทถ้วน"},
		{"121.50", "หนึ่งร้อยยี่สิบเอ็ดบาทห้าสิบสตางค์"},
		{"1070", "หนึ่งพันเจ็ดสิบบาทถ้วน"},
		{"1000000", "หนึ่งล้านบาทถ้วน"},
		{"1000001", "หนึ่งล้านเอ็ดบาทถ้วน"},
		{"21000000", "ยี่สิบเอ็ดล้านบาทถ้วน"},
		{"1000000000000", "หนึ่งล้านล้านบาทถ้วน"},
		{"0.25", "ศูนย์บาทยี่สิบห้าสตางค์"},
		{"0.01", "ศูนย์บาทเอ็ดสตางค์"},
		{"5.01", "ห้าบาทเอ็ดสตางค์"},
		{"0.21", "ศูนย์บาทยี่สิบเอ็ดสตางค์"},
		{"0.10", "ศูนย์บาทสิบสตางค์"},
		{"5.999", "หกบาทถ้วน"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, BahtText(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestBahtTextNegative(t *testing.T) {
	assert.Equal(t, "ลบหนึ่งร้อยบาทถ้วน", BahtText(decimal.NewFromInt(-100)))
	assert.Equal(t, ZeroBaht, BahtText(decimal.RequireFromString("-0.001")))
}

func TestBahtTextFloatInvalid(t *testing.T) {
	assert.Equal(t, ZeroBaht, BahtTextFloat(math.NaN()))
	assert.Equal(t, ZeroBaht, BahtTextFloat(math.Inf(1)))
	assert.Equal(t, ZeroBaht, BahtTextFloat(math.Inf(-1)))
	assert.Equal(t, "สามบาทห้าสิบสตางค์", BahtTextFloat(3.5))
}

func TestBahtTextString(t *testing.T) {
	assert.Equal(t, "หนึ่งพันบาทถ้วน", BahtTextString("1,000.00"))
	assert.Equal(t, ZeroBaht, BahtTextString("abc"))
	assert.Equal(t, ZeroBaht, BahtTextString(""))
}

func TestSplitChunks(t *testing.T) {
	assert.Equal(t, []string{"1"}, splitChunks("1"))
	assert.Equal(t, []string{"123456"}, splitChunks("123456"))
	assert.Equal(t, []string{"1", "234567"}, splitChunks("1234567"))
	assert.Equal(t, []string{"1", "000000", "000000"}, splitChunks("1000000000000"))
}
