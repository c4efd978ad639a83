package docgen

import (
	"fmt"
	"testing"
	"time"

	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedNow() time.Time { return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC) }

func noWarn(t *testing.T) func(string, ...any) {
	return func(format string, args ...any) {
		t.Errorf("unexpected warning: "+format, args...)
	}
}

func newTestRenderer(s Surface, doc *Document) *renderer {
	return &renderer{
		s:       s,
		desc:    DescriptorFor(doc.Type),
		doc:     doc,
		profile: &BusinessProfile{Name: "ร้านทดสอบ"},
		date:    fixedNow(),
		warn:    func(string, ...any) {},
	}
}

func TestResolveItemPrefersStoredFields(t *testing.T) {
	item := LineItem{ProductRef: "p1", DisplayName: "ป้ายไวนิล", Quantity: d("2"), UnitPrice: d("150"), Subtotal: d("300")}

	res := resolveItem(item, panicCatalog{})

	assert.Equal(t, "ป้ายไวนิล", res.name)
	assert.True(t, res.unitPrice.Equal(d("150")))
}

func TestResolveItemCatalogByIDThenName(t *testing.T) {
	catalog := ProductList{
		{ID: "p1", Name: "สติ๊กเกอร์", Price: d("25"), Detail: "ขนาด A4"},
		{ID: "p2", Name: "p1", Price: d("99")},
		{ID: "p3", Name: "นามบัตร", Price: d("300")},
	}

	byID := resolveItem(LineItem{ProductRef: "p1", Quantity: d("4"), Subtotal: d("100")}, catalog)
	assert.Equal(t, "สติ๊กเกอร์", byID.name)
	assert.Equal(t, "ขนาด A4", byID.description)
	assert.True(t, byID.unitPrice.Equal(d("25")))

	byName := resolveItem(LineItem{ProductRef: "นามบัตร", Quantity: d("1")}, catalog)
	assert.Equal(t, "นามบัตร", byName.name)
	assert.True(t, byName.unitPrice.Equal(d("300")))
}

func TestResolveItemMissingProduct(t *testing.T) {
	res := resolveItem(LineItem{ProductRef: "ghost", Quantity: d("4"), Subtotal: d("100")}, ProductList{})

	assert.Equal(t, "", res.name)
	assert.True(t, res.unitPrice.Equal(d("25")))
}

func TestResolveItemZeroQuantity(t *testing.T) {
	res := resolveItem(LineItem{DisplayName: "ค่าขนส่ง", Quantity: decimal.Zero, Subtotal: d("100")}, nil)

	assert.True(t, res.unitPrice.IsZero())
}

func TestRenderTableNeverConsultsCatalogForNamedItems(t *testing.T) {
	rec := newRecorder()
	doc := &Document{Type: enum.DocumentTypeQuotation}
	items := []LineItem{
		{DisplayName: "งานพิมพ์", Quantity: d("1"), UnitPrice: d("10"), Subtotal: d("10")},
		{DisplayName: "ค่าออกแบบ", Quantity: d("3"), Subtotal: d("30")},
		{DisplayName: "ฟรี", Quantity: d("1")},
	}

	catalog := &countingCatalog{}
	r := newTestRenderer(rec, doc)
	assert.NotPanics(t, func() { r.renderTable(items, catalog, tableStartY) })
	assert.Zero(t, catalog.calls)

	assert.NotPanics(t, func() { newTestRenderer(newRecorder(), doc).renderTable(items, nil, tableStartY) })
	assert.NotPanics(t, func() { newTestRenderer(newRecorder(), doc).renderTable(items, panicCatalog{}, tableStartY) })
}

func TestRenderTableUnknownProductRendersEmptyName(t *testing.T) {
	rec := newRecorder()
	doc := &Document{Type: enum.DocumentTypeQuotation}
	items := []LineItem{{ProductRef: "missing", Quantity: d("2"), Subtotal: d("50")}}

	var finalY float64
	require.NotPanics(t, func() {
		finalY = newTestRenderer(rec, doc).renderTable(items, ProductList{{ID: "other", Name: "อื่น"}}, tableStartY)
	})
	assert.Greater(t, finalY, tableStartY)

	nameX := pageMargin + tableColumns[0].width + cellPadding
	assert.Equal(t, []string{"รายการ", ""}, namesAt(rec, nameX, pageMargin+tableColumns[0].width+tableColumns[1].width/2))
	_, ok := rec.find("25.00")
	assert.True(t, ok)
}

func TestRenderTableColumns(t *testing.T) {
	rec := newRecorder()
	doc := &Document{Type: enum.DocumentTypeQuotation}
	items := []LineItem{{DisplayName: "ป้าย", Description: "ติดตั้งหน้าร้าน", Quantity: d("1500"), UnitPrice: d("2.5"), Subtotal: d("3750")}}

	newTestRenderer(rec, doc).renderTable(items, nil, tableStartY)

	for _, want := range []string{"1", "ป้าย", "ติดตั้งหน้าร้าน", "1,500", "2.50", "3,750.00"} {
		_, ok := rec.find(want)
		assert.True(t, ok, want)
	}

	name, _ := rec.find("ป้าย")
	desc, _ := rec.find("ติดตั้งหน้าร้าน")
	assert.Greater(t, desc.y, name.y, "description goes on its own line")

	price, _ := rec.find("2.50")
	assert.Equal(t, AlignRight, price.align)
}

func TestRenderTableReturnsYBelowRows(t *testing.T) {
	doc := &Document{Type: enum.DocumentTypeQuotation}
	one := []LineItem{{DisplayName: "a", Quantity: d("1")}}
	three := []LineItem{{DisplayName: "a", Quantity: d("1")}, {DisplayName: "b", Quantity: d("1")}, {DisplayName: "c", Quantity: d("1")}}

	y1 := newTestRenderer(newRecorder(), doc).renderTable(one, nil, tableStartY)
	y3 := newTestRenderer(newRecorder(), doc).renderTable(three, nil, tableStartY)

	row := lineHeight(11) + 2*cellPadding
	assert.InDelta(t, tableStartY+2*row, y1, 1e-9)
	assert.InDelta(t, y1+2*row, y3, 1e-9)
}

func TestRenderTablePaginatesWithHeader(t *testing.T) {
	rec := newRecorder()
	doc := &Document{Type: enum.DocumentTypeQuotation}
	var items []LineItem
	for i := 0; i < 60; i++ {
		items = append(items, LineItem{DisplayName: fmt.Sprintf("รายการ %d", i+1), Quantity: d("1"), UnitPrice: d("1"), Subtotal: d("1")})
	}

	finalY := newTestRenderer(rec, doc).renderTable(items, nil, tableStartY)

	assert.GreaterOrEqual(t, rec.page, 3)
	assert.Equal(t, rec.page, rec.count("ลำดับที่"), "header row on every page")
	assert.Less(t, finalY, 297-pageMargin)

	for _, o := range rec.ops {
		if o.kind == "rect" {
			assert.LessOrEqual(t, o.y+o.h, 297-pageMargin+1e-9)
		}
	}

	header, _ := rec.find("ลำดับที่")
	assert.Equal(t, 1, header.page)
	last, ok := rec.find("รายการ 60")
	require.True(t, ok)
	assert.Equal(t, rec.page, last.page)
}

func namesAt(rec *recorder, x, headerX float64) []string {
	var out []string
	for _, o := range rec.texts() {
		if o.x == x || (o.x == headerX && o.text == "รายการ") {
			out = append(out, o.text)
		}
	}
	return out
}
