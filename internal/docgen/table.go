package docgen

import (
	"strconv"

	"github.com/sangkips/salesdoc-api/pkg/thai"
	"github.com/shopspring/decimal"
)

type column struct {
	title string
	width float64
	align Align
}

var tableColumns = [...]column{
	{"ลำดับที่", 15, AlignCenter},
	{"รายการ", 95, AlignLeft},
	{"จำนวน", 20, AlignCenter},
	{"ราคา/หน่วย", 28, AlignRight},
	{"จำนวนเงิน", 30, AlignRight},
}

const cellPadding = 2.0

// resolvedItem is a line item with its display fields settled.
type resolvedItem struct {
	name        string
	description string
	unitPrice   decimal.Decimal
}

// resolveItem fills in a missing name or price. The catalog is consulted
// only when the item has no display name of its own; a nil catalog is fine.
func resolveItem(item LineItem, catalog Catalog) resolvedItem {
	res := resolvedItem{
		name:        item.DisplayName,
		description: item.Description,
		unitPrice:   item.UnitPrice,
	}

	var product Product
	found := false
	if res.name == "" && catalog != nil {
		product, found = catalog.Find(item.ProductRef)
	}
	if found {
		res.name = product.Name
		if res.description == "" {
			res.description = product.Detail
		}
	}

	if res.unitPrice.IsZero() {
		switch {
		case found && !product.Price.IsZero():
			res.unitPrice = product.Price
		case !item.Quantity.IsZero():
			res.unitPrice = item.Subtotal.Div(item.Quantity)
		default:
			res.unitPrice = decimal.Zero
		}
	}
	return res
}

// renderTable draws the item grid from startY and returns the y just below
// it. Rows that do not fit move to a new page, which repeats the header row.
func (r *renderer) renderTable(items []LineItem, catalog Catalog, startY float64) float64 {
	s := r.s
	s.SetFontSize(r.desc.TableSize)
	s.SetTextColor(colorBlack)
	_, pageH := s.PageSize()
	bottom := pageH - pageMargin

	y := r.tableHeader(startY)
	for i, item := range items {
		res := resolveItem(item, catalog)
		cells := [len(tableColumns)][]string{
			{strconv.Itoa(i + 1)},
			r.nameCell(res),
			{thai.FormatQuantity(item.Quantity)},
			{thai.FormatMoney(res.unitPrice)},
			{thai.FormatMoney(item.Subtotal)},
		}

		h := rowHeight(cells[:], s.FontSize())
		if y+h > bottom {
			s.AddPage()
			s.SetFontSize(r.desc.TableSize)
			y = r.tableHeader(pageMargin)
		}
		r.drawRow(y, h, cells[:], false)
		y += h
	}
	return y
}

func (r *renderer) nameCell(res resolvedItem) []string {
	width := tableColumns[1].width - 2*cellPadding
	lines := wrapText(r.s, res.name, width)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return append(lines, wrapText(r.s, res.description, width)...)
}

func (r *renderer) tableHeader(y float64) float64 {
	cells := make([][]string, len(tableColumns))
	for i, c := range tableColumns {
		cells[i] = []string{c.title}
	}
	h := rowHeight(cells, r.s.FontSize())
	r.drawRow(y, h, cells, true)
	return y + h
}

func (r *renderer) drawRow(y, h float64, cells [][]string, header bool) {
	s := r.s
	lh := lineHeight(s.FontSize())
	ascent := s.FontSize() * ptToMM * 0.8

	s.SetDrawColor(colorBlue)
	s.SetLineWidth(0.1)

	x := pageMargin
	for i, c := range tableColumns {
		s.Rect(x, y, c.width, h)

		align := c.align
		if header {
			align = AlignCenter
		}
		tx := x + cellPadding
		switch align {
		case AlignCenter:
			tx = x + c.width/2
		case AlignRight:
			tx = x + c.width - cellPadding
		}

		lines := cells[i]
		top := y + (h-float64(len(lines))*lh)/2
		for j, line := range lines {
			s.Text(tx, top+float64(j)*lh+ascent, line, align)
		}
		x += c.width
	}
}

func rowHeight(cells [][]string, size float64) float64 {
	n := 1
	for _, c := range cells {
		if len(c) > n {
			n = len(c)
		}
	}
	return float64(n)*lineHeight(size) + 2*cellPadding
}
