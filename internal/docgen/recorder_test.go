package docgen

import (
	"unicode/utf8"
)

type op struct {
	kind  string
	x, y  float64
	w, h  float64
	text  string
	align Align
	size  float64
	color Color
	page  int
}

// recorder is a Surface that keeps every drawing call. Text is measured as
// a fixed fraction of the font size per rune.
type recorder struct {
	ops      []op
	size     float64
	text     Color
	page     int
	imageErr error
}

func newRecorder() *recorder {
	return &recorder{size: 12, page: 1}
}

func (r *recorder) SetFontSize(pt float64) { r.size = pt }
func (r *recorder) FontSize() float64 { return r.size }
func (r *recorder) SetTextColor(c Color) { r.text = c }
func (r *recorder) SetDrawColor(Color) {}
func (r *recorder) SetFillColor(Color) {}
func (r *recorder) SetLineWidth(float64) {}

func (r *recorder) Text(x, y float64, s string, align Align) {
	r.ops = append(r.ops, op{kind: "text", x: x, y: y, text: s, align: align, size: r.size, color: r.text, page: r.page})
}

func (r *recorder) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size * ptToMM * 0.5
}

func (r *recorder) Rect(x, y, w, h float64) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, w: w, h: h, page: r.page})
}

func (r *recorder) FillRect(x, y, w, h float64) {
	r.ops = append(r.ops, op{kind: "fill", x: x, y: y, w: w, h: h, page: r.page})
}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.ops = append(r.ops, op{kind: "line", x: x1, y: y1, w: x2 - x1, h: y2 - y1, page: r.page})
}

func (r *recorder) Image(data []byte, x, y, w, h float64) error {
	if r.imageErr != nil {
		return r.imageErr
	}
	r.ops = append(r.ops, op{kind: "image", x: x, y: y, w: w, h: h, page: r.page})
	return nil
}

func (r *recorder) AddPage() { r.page++ }

func (r *recorder) PageSize() (float64, float64) { return 210, 297 }

func (r *recorder) texts() []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == "text" {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) find(text string) (op, bool) {
	for _, o := range r.texts() {
		if o.text == text {
			return o, true
		}
	}
	return op{}, false
}

func (r *recorder) count(text string) int {
	n := 0
	for _, o := range r.texts() {
		if o.text == text {
			n++
		}
	}
	return n
}

func (r *recorder) textsAtX(x float64) []string {
	var out []string
	for _, o := range r.texts() {
		if o.x == x {
			out = append(out, o.text)
		}
	}
	return out
}

// panicCatalog fails the test run if it is ever consulted.
type panicCatalog struct{}

func (panicCatalog) Find(string) (Product, bool) {
	panic("catalog lookup")
}

// countingCatalog records lookups.
type countingCatalog struct {
	ProductList
	calls int
}

func (c *countingCatalog) Find(ref string) (Product, bool) {
	c.calls++
	return c.ProductList.Find(ref)
}
