package docgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jung-kurt/gofpdf"
)

const fallbackFamily = "Helvetica"

// pdfSurface draws on a gofpdf A4 portrait document. Page breaks are driven
// by the layout engine, so gofpdf's automatic breaking is off.
type pdfSurface struct {
	pdf    *gofpdf.Fpdf
	family string
	size   float64
	tr     func(string) string
	images int
}

// newPDFSurface prepares a one-page document. When font is nil or cannot be
// registered the core Helvetica font is used and degraded is true.
func newPDFSurface(font []byte, family, title string, created time.Time) (s *pdfSurface, degraded bool, err error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("salesdoc-api", true)
	if !created.IsZero() {
		pdf.SetCreationDate(created)
	}

	s = &pdfSurface{pdf: pdf, family: family, size: 12, tr: func(s string) string { return s }}

	if len(font) > 0 {
		err = registerFont(pdf, family, font)
	}
	if len(font) == 0 || err != nil {
		degraded = true
		s.family = fallbackFamily
		s.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.SetFont(s.family, "", s.size)
	pdf.AddPage()
	return s, degraded, err
}

func (s *pdfSurface) SetFontSize(pt float64) {
	s.size = pt
	s.pdf.SetFontSize(pt)
}

func (s *pdfSurface) FontSize() float64 { return s.size }

func (s *pdfSurface) SetTextColor(c Color) { s.pdf.SetTextColor(c.R, c.G, c.B) }

func (s *pdfSurface) SetDrawColor(c Color) { s.pdf.SetDrawColor(c.R, c.G, c.B) }

func (s *pdfSurface) SetFillColor(c Color) { s.pdf.SetFillColor(c.R, c.G, c.B) }

func (s *pdfSurface) SetLineWidth(w float64) { s.pdf.SetLineWidth(w) }

func (s *pdfSurface) Text(x, y float64, str string, align Align) {
	if str == "" {
		return
	}
	str = s.tr(str)
	switch align {
	case AlignCenter:
		x -= s.pdf.GetStringWidth(str) / 2
	case AlignRight:
		x -= s.pdf.GetStringWidth(str)
	}
	s.pdf.Text(x, y, str)
}

func (s *pdfSurface) TextWidth(str string) float64 {
	return s.pdf.GetStringWidth(s.tr(str))
}

func (s *pdfSurface) Rect(x, y, w, h float64) { s.pdf.Rect(x, y, w, h, "D") }

func (s *pdfSurface) FillRect(x, y, w, h float64) { s.pdf.Rect(x, y, w, h, "F") }

func (s *pdfSurface) Line(x1, y1, x2, y2 float64) { s.pdf.Line(x1, y1, x2, y2) }

// Image embeds a JPEG, PNG or GIF. Any decoding problem is returned and
// leaves the document usable.
func (s *pdfSurface) Image(data []byte, x, y, w, h float64) error {
	imageType, err := pdfImageType(data)
	if err != nil {
		return err
	}

	s.images++
	name := fmt.Sprintf("img%d", s.images)
	opts := gofpdf.ImageOptions{ImageType: imageType}
	s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if s.pdf.Err() {
		err := s.pdf.Error()
		s.pdf.ClearError()
		return fmt.Errorf("register image: %w", err)
	}
	s.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

func (s *pdfSurface) AddPage() {
	s.pdf.AddPage()
	s.pdf.SetFont(s.family, "", s.size)
}

func (s *pdfSurface) PageSize() (float64, float64) {
	return s.pdf.GetPageSize()
}

// Bytes serializes the document.
func (s *pdfSurface) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	ttfMagic  = []byte{0x00, 0x01, 0x00, 0x00}
	trueMagic = []byte("true")
)

// registerFont adds a TrueType font. gofpdf reports parse problems through
// stdout or a panic rather than its error state, so the font is also selected
// once to confirm it took.
func registerFont(pdf *gofpdf.Fpdf, family string, font []byte) (err error) {
	if len(font) < 12 || !(bytes.HasPrefix(font, ttfMagic) || bytes.HasPrefix(font, trueMagic)) {
		return fmt.Errorf("font %s: not a TrueType font", family)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("font %s: %v", family, r)
		}
		pdf.ClearError()
	}()

	pdf.AddUTF8FontFromBytes(family, "", font)
	pdf.SetFont(family, "", 12)
	if pdf.Err() {
		return fmt.Errorf("font %s: %w", family, pdf.Error())
	}
	return nil
}

func pdfImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/jpeg"):
		return "JPG", nil
	case mt.Is("image/png"):
		return "PNG", nil
	case mt.Is("image/gif"):
		return "GIF", nil
	}
	return "", fmt.Errorf("unsupported image type %s", mt.String())
}
