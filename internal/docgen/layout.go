package docgen

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"time"

	"github.com/sangkips/salesdoc-api/internal/domain/enum"
	"github.com/sangkips/salesdoc-api/pkg/thai"
	"github.com/shopspring/decimal"
)

const (
	pageMargin  = 10.0
	tableStartY = 100.0

	summaryX = 142.0
	summaryW = 58.0
	summaryR = summaryX + summaryW - 2

	remarkWidth = 180.0
	remarkSize  = 10.0
	dotLeader   = "..............................................."
	dateLeader  = "วันที่ ..........................................."
)

// defaultQuotationTerms is printed on a quotation that carries no remark.
var defaultQuotationTerms = []string{
	"1. ราคาทีเสนอเป็นเงินบาทไทย",
	"2. มัดจำค่าสินค้า 60% ส่วนที่เหลือชําระทั้งหมดในวันส่งของ หรือ ติดตังแล้วเสร็จ",
	"3. ระยะเวลาดําเนินการ 2-3 วัน หลังจากได้รับ มัดจํา หรือระยะเวลาขึน อยู่กับปริมาณสินค้าทีลูกค้าสังซือ หรือตามเงือนไขอื่นๆ ตามที่ตกลงกัน",
}

// renderer draws one document on one surface. It is not reused.
type renderer struct {
	s       Surface
	desc    Descriptor
	doc     *Document
	profile *BusinessProfile
	date    time.Time
	warn    func(format string, args ...any)
}

func (r *renderer) drawHeader(logo []byte) {
	s := r.s
	p := r.profile

	if logo != nil {
		if err := s.Image(logo, 10, 10, 25, 20); err != nil {
			r.warn("logo: %v", err)
		}
	}

	s.SetTextColor(colorBlack)
	s.SetFontSize(r.desc.NameSize)
	s.Text(40, 18, orDash(p.Name), AlignLeft)
	if p.BranchCode == HeadOfficeBranch {
		s.SetFontSize(r.desc.BranchSize)
		s.Text(40, 24, "(สำนักงานใหญ่)", AlignLeft)
	}

	s.SetFontSize(r.desc.BodySize)
	r.textLines(10, 38, wrapText(s, p.Address, 100))
	s.Text(10, 51, "เลขประจำตัวผู้เสียภาษี  "+orDash(p.TaxID), AlignLeft)
	s.Text(10, 56, "โทร  "+thai.FormatPhone(p.Phone), AlignLeft)

	s.SetDrawColor(colorOrange)
	s.SetLineWidth(0.5)
	s.Rect(140, 10, 60, 20)
	s.SetFontSize(r.desc.TitleSize)
	s.Text(170, r.desc.TitleY, r.desc.Title, AlignCenter)
}

func (r *renderer) drawParties() {
	s := r.s
	d := r.doc

	s.SetDrawColor(colorOrange)
	s.SetLineWidth(0.5)
	s.Rect(10, 60, 130, 35)
	s.SetFontSize(r.desc.BodySize)
	s.SetTextColor(colorBlack)

	s.Text(12, 65, r.desc.PartyLabel, AlignLeft)
	s.Text(12, 75, "ที่อยู่ / Address:", AlignLeft)
	s.Text(12, 85, "เบอร์โทรศัพท์", AlignLeft)
	s.Text(12, 90, "เลขประจำตัวผู้เสียภาษี", AlignLeft)

	s.Text(45, 65, orDash(d.Party.Name), AlignLeft)
	if lines := wrapText(s, d.Party.Address, 90); len(lines) > 0 {
		r.textLines(45, 75, lines)
	} else {
		s.Text(45, 75, "-", AlignLeft)
	}
	s.Text(45, 85, thai.FormatPhone(d.Party.Phone), AlignLeft)
	s.Text(45, 90, orDash(d.Party.TaxID), AlignLeft)

	s.Rect(142, 60, 58, 35)
	if r.desc.ShowDueDate {
		s.Text(145, 70, "เลขที่ / No.", AlignLeft)
		s.Text(145, 79, "วันที่ / Date", AlignLeft)
		s.Text(145, 88, "ครบกำหนด / Due", AlignLeft)
		s.Text(170, 70, d.Number, AlignLeft)
		s.Text(170, 79, thai.FormatDate(r.date), AlignLeft)
		if !d.DueDate.IsZero() {
			s.Text(170, 88, thai.FormatDate(d.DueDate), AlignLeft)
		}
		return
	}
	s.Text(145, 78, "เลขที่ / No.", AlignLeft)
	s.Text(145, 88, "วันที่ / Date", AlignLeft)
	s.Text(170, 78, d.Number, AlignLeft)
	s.Text(170, 88, thai.FormatDate(r.date), AlignLeft)
}

// footerHeight is the space needed below the table before the remark text.
func (r *renderer) footerHeight() float64 {
	return r.desc.SignatureOffset + 40
}

// drawFooter places totals, payment, signatures and remark below the table
// ending at lastY.
func (r *renderer) drawFooter(lastY float64, vat VatBreakdown) {
	s := r.s
	_, pageH := s.PageSize()

	y := lastY + 2
	if y+r.footerHeight() > pageH-pageMargin {
		s.AddPage()
		y = pageMargin + 5
	}

	r.drawTotals(y, vat)
	if r.desc.Payment {
		r.drawPayment(y, vat.Gross)
	} else {
		r.drawWords(y, vat.Gross)
	}

	sigY := y + r.desc.SignatureOffset
	r.drawSignatures(sigY)
	r.drawRemark(sigY + 35)
}

func (r *renderer) drawTotals(y float64, vat VatBreakdown) {
	s := r.s

	s.SetDrawColor(colorOrange)
	s.SetLineWidth(0.2)
	s.SetTextColor(colorBlack)
	s.SetFontSize(r.desc.BodySize)

	s.Rect(summaryX, y, summaryW, 10)
	s.Text(summaryX+2, y+4, "รวมเงิน", AlignLeft)
	s.Text(summaryX+2, y+8, "TOTAL", AlignLeft)
	s.Text(summaryR, y+7, thai.FormatMoney(vat.Net), AlignRight)

	s.Rect(summaryX, y+10, summaryW, 10)
	s.Text(summaryX+2, y+14, "VAT", AlignLeft)
	s.Text(summaryX+2, y+18, "7%", AlignLeft)
	if r.doc.VatMode != enum.VatModeNone {
		s.Text(summaryR, y+17, thai.FormatMoney(vat.Vat), AlignRight)
	}

	s.SetFillColor(colorNetFill)
	s.FillRect(summaryX, y+20, 30, 15)
	s.Rect(summaryX, y+20, summaryW, 15)
	s.Text(summaryX+2, y+26, "ยอดเงินสุทธิ", AlignLeft)
	s.Text(summaryX+2, y+32, "NET AMOUNT", AlignLeft)
	s.SetFontSize(r.desc.NetSize)
	s.Text(summaryR, y+28, thai.FormatMoney(vat.Gross), AlignRight)
	s.SetFontSize(r.desc.BodySize)
}

// drawWords prints the amount in words beside the totals box.
func (r *renderer) drawWords(y float64, gross decimal.Decimal) {
	s := r.s
	s.SetDrawColor(colorOrange)
	s.SetLineWidth(0.2)
	s.Rect(10, y+20, 130, 15)
	s.SetFontSize(r.desc.BodySize)
	s.SetTextColor(colorBlack)
	s.Text(12, y+26, "ตัวอักษร", AlignLeft)
	s.SetTextColor(colorBlue)
	s.Text(75, y+30, "( "+thai.BahtText(gross)+" )", AlignCenter)
	s.SetTextColor(colorBlack)
}

func (r *renderer) drawPayment(y float64, gross decimal.Decimal) {
	s := r.s
	pay := r.doc.Payment

	s.SetFontSize(r.desc.SignSize)
	s.SetTextColor(colorBlack)
	s.Text(10, y+5, "รายการรับชำระเงิน :", AlignLeft)

	for i, m := range enum.PaymentMethods() {
		r.checkbox(45+float64(i)*40, y+5, m.Label(), pay != nil && pay.Method == m)
	}

	if pay != nil {
		switch pay.Method {
		case enum.PaymentMethodTransfer:
			r.paymentFields(y, "เลขที่บัญชี/Acc #", "วันที่ทำรายการ/Date", pay)
		case enum.PaymentMethodCheque:
			r.paymentFields(y, "เลขที่/ Chq #", "ลงวันที่/Date", pay)
		}
	}

	s.Text(10, y+33, "จำนวนเงิน /Amount", AlignLeft)
	s.Text(55, y+33, thai.FormatMoney(gross), AlignLeft)

	s.SetDrawColor(colorOrange)
	s.SetLineWidth(0.2)
	s.Rect(40, y+38, 100, 10)
	s.Text(10, y+44, "ตัวอักษร", AlignLeft)
	s.SetTextColor(colorBlue)
	s.Text(90, y+44, "( "+thai.BahtText(gross)+" )", AlignCenter)
	s.SetTextColor(colorBlack)
}

func (r *renderer) checkbox(x, y float64, label string, checked bool) {
	s := r.s
	s.SetDrawColor(colorBlack)
	s.SetLineWidth(0.2)
	s.Rect(x, y-3.5, 4, 4)
	if checked {
		s.Line(x+0.5, y-1.5, x+1.5, y+0.5)
		s.Line(x+1.5, y+0.5, x+3.5, y-3.5)
	}
	s.Text(x+6, y, label, AlignLeft)
}

func (r *renderer) paymentFields(y float64, numberLabel, dateLabel string, pay *PaymentDetails) {
	s := r.s

	field := func(lx, vx, fy float64, label, value string) {
		s.Text(lx, fy, label, AlignLeft)
		s.Text(vx, fy, value, AlignLeft)
		s.Text(vx, fy+0.5, dotLeader, AlignLeft)
	}

	date := ""
	if !pay.Date.IsZero() {
		date = thai.FormatDate(pay.Date)
		if pay.Time != "" {
			date += " " + pay.Time
		}
	}

	field(12, 38, y+12, "ธนาคาร/Bank", pay.Bank)
	field(75, 98, y+12, numberLabel, pay.Number)
	field(12, 38, y+22, "สาขา/Branch", pay.Branch)
	field(75, 108, y+22, dateLabel, date)
}

func (r *renderer) drawSignatures(sigY float64) {
	s := r.s

	s.SetDrawColor(colorBlack)
	s.SetLineWidth(0.2)
	s.Rect(10, sigY, 188, 30)
	s.Line(72, sigY, 72, sigY+30)
	s.Line(135, sigY, 135, sigY+30)

	s.SetFontSize(r.desc.SignSize)
	s.SetTextColor(colorBlack)
	s.Text(41, sigY+5, "ลูกค้า/ผู้อนุมัติ", AlignCenter)
	s.Text(103, sigY+5, "ผู้ผลิต", AlignCenter)
	s.Text(166, sigY+5, thai.StripCompanyAffixes(r.profile.Name), AlignCenter)

	s.Text(25, sigY+25, dateLeader, AlignLeft)
	s.Text(85, sigY+25, dateLeader, AlignLeft)
	s.Text(166, sigY+25, "ผู้มีอำนาจลงนาม", AlignCenter)
}

func (r *renderer) drawRemark(y float64) {
	s := r.s

	s.SetFontSize(remarkSize)
	lines := wrapText(s, r.doc.Remark, remarkWidth)
	if len(lines) == 0 {
		if !r.desc.DefaultRemark {
			return
		}
		lines = r.defaultRemark()
	}

	s.SetFontSize(r.desc.SignSize)
	s.SetTextColor(colorRed)
	s.Text(10, y, "**หมายเหตุ : Remark", AlignLeft)
	s.SetTextColor(colorBlack)
	s.SetFontSize(remarkSize)

	_, pageH := s.PageSize()
	ly := y + 5
	for _, line := range lines {
		if ly > pageH-pageMargin {
			s.AddPage()
			ly = pageMargin + 5
		}
		s.Text(10, ly, line, AlignLeft)
		ly += 4
	}
}

func (r *renderer) defaultRemark() []string {
	lines := append([]string(nil), defaultQuotationTerms...)
	if bank, ok := r.profile.DefaultBank(); ok && bank.BankName != "" {
		lines = append(lines, fmt.Sprintf("4. โอนเงินชําระค่าสินค้า ที่ ธนาคาร%s ( %s ) %s",
			bank.BankName, bank.AccountName, bank.AccountNumber))
	}
	var wrapped []string
	for _, l := range lines {
		wrapped = append(wrapped, wrapText(r.s, l, remarkWidth)...)
	}
	return wrapped
}

// drawProof appends a page holding the proof-of-payment image scaled to fit.
func (r *renderer) drawProof(img []byte) {
	s := r.s
	s.AddPage()
	pageW, pageH := s.PageSize()

	s.SetFontSize(r.desc.BodySize)
	s.SetTextColor(colorBlack)
	s.Text(pageMargin, 20, "หลักฐานการชำระเงิน / Proof of payment", AlignLeft)
	s.Text(pageW-pageMargin, 20, r.doc.Number, AlignRight)

	boxW, boxH := pageW-2*pageMargin, pageH-30-pageMargin
	w, h := fitImage(img, boxW, boxH)
	if err := s.Image(img, pageMargin+(boxW-w)/2, 30, w, h); err != nil {
		r.warn("payment proof: %v", err)
	}
}

func (r *renderer) textLines(x, y float64, lines []string) {
	lh := lineHeight(r.s.FontSize())
	for i, l := range lines {
		r.s.Text(x, y+float64(i)*lh, l, AlignLeft)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// fitImage scales an image to fit a box, keeping its aspect ratio. Unknown
// dimensions fill the box.
func fitImage(data []byte, maxW, maxH float64) (float64, float64) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return maxW, maxH
	}
	scale := math.Min(maxW/float64(cfg.Width), maxH/float64(cfg.Height))
	return float64(cfg.Width) * scale, float64(cfg.Height) * scale
}
