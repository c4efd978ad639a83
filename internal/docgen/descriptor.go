package docgen

import "github.com/sangkips/salesdoc-api/internal/domain/enum"

// Descriptor carries everything that differs between document types. The
// layout engine is shared.
type Descriptor struct {
	Title     string
	TitleSize float64
	TitleY    float64

	NameSize   float64
	BranchSize float64
	BodySize   float64
	TableSize  float64
	NetSize    float64
	SignSize   float64

	PartyLabel string

	// ShowDueDate adds a due-date line to the number box.
	ShowDueDate bool
	// Payment adds the settlement block and the proof-of-payment page.
	Payment bool
	// DefaultRemark prints the standard quotation terms when the remark is
	// empty. Otherwise the remark heading only appears with a remark.
	DefaultRemark bool
	// SignatureOffset is the distance from the footer top to the signature box.
	SignatureOffset float64
}

var descriptors = map[enum.DocumentType]Descriptor{
	enum.DocumentTypeQuotation: {
		Title:           "ใบเสนอราคา",
		TitleSize:       16,
		TitleY:          20,
		NameSize:        20,
		BranchSize:      12,
		BodySize:        12,
		TableSize:       11,
		NetSize:         12,
		SignSize:        11,
		PartyLabel:      "ชื่อลูกค้า / Customer:",
		DefaultRemark:   true,
		SignatureOffset: 45,
	},
	enum.DocumentTypeInvoice: {
		Title:           "ใบแจ้งหนี้",
		TitleSize:       16,
		TitleY:          20,
		NameSize:        20,
		BranchSize:      12,
		BodySize:        12,
		TableSize:       11,
		NetSize:         12,
		SignSize:        11,
		PartyLabel:      "ชื่อลูกค้า / Customer:",
		ShowDueDate:     true,
		SignatureOffset: 45,
	},
	enum.DocumentTypeBillingNote: {
		Title:           "ใบกำกับภาษี/ใบเสร็จรับเงิน",
		TitleSize:       18,
		TitleY:          22,
		NameSize:        22,
		BranchSize:      14,
		BodySize:        14,
		TableSize:       13,
		NetSize:         16,
		SignSize:        13,
		PartyLabel:      "ชื่อลูกค้า / Customer:",
		Payment:         true,
		SignatureOffset: 55,
	},
}

// DescriptorFor returns the layout parameters of a document type. Unknown
// types render as quotations.
func DescriptorFor(t enum.DocumentType) Descriptor {
	if d, ok := descriptors[t]; ok {
		return d
	}
	return descriptors[enum.DocumentTypeQuotation]
}
