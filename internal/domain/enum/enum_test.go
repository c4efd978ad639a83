package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVatModeJSON(t *testing.T) {
	var m VatMode
	require.NoError(t, json.Unmarshal([]byte(`"included-vat"`), &m))
	assert.Equal(t, VatModeIncluded, m)

	require.NoError(t, json.Unmarshal([]byte(`"EXCLUDED"`), &m))
	assert.Equal(t, VatModeExcluded, m)

	require.NoError(t, json.Unmarshal([]byte(`0`), &m))
	assert.Equal(t, VatModeNone, m)

	assert.Error(t, json.Unmarshal([]byte(`"half-vat"`), &m))

	out, err := json.Marshal(VatModeExcluded)
	require.NoError(t, err)
	assert.JSONEq(t, `"excluded-vat"`, string(out))
}

func TestVatModeOutOfRangeString(t *testing.T) {
	assert.Equal(t, "non-vat", VatMode(9).String())
}

func TestDocumentTypePrefix(t *testing.T) {
	assert.Equal(t, "QT", DocumentTypeQuotation.Prefix())
	assert.Equal(t, "IV", DocumentTypeInvoice.Prefix())
	assert.Equal(t, "BN", DocumentTypeBillingNote.Prefix())
	assert.False(t, DocumentType(7).IsValid())
}

func TestParseDocumentType(t *testing.T) {
	dt, err := ParseDocumentType("billing_note")
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeBillingNote, dt)

	_, err = ParseDocumentType("credit_note")
	assert.Error(t, err)
}

func TestPaymentMethodThaiLabels(t *testing.T) {
	var p PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"เงินโอน"`), &p))
	assert.Equal(t, PaymentMethodTransfer, p)
	assert.Equal(t, "เงินโอน", p.Label())

	require.NoError(t, json.Unmarshal([]byte(`"เช็ค"`), &p))
	assert.Equal(t, PaymentMethodCheque, p)
	assert.Equal(t, "เงินสด", PaymentMethodCash.Label())
}

func TestDocumentStatusJSON(t *testing.T) {
	var s DocumentStatus
	require.NoError(t, json.Unmarshal([]byte(`"cancelled"`), &s))
	assert.Equal(t, DocumentStatusCanceled, s)

	require.NoError(t, json.Unmarshal([]byte(`2`), &s))
	assert.Equal(t, DocumentStatusPaid, s)

	assert.Error(t, json.Unmarshal([]byte(`"archived"`), &s))

	data, err := json.Marshal(DocumentStatusApproved)
	require.NoError(t, err)
	assert.JSONEq(t, `"Approved"`, string(data))
}
