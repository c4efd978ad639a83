package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "ร้าน H&D", SanitizeText("  ร้าน <b>H&D</b> "))
	assert.Equal(t, "hello", SanitizeText(`<script>alert(1)</script>hello`))
	assert.Equal(t, "บรรทัด 1\nบรรทัด 2", SanitizeText("บรรทัด 1\nบรรทัด 2\x00"))
	assert.Equal(t, "", SanitizeText(""))
}

func TestParseOptionalUUID(t *testing.T) {
	id, err := ParseOptionalUUID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	want := uuid.New()
	id, err = ParseOptionalUUID(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, *id)

	_, err = ParseOptionalUUID("nope")
	assert.Error(t, err)
}
