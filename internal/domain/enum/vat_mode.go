package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// VatMode says how a document's stored total relates to 7% VAT
type VatMode int

const (
	VatModeNone     VatMode = 0
	VatModeIncluded VatMode = 1
	VatModeExcluded VatMode = 2
)

var vatModeNames = [...]string{"non-vat", "included-vat", "excluded-vat"}

func (m VatMode) String() string {
	if int(m) < 0 || int(m) >= len(vatModeNames) {
		return vatModeNames[VatModeNone]
	}
	return vatModeNames[m]
}

// ParseVatMode accepts the wire names as well as NONE / INCLUDED / EXCLUDED.
func ParseVatMode(s string) (VatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "non-vat", "none":
		return VatModeNone, nil
	case "included-vat", "included":
		return VatModeIncluded, nil
	case "excluded-vat", "excluded":
		return VatModeExcluded, nil
	}
	return VatModeNone, fmt.Errorf("unknown vat mode %q", s)
}

func (m VatMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *VatMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = VatMode(i)
		return nil
	}
	parsed, err := ParseVatMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m VatMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *VatMode) Scan(value interface{}) error {
	if value == nil {
		*m = VatModeNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = VatMode(v)
	case int:
		*m = VatMode(v)
	}
	return nil
}
