package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentStatus represents where a sales document is in its lifecycle
type DocumentStatus int

const (
	DocumentStatusPending  DocumentStatus = 0
	DocumentStatusApproved DocumentStatus = 1
	DocumentStatusPaid     DocumentStatus = 2
	DocumentStatusCanceled DocumentStatus = 3
)

func (s DocumentStatus) String() string {
	names := [...]string{"Pending", "Approved", "Paid", "Canceled"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

// ParseDocumentStatus accepts a status name in any case
func ParseDocumentStatus(str string) (DocumentStatus, error) {
	switch strings.ToLower(str) {
	case "pending":
		return DocumentStatusPending, nil
	case "approved":
		return DocumentStatusApproved, nil
	case "paid":
		return DocumentStatusPaid, nil
	case "canceled", "cancelled", "cancel":
		return DocumentStatusCanceled, nil
	}
	return DocumentStatusPending, fmt.Errorf("unknown document status %q", str)
}

func (s DocumentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DocumentStatus(i)
		return nil
	}
	parsed, err := ParseDocumentStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s DocumentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DocumentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DocumentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DocumentStatus(v)
	case int:
		*s = DocumentStatus(v)
	}
	return nil
}
