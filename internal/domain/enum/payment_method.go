package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod is how a billing note was settled
type PaymentMethod int

const (
	PaymentMethodCash     PaymentMethod = 0
	PaymentMethodTransfer PaymentMethod = 1
	PaymentMethodCheque   PaymentMethod = 2
)

func (p PaymentMethod) String() string {
	names := [...]string{"Cash", "Transfer", "Cheque"}
	if int(p) < 0 || int(p) >= len(names) {
		return "Cash"
	}
	return names[p]
}

// Label is the Thai caption printed next to the payment checkbox.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentMethodTransfer:
		return "เงินโอน"
	case PaymentMethodCheque:
		return "เช็ค"
	default:
		return "เงินสด"
	}
}

// PaymentMethods lists the methods in checkbox order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCheque}
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaymentMethod(i)
		return nil
	}
	switch str {
	case "Cash", "cash", "เงินสด":
		*p = PaymentMethodCash
	case "Transfer", "transfer", "MobileBank", "เงินโอน":
		*p = PaymentMethodTransfer
	case "Cheque", "cheque", "เช็ค":
		*p = PaymentMethodCheque
	}
	return nil
}

func (p PaymentMethod) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*p = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = PaymentMethod(v)
	case int:
		*p = PaymentMethod(v)
	}
	return nil
}
