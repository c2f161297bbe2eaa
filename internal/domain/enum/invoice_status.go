package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusDraft     InvoiceStatus = 0
	InvoiceStatusUnpaid    InvoiceStatus = 1
	InvoiceStatusPaid      InvoiceStatus = 2
	InvoiceStatusCancelled InvoiceStatus = 3
	InvoiceStatusRefunded  InvoiceStatus = 4
)

func (s InvoiceStatus) String() string {
	return [...]string{"Draft", "Unpaid", "Paid", "Cancelled", "Refunded"}[s]
}

// CanTransitionTo reports whether the one-way status transition is legal:
// unpaid to paid, paid to refunded, any non-terminal to cancelled.
// There is no way back out of cancelled or refunded.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch next {
	case InvoiceStatusPaid:
		return s == InvoiceStatusUnpaid
	case InvoiceStatusRefunded:
		return s == InvoiceStatusPaid
	case InvoiceStatusCancelled:
		return s == InvoiceStatusDraft || s == InvoiceStatusUnpaid
	case InvoiceStatusUnpaid:
		return s == InvoiceStatusDraft
	default:
		return false
	}
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = InvoiceStatusDraft
	case "Unpaid":
		*s = InvoiceStatusUnpaid
	case "Paid":
		*s = InvoiceStatusPaid
	case "Cancelled":
		*s = InvoiceStatusCancelled
	case "Refunded":
		*s = InvoiceStatusRefunded
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
