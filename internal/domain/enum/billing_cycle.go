package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// BillingCycle represents how often a catalog item is billed
type BillingCycle int

const (
	BillingCycleMonthly  BillingCycle = 0
	BillingCycleAnnually BillingCycle = 1
	BillingCycleOneTime  BillingCycle = 2
)

func (b BillingCycle) String() string {
	return [...]string{"Monthly", "Annually", "One-Time"}[b]
}

func (b BillingCycle) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *BillingCycle) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*b = BillingCycle(i)
		return nil
	}
	switch str {
	case "Monthly":
		*b = BillingCycleMonthly
	case "Annually":
		*b = BillingCycleAnnually
	case "One-Time":
		*b = BillingCycleOneTime
	}
	return nil
}

func (b BillingCycle) Value() (driver.Value, error) {
	return int64(b), nil
}

func (b *BillingCycle) Scan(value interface{}) error {
	if value == nil {
		*b = BillingCycleMonthly
		return nil
	}
	switch v := value.(type) {
	case int64:
		*b = BillingCycle(v)
	case int:
		*b = BillingCycle(v)
	}
	return nil
}
