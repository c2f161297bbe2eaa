package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// CartItemType discriminates catalog products from free-form custom lines
type CartItemType int

const (
	CartItemTypeProduct CartItemType = 0
	CartItemTypeCustom  CartItemType = 1
)

func (t CartItemType) String() string {
	return [...]string{"Product", "Custom"}[t]
}

func (t CartItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CartItemType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = CartItemType(i)
		return nil
	}
	switch str {
	case "Product":
		*t = CartItemTypeProduct
	case "Custom":
		*t = CartItemTypeCustom
	}
	return nil
}

func (t CartItemType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *CartItemType) Scan(value interface{}) error {
	if value == nil {
		*t = CartItemTypeProduct
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = CartItemType(v)
	case int:
		*t = CartItemType(v)
	}
	return nil
}
