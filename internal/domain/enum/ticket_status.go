package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TicketStatus represents the status of a support ticket
type TicketStatus int

const (
	TicketStatusOpen          TicketStatus = 0
	TicketStatusAnswered      TicketStatus = 1
	TicketStatusCustomerReply TicketStatus = 2
	TicketStatusClosed        TicketStatus = 3
)

func (s TicketStatus) String() string {
	return [...]string{"Open", "Answered", "Customer-Reply", "Closed"}[s]
}

func (s TicketStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TicketStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TicketStatus(i)
		return nil
	}
	switch str {
	case "Open":
		*s = TicketStatusOpen
	case "Answered":
		*s = TicketStatusAnswered
	case "Customer-Reply":
		*s = TicketStatusCustomerReply
	case "Closed":
		*s = TicketStatusClosed
	}
	return nil
}

func (s TicketStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TicketStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TicketStatusOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TicketStatus(v)
	case int:
		*s = TicketStatus(v)
	}
	return nil
}

// TicketPriority represents the priority of a support ticket
type TicketPriority int

const (
	TicketPriorityLow    TicketPriority = 0
	TicketPriorityMedium TicketPriority = 1
	TicketPriorityHigh   TicketPriority = 2
)

func (p TicketPriority) String() string {
	return [...]string{"Low", "Medium", "High"}[p]
}

func (p TicketPriority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *TicketPriority) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = TicketPriority(i)
		return nil
	}
	switch str {
	case "Low":
		*p = TicketPriorityLow
	case "Medium":
		*p = TicketPriorityMedium
	case "High":
		*p = TicketPriorityHigh
	}
	return nil
}

func (p TicketPriority) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *TicketPriority) Scan(value interface{}) error {
	if value == nil {
		*p = TicketPriorityMedium
		return nil
	}
	switch v := value.(type) {
	case int64:
		*p = TicketPriority(v)
	case int:
		*p = TicketPriority(v)
	}
	return nil
}
