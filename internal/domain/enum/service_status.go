package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ServiceStatus represents the provisioning state of a hosted service
type ServiceStatus int

const (
	ServiceStatusPending    ServiceStatus = 0
	ServiceStatusActive     ServiceStatus = 1
	ServiceStatusSuspended  ServiceStatus = 2
	ServiceStatusTerminated ServiceStatus = 3
)

func (s ServiceStatus) String() string {
	return [...]string{"Pending", "Active", "Suspended", "Terminated"}[s]
}

func (s ServiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ServiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ServiceStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = ServiceStatusPending
	case "Active":
		*s = ServiceStatusActive
	case "Suspended":
		*s = ServiceStatusSuspended
	case "Terminated":
		*s = ServiceStatusTerminated
	}
	return nil
}

func (s ServiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ServiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ServiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ServiceStatus(v)
	case int:
		*s = ServiceStatus(v)
	}
	return nil
}
