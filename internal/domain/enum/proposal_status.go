package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProposalStatus represents the stored lifecycle state of a proposal.
// Expiry is never stored as a status; it is derived from the valid-until
// date on every read.
type ProposalStatus int

const (
	ProposalStatusDraft    ProposalStatus = 0
	ProposalStatusSent     ProposalStatus = 1
	ProposalStatusViewed   ProposalStatus = 2
	ProposalStatusAccepted ProposalStatus = 3
	ProposalStatusRejected ProposalStatus = 4
)

func (s ProposalStatus) String() string {
	return [...]string{"Draft", "Sent", "Viewed", "Accepted", "Rejected"}[s]
}

// IsTerminal reports whether the status can never change again
func (s ProposalStatus) IsTerminal() bool {
	return s == ProposalStatusAccepted || s == ProposalStatusRejected
}

// IsOpenForResponse reports whether the recipient may still accept or reject
func (s ProposalStatus) IsOpenForResponse() bool {
	return s == ProposalStatusSent || s == ProposalStatusViewed
}

func (s ProposalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ProposalStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ProposalStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = ProposalStatusDraft
	case "Sent":
		*s = ProposalStatusSent
	case "Viewed":
		*s = ProposalStatusViewed
	case "Accepted":
		*s = ProposalStatusAccepted
	case "Rejected":
		*s = ProposalStatusRejected
	}
	return nil
}

func (s ProposalStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ProposalStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ProposalStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ProposalStatus(v)
	case int:
		*s = ProposalStatus(v)
	}
	return nil
}
