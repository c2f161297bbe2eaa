package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// ProposalTemplate selects one of the fixed document layouts used when
// rendering a proposal or invoice to PDF
type ProposalTemplate int

const (
	TemplateClassic   ProposalTemplate = 0
	TemplateModern    ProposalTemplate = 1
	TemplateCompact   ProposalTemplate = 2
	TemplateCorporate ProposalTemplate = 3
	TemplateBold      ProposalTemplate = 4
)

// String returns the renderer key for the template; the pdfgen layout map
// is keyed on these exact names.
func (t ProposalTemplate) String() string {
	switch t {
	case TemplateModern:
		return "modern"
	case TemplateCompact:
		return "compact"
	case TemplateCorporate:
		return "corporate"
	case TemplateBold:
		return "bold"
	default:
		return "classic"
	}
}

// ParseProposalTemplate maps a template name to its enum value. Unknown
// names fall back to the classic layout instead of failing.
func ParseProposalTemplate(name string) ProposalTemplate {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "modern":
		return TemplateModern
	case "compact":
		return TemplateCompact
	case "corporate":
		return TemplateCorporate
	case "bold":
		return TemplateBold
	default:
		return TemplateClassic
	}
}

func (t ProposalTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ProposalTemplate) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ProposalTemplate(i)
		return nil
	}
	*t = ParseProposalTemplate(str)
	return nil
}

func (t ProposalTemplate) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ProposalTemplate) Scan(value interface{}) error {
	if value == nil {
		*t = TemplateClassic
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ProposalTemplate(v)
	case int:
		*t = ProposalTemplate(v)
	}
	return nil
}
