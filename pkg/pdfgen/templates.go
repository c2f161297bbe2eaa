package pdfgen

import "github.com/johnfercher/maroto/v2/pkg/props"

// style holds the layout knobs that distinguish the document templates
type style struct {
	margin       float64
	headerHeight float64
	partyHeight  float64
	rowHeight    float64
	titleSize    float64
	headingSize  float64
	bodySize     float64
	accent       *props.Color
	separators   bool
	compact      bool
}

var (
	accentBlue  = &props.Color{Red: 37, Green: 99, Blue: 235}
	accentSlate = &props.Color{Red: 51, Green: 65, Blue: 85}
	accentRed   = &props.Color{Red: 190, Green: 18, Blue: 60}
)

var templateStyles = map[Template]style{
	TemplateClassic: {
		margin:       10,
		headerHeight: 30,
		partyHeight:  32,
		rowHeight:    6,
		titleSize:    16,
		headingSize:  20,
		bodySize:     9,
		separators:   true,
	},
	TemplateModern: {
		margin:       14,
		headerHeight: 28,
		partyHeight:  30,
		rowHeight:    7,
		titleSize:    15,
		headingSize:  22,
		bodySize:     9,
		accent:       accentBlue,
		separators:   false,
	},
	TemplateCompact: {
		margin:       8,
		headerHeight: 22,
		partyHeight:  24,
		rowHeight:    5,
		titleSize:    13,
		headingSize:  16,
		bodySize:     8,
		separators:   true,
		compact:      true,
	},
	TemplateCorporate: {
		margin:       12,
		headerHeight: 32,
		partyHeight:  34,
		rowHeight:    7,
		titleSize:    17,
		headingSize:  19,
		bodySize:     10,
		accent:       accentSlate,
		separators:   true,
	},
	TemplateBold: {
		margin:       10,
		headerHeight: 34,
		partyHeight:  32,
		rowHeight:    8,
		titleSize:    20,
		headingSize:  26,
		bodySize:     10,
		accent:       accentRed,
		separators:   true,
	},
}

// styleFor resolves a template name; unknown names render as classic
func styleFor(t Template) style {
	if s, ok := templateStyles[t]; ok {
		return s
	}
	return templateStyles[TemplateClassic]
}
