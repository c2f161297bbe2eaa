// Package pdfgen renders proposal and invoice documents to PDF using a set
// of named layout templates. An unknown template name falls back to classic.
package pdfgen

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// Template selects one of the built-in document layouts
type Template string

const (
	TemplateClassic   Template = "classic"
	TemplateModern    Template = "modern"
	TemplateCompact   Template = "compact"
	TemplateCorporate Template = "corporate"
	TemplateBold      Template = "bold"
)

// Line is one priced row in the document table
type Line struct {
	Name        string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Party identifies the issuer or the recipient of a document
type Party struct {
	Name    string
	Company string
	Email   string
	Address string
	Phone   string
}

// Document is the renderer-agnostic input for both proposals and invoices
type Document struct {
	Kind           string // heading, e.g. "PROPOSAL" or "INVOICE"
	Number         string
	Title          string
	Issuer         Party
	Recipient      Party
	Items          []Line
	SubTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxPercent     decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	CurrencyCode   string
	IssueDate      time.Time
	ExpiryDate     *time.Time // valid-until or due date, label depends on Kind
	ExpiryLabel    string
	Notes          string
	Terms          string
	Template       Template
}

// Renderer builds PDF documents
type Renderer struct{}

// NewRenderer creates a new PDF renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Proposal renders a proposal document to PDF bytes
func (r *Renderer) Proposal(doc Document) ([]byte, error) {
	if doc.Kind == "" {
		doc.Kind = "PROPOSAL"
	}
	if doc.ExpiryLabel == "" {
		doc.ExpiryLabel = "Valid until"
	}
	return r.render(doc)
}

// Invoice renders an invoice document to PDF bytes
func (r *Renderer) Invoice(doc Document) ([]byte, error) {
	if doc.Kind == "" {
		doc.Kind = "INVOICE"
	}
	if doc.ExpiryLabel == "" {
		doc.ExpiryLabel = "Due date"
	}
	return r.render(doc)
}

func (r *Renderer) render(doc Document) ([]byte, error) {
	style := styleFor(doc.Template)

	cfg := config.NewBuilder().
		WithLeftMargin(style.margin).
		WithTopMargin(style.margin).
		WithRightMargin(style.margin).
		Build()

	m := maroto.New(cfg)

	addHeader(m, doc, style)
	addParties(m, doc, style)
	addItemsTable(m, doc, style)
	addTotals(m, doc, style)
	addNotes(m, doc, style)

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfDoc.GetBytes(), nil
}

func addHeader(m core.Maroto, doc Document, s style) {
	m.AddRow(s.headerHeight,
		col.New(6).Add(
			text.New(doc.Issuer.Name, props.Text{
				Size:  s.titleSize,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: s.accent,
			}),
			text.New(doc.Issuer.Address, props.Text{
				Size:  s.bodySize,
				Top:   8,
				Align: align.Left,
			}),
			text.New(doc.Issuer.Email, props.Text{
				Size:  s.bodySize,
				Top:   13,
				Align: align.Left,
			}),
		),
		col.New(6).Add(
			text.New(doc.Kind, props.Text{
				Size:  s.headingSize,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: s.accent,
			}),
			text.New(fmt.Sprintf("# %s", doc.Number), props.Text{
				Size:  s.bodySize + 1,
				Top:   9,
				Align: align.Right,
			}),
			text.New(fmt.Sprintf("Date: %s", doc.IssueDate.Format("Jan 02, 2006")), props.Text{
				Size:  s.bodySize,
				Top:   14,
				Align: align.Right,
			}),
		),
	)

	if s.separators {
		m.AddRow(5, line.NewCol(12))
	}
}

func addParties(m core.Maroto, doc Document, s style) {
	recipientLines := []core.Component{
		text.New(doc.Kind+" FOR:", props.Text{
			Size:  s.bodySize,
			Style: fontstyle.Bold,
			Color: s.accent,
		}),
		text.New(doc.Recipient.Name, props.Text{Size: s.bodySize, Top: 5}),
	}
	top := 10.0
	if doc.Recipient.Company != "" {
		recipientLines = append(recipientLines,
			text.New(doc.Recipient.Company, props.Text{Size: s.bodySize, Top: top}))
		top += 5
	}
	if doc.Recipient.Email != "" {
		recipientLines = append(recipientLines,
			text.New(doc.Recipient.Email, props.Text{Size: s.bodySize, Top: top}))
		top += 5
	}
	if doc.Recipient.Address != "" {
		recipientLines = append(recipientLines,
			text.New(doc.Recipient.Address, props.Text{Size: s.bodySize, Top: top}))
	}

	rightLines := []core.Component{}
	if doc.Title != "" {
		rightLines = append(rightLines, text.New(doc.Title, props.Text{
			Size:  s.bodySize + 1,
			Style: fontstyle.Bold,
			Align: align.Right,
		}))
	}
	if doc.ExpiryDate != nil {
		rightLines = append(rightLines, text.New(
			fmt.Sprintf("%s: %s", doc.ExpiryLabel, doc.ExpiryDate.Format("Jan 02, 2006")),
			props.Text{Size: s.bodySize, Top: 6, Align: align.Right}))
	}

	m.AddRow(s.partyHeight,
		col.New(6).Add(recipientLines...),
		col.New(6).Add(rightLines...),
	)

	if s.separators {
		m.AddRow(5, line.NewCol(12))
	}
}

func addItemsTable(m core.Maroto, doc Document, s style) {
	m.AddRow(8,
		col.New(6).Add(text.New("Item", props.Text{
			Size: s.bodySize, Style: fontstyle.Bold, Color: s.accent,
		})),
		col.New(2).Add(text.New("Qty", props.Text{
			Size: s.bodySize, Style: fontstyle.Bold, Align: align.Center, Color: s.accent,
		})),
		col.New(2).Add(text.New("Price", props.Text{
			Size: s.bodySize, Style: fontstyle.Bold, Align: align.Right, Color: s.accent,
		})),
		col.New(2).Add(text.New("Total", props.Text{
			Size: s.bodySize, Style: fontstyle.Bold, Align: align.Right, Color: s.accent,
		})),
	)
	m.AddRow(2, line.NewCol(12))

	for _, item := range doc.Items {
		rowHeight := s.rowHeight
		nameCol := []core.Component{
			text.New(item.Name, props.Text{Size: s.bodySize}),
		}
		if item.Description != "" && !s.compact {
			nameCol = append(nameCol, text.New(item.Description, props.Text{
				Size: s.bodySize - 1.5,
				Top:  5,
			}))
			rowHeight += 5
		}
		m.AddRow(rowHeight,
			col.New(6).Add(nameCol...),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantity), props.Text{
				Size: s.bodySize, Align: align.Center,
			})),
			col.New(2).Add(text.New(money(item.UnitPrice, doc.CurrencyCode), props.Text{
				Size: s.bodySize, Align: align.Right,
			})),
			col.New(2).Add(text.New(money(item.LineTotal, doc.CurrencyCode), props.Text{
				Size: s.bodySize, Align: align.Right,
			})),
		)
	}

	m.AddRow(3, line.NewCol(12))
}

func addTotals(m core.Maroto, doc Document, s style) {
	totalRow := func(label, value string, emphasize bool) {
		textStyle := fontstyle.Normal
		size := s.bodySize
		var color *props.Color
		if emphasize {
			textStyle = fontstyle.Bold
			size = s.bodySize + 2
			color = s.accent
		}
		m.AddRow(6,
			col.New(8).Add(text.New(label, props.Text{
				Size: size, Style: textStyle, Align: align.Right, Color: color,
			})),
			col.New(4).Add(text.New(value, props.Text{
				Size: size, Style: textStyle, Align: align.Right, Color: color,
			})),
		)
	}

	totalRow("Subtotal:", money(doc.SubTotal, doc.CurrencyCode), false)
	if doc.DiscountAmount.IsPositive() {
		totalRow("Discount:", "-"+money(doc.DiscountAmount, doc.CurrencyCode), false)
	}
	if doc.TaxAmount.IsPositive() {
		label := "Tax:"
		if doc.TaxPercent.IsPositive() {
			label = fmt.Sprintf("Tax (%s%%):", doc.TaxPercent.StringFixed(1))
		}
		totalRow(label, money(doc.TaxAmount, doc.CurrencyCode), false)
	}
	totalRow("Total:", money(doc.Total, doc.CurrencyCode), true)
}

func addNotes(m core.Maroto, doc Document, s style) {
	section := func(heading, body string) {
		m.AddRow(8, col.New(12).Add(text.New(heading, props.Text{
			Size: s.bodySize, Style: fontstyle.Bold, Top: 4, Color: s.accent,
		})))
		m.AddRow(12, col.New(12).Add(text.New(body, props.Text{
			Size: s.bodySize - 0.5,
		})))
	}

	if doc.Notes != "" {
		section("Notes", doc.Notes)
	}
	if doc.Terms != "" {
		section("Terms & Conditions", doc.Terms)
	}
}

func money(v decimal.Decimal, code string) string {
	if code == "" {
		code = "USD"
	}
	return fmt.Sprintf("%s %s", code, v.Round(2).StringFixed(2))
}
