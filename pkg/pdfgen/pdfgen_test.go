package pdfgen

import (
	"testing"
	"time"

	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument(t Template) Document {
	validUntil := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return Document{
		Number: "PRO-000042",
		Title:  "Annual hosting bundle",
		Issuer: Party{
			Name:    "Hostify",
			Email:   "billing@hostify.test",
			Address: "1 Server Street",
		},
		Recipient: Party{
			Name:    "Ada Lovelace",
			Company: "Analytical Engines Ltd",
			Email:   "ada@example.com",
		},
		Items: []Line{
			{Name: "Cloud Starter", Description: "Shared hosting, monthly", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99"), LineTotal: decimal.RequireFromString("19.98")},
			{Name: "Dedicated VPS", Quantity: 1, UnitPrice: decimal.RequireFromString("49.99"), LineTotal: decimal.RequireFromString("49.99")},
		},
		SubTotal:       decimal.RequireFromString("69.97"),
		DiscountAmount: decimal.RequireFromString("6.997"),
		TaxPercent:     decimal.RequireFromString("5"),
		TaxAmount:      decimal.RequireFromString("3.14865"),
		Total:          decimal.RequireFromString("66.12165"),
		CurrencyCode:   "USD",
		IssueDate:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:     &validUntil,
		Notes:          "Thanks for your business.",
		Terms:          "Payment due within 14 days of acceptance.",
		Template:       t,
	}
}

func TestRendererProposalAllTemplates(t *testing.T) {
	r := NewRenderer()

	for _, tmpl := range []Template{TemplateClassic, TemplateModern, TemplateCompact, TemplateCorporate, TemplateBold} {
		t.Run(string(tmpl), func(t *testing.T) {
			data, err := r.Proposal(sampleDocument(tmpl))
			require.NoError(t, err)
			require.NotEmpty(t, data)
			assert.Equal(t, "%PDF", string(data[:4]))
		})
	}
}

func TestRendererInvoice(t *testing.T) {
	r := NewRenderer()

	doc := sampleDocument(TemplateClassic)
	doc.Kind = ""
	data, err := r.Invoice(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestUnknownTemplateFallsBackToClassic(t *testing.T) {
	assert.Equal(t, styleFor(TemplateClassic), styleFor(Template("sparkly")))
	assert.Equal(t, styleFor(TemplateClassic), styleFor(Template("")))

	r := NewRenderer()
	doc := sampleDocument(Template("sparkly"))
	data, err := r.Proposal(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestStoredTemplateNamesSelectTheirStyle(t *testing.T) {
	// Stored templates reach the renderer as Template(enum.String()), so
	// every enum name must hit its own entry in the layout map.
	classic := styleFor(TemplateClassic)
	for _, stored := range []enum.ProposalTemplate{
		enum.TemplateModern,
		enum.TemplateCompact,
		enum.TemplateCorporate,
		enum.TemplateBold,
	} {
		resolved := styleFor(Template(stored.String()))
		assert.NotEqual(t, classic, resolved, "template %s fell back to classic", stored)
	}
	assert.Equal(t, classic, styleFor(Template(enum.TemplateClassic.String())))
}

func TestTemplateNamesRoundTripThroughEnum(t *testing.T) {
	for _, tmpl := range []Template{TemplateClassic, TemplateModern, TemplateCompact, TemplateCorporate, TemplateBold} {
		parsed := enum.ParseProposalTemplate(string(tmpl))
		assert.Equal(t, string(tmpl), parsed.String())
	}
	// Query input arrives in whatever case the client sent
	assert.Equal(t, "corporate", enum.ParseProposalTemplate("Corporate").String())
}

func TestRendererHandlesMinimalDocument(t *testing.T) {
	r := NewRenderer()

	doc := Document{
		Number:    "INV-000001",
		Issuer:    Party{Name: "Hostify"},
		Recipient: Party{Name: "Customer"},
		IssueDate: time.Now(),
	}
	data, err := r.Invoice(doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
