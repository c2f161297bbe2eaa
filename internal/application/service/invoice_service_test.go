package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	svc          *InvoiceService
	invoiceRepo  *fakeInvoiceRepo
	customerRepo *fakeCustomerRepo
	mailer       *fakeMailer
	now          time.Time
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	f := &invoiceFixture{
		invoiceRepo:  newFakeInvoiceRepo(),
		customerRepo: newFakeCustomerRepo(),
		mailer:       &fakeMailer{},
		now:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewInvoiceService(
		f.invoiceRepo, newFakeInvoiceItemRepo(), f.customerRepo,
		&fakeBillingRepo{}, f.mailer, nil,
	)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *invoiceFixture) seedDraft(t *testing.T) *entity.Invoice {
	t.Helper()
	customer := &entity.Customer{Name: "Acme Hosting Ltd", Email: "billing@acme.test"}
	require.NoError(t, f.customerRepo.Create(context.Background(), customer))

	invoice, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		CustomerID: customer.ID,
		TaxPercent: decimal.NewFromInt(5),
		Items: []InvoiceItemInput{
			{Name: "Hosting plan", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)
	return invoice
}

func TestCreateInvoiceManualDraft(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.seedDraft(t)

	assert.Equal(t, enum.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, entity.InvoiceSourceManual, invoice.Source)
	assert.Equal(t, "INV-000001", invoice.Number)
	assert.Equal(t, "Acme Hosting Ltd", invoice.BilledToName)
	assert.True(t, invoice.SubTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, invoice.TaxAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, invoice.Total.Equal(decimal.NewFromInt(105)))
	// Default payment window applies when no billing row is configured
	assert.Equal(t, f.now.AddDate(0, 0, 14), invoice.DueDate)
}

func TestInvoiceTransitionMatrix(t *testing.T) {
	f := newInvoiceFixture(t)

	// Draft can only move to unpaid or cancelled
	draft := f.seedDraft(t)
	_, err := f.svc.MarkPaid(context.Background(), draft.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
	_, err = f.svc.RefundInvoice(context.Background(), draft.ID)
	require.Error(t, err)

	issued, err := f.svc.IssueInvoice(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusUnpaid, issued.Status)
	assert.Equal(t, 1, f.mailer.invoiceEmails)

	// Unpaid cannot be issued again or refunded
	_, err = f.svc.IssueInvoice(context.Background(), draft.ID)
	require.Error(t, err)
	_, err = f.svc.RefundInvoice(context.Background(), draft.ID)
	require.Error(t, err)

	paid, err := f.svc.MarkPaid(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, f.now, *paid.PaidAt)

	// Paid cannot be paid again or cancelled, only refunded
	_, err = f.svc.MarkPaid(context.Background(), draft.ID)
	require.Error(t, err)
	_, err = f.svc.CancelInvoice(context.Background(), draft.ID)
	require.Error(t, err)

	refunded, err := f.svc.RefundInvoice(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusRefunded, refunded.Status)

	// Refunded is terminal
	_, err = f.svc.MarkPaid(context.Background(), draft.ID)
	require.Error(t, err)
	_, err = f.svc.CancelInvoice(context.Background(), draft.ID)
	require.Error(t, err)
}

func TestCancelDraftAndUnpaid(t *testing.T) {
	f := newInvoiceFixture(t)

	draft := f.seedDraft(t)
	cancelled, err := f.svc.CancelInvoice(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCancelled, cancelled.Status)

	// Cancelled is terminal
	_, err = f.svc.IssueInvoice(context.Background(), draft.ID)
	require.Error(t, err)

	second := f.seedDraft(t)
	_, err = f.svc.IssueInvoice(context.Background(), second.ID)
	require.NoError(t, err)
	cancelled, err = f.svc.CancelInvoice(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCancelled, cancelled.Status)
}

func TestIssueInvoiceMailFailureKeepsUnpaid(t *testing.T) {
	f := newInvoiceFixture(t)
	draft := f.seedDraft(t)
	f.mailer.fail = true

	_, err := f.svc.IssueInvoice(context.Background(), draft.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, appErrorCode(t, err))

	stored, _ := f.invoiceRepo.GetByID(context.Background(), draft.ID)
	assert.Equal(t, enum.InvoiceStatusUnpaid, stored.Status)
}

func TestDeleteInvoiceDraftOnly(t *testing.T) {
	f := newInvoiceFixture(t)

	draft := f.seedDraft(t)
	issued := f.seedDraft(t)
	_, err := f.svc.IssueInvoice(context.Background(), issued.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteInvoice(context.Background(), draft.ID))

	err = f.svc.DeleteInvoice(context.Background(), issued.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}

func TestInvoiceSnapshotIsolatedFromCustomerEdits(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.seedDraft(t)

	customer, err := f.customerRepo.GetByID(context.Background(), *invoice.CustomerID)
	require.NoError(t, err)
	customer.Name = "Renamed Corp"
	customer.Email = "new@renamed.test"
	require.NoError(t, f.customerRepo.Update(context.Background(), customer))

	stored, err := f.svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Hosting Ltd", stored.BilledToName)
	assert.Equal(t, "billing@acme.test", stored.BilledToEmail)
}
