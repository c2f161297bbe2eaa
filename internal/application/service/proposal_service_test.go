package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type proposalFixture struct {
	svc          *ProposalService
	proposalRepo *fakeProposalRepo
	itemRepo     *fakeProposalItemRepo
	customerRepo *fakeCustomerRepo
	invoiceRepo  *fakeInvoiceRepo
	invItemRepo  *fakeInvoiceItemRepo
	mailer       *fakeMailer
	provisioner  *fakeProvisioner
	now          time.Time
}

func newProposalFixture(t *testing.T) *proposalFixture {
	t.Helper()
	f := &proposalFixture{
		proposalRepo: newFakeProposalRepo(),
		itemRepo:     newFakeProposalItemRepo(),
		customerRepo: newFakeCustomerRepo(),
		invoiceRepo:  newFakeInvoiceRepo(),
		invItemRepo:  newFakeInvoiceItemRepo(),
		mailer:       &fakeMailer{},
		provisioner:  &fakeProvisioner{},
		now:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewProposalService(
		f.proposalRepo, f.itemRepo, f.customerRepo,
		f.invoiceRepo, f.invItemRepo, &fakeBillingRepo{},
		f.mailer, f.provisioner, nil,
	)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *proposalFixture) seedCustomer(t *testing.T) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: "Acme Hosting Ltd", Email: "billing@acme.test"}
	require.NoError(t, f.customerRepo.Create(context.Background(), customer))
	return customer
}

// seedProposal plants a proposal directly in the repo in the given state
func (f *proposalFixture) seedProposal(t *testing.T, status enum.ProposalStatus, validUntil time.Time) *entity.Proposal {
	t.Helper()
	customer := f.seedCustomer(t)
	proposal := &entity.Proposal{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		CustomerID:    &customer.ID,
		Number:        "PRO-000099",
		Title:         "Managed hosting",
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		SubTotal:      decimal.NewFromInt(100),
		Total:         decimal.NewFromInt(100),
		ValidUntil:    validUntil,
		Status:        status,
		PublicToken:   "tok-" + uuid.NewString(),
		Version:       1,
	}
	require.NoError(t, f.proposalRepo.Create(context.Background(), proposal))
	require.NoError(t, f.itemRepo.CreateBatch(context.Background(), []entity.ProposalItem{
		{ProposalID: proposal.ID, Name: "Hosting plan", Quantity: 1, UnitPrice: decimal.NewFromInt(100), LineTotal: decimal.NewFromInt(100)},
	}))
	return proposal
}

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok, "expected *apperror.AppError, got %T: %v", err, err)
	return appErr.Code
}

func TestCreateProposalDraftDefaults(t *testing.T) {
	f := newProposalFixture(t)
	customer := f.seedCustomer(t)

	proposal, err := f.svc.CreateProposal(context.Background(), &CreateProposalInput{
		UserID:     uuid.New(),
		CustomerID: &customer.ID,
		Title:      "Web hosting quote",
		TaxPercent: decimal.NewFromInt(5),
		Items: []ProposalItemInput{
			{Name: "Starter plan", Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
			{Name: "Setup", Quantity: 1, UnitPrice: decimal.RequireFromString("49.99")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.ProposalStatusDraft, proposal.Status)
	assert.Equal(t, 1, proposal.Version)
	assert.Equal(t, "PRO-000001", proposal.Number)
	assert.NotEmpty(t, proposal.PublicToken)
	assert.Equal(t, customer.Name, proposal.CustomerName)
	assert.Equal(t, customer.Email, proposal.CustomerEmail)
	// No billing row configured, so the 30 day default window applies
	assert.Equal(t, f.now.AddDate(0, 0, 30), proposal.ValidUntil)
	assert.True(t, proposal.SubTotal.Equal(decimal.RequireFromString("69.97")))
}

func TestCreateProposalRequiresItems(t *testing.T) {
	f := newProposalFixture(t)
	customer := f.seedCustomer(t)

	_, err := f.svc.CreateProposal(context.Background(), &CreateProposalInput{
		UserID:     uuid.New(),
		CustomerID: &customer.ID,
		Title:      "Empty",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))
}

func TestCreateProposalReusesCustomerByEmail(t *testing.T) {
	f := newProposalFixture(t)
	existing := f.seedCustomer(t)

	proposal, err := f.svc.CreateProposal(context.Background(), &CreateProposalInput{
		UserID:      uuid.New(),
		NewCustomer: &NewCustomerInput{Name: "Someone Else", Email: existing.Email},
		Title:       "Quote",
		Items:       []ProposalItemInput{{Name: "Plan", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	require.NotNil(t, proposal.CustomerID)
	assert.Equal(t, existing.ID, *proposal.CustomerID)

	count, _ := f.customerRepo.Count(context.Background())
	assert.EqualValues(t, 1, count)
}

func TestUpdateProposalDraftOnly(t *testing.T) {
	f := newProposalFixture(t)
	sent := f.seedProposal(t, enum.ProposalStatusSent, f.now.AddDate(0, 0, 10))

	_, err := f.svc.UpdateProposal(context.Background(), &UpdateProposalInput{
		ID:      sent.ID,
		Version: 1,
		Title:   "Changed",
		Items:   []ProposalItemInput{{Name: "Plan", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))

	stored, _ := f.proposalRepo.GetByID(context.Background(), sent.ID)
	assert.Equal(t, "Managed hosting", stored.Title)
}

func TestUpdateProposalVersionConflict(t *testing.T) {
	f := newProposalFixture(t)
	draft := f.seedProposal(t, enum.ProposalStatusDraft, f.now.AddDate(0, 0, 10))

	_, err := f.svc.UpdateProposal(context.Background(), &UpdateProposalInput{
		ID:      draft.ID,
		Version: 7,
		Title:   "Stale edit",
		Items:   []ProposalItemInput{{Name: "Plan", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.ErrorIs(t, err, apperror.ErrVersionConflict)
}

func TestUpdateProposalBumpsVersion(t *testing.T) {
	f := newProposalFixture(t)
	draft := f.seedProposal(t, enum.ProposalStatusDraft, f.now.AddDate(0, 0, 10))

	updated, err := f.svc.UpdateProposal(context.Background(), &UpdateProposalInput{
		ID:      draft.ID,
		Version: 1,
		Title:   "Revised quote",
		Items:   []ProposalItemInput{{Name: "Bigger plan", Quantity: 1, UnitPrice: decimal.NewFromInt(200)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "Revised quote", updated.Title)

	items, _ := f.itemRepo.GetByProposalID(context.Background(), draft.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "Bigger plan", items[0].Name)
}

func TestSendProposal(t *testing.T) {
	f := newProposalFixture(t)
	draft := f.seedProposal(t, enum.ProposalStatusDraft, f.now.AddDate(0, 0, 10))

	sent, err := f.svc.SendProposal(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ProposalStatusSent, sent.Status)
	require.NotNil(t, sent.SentAt)
	assert.Equal(t, 1, f.mailer.proposalEmails)

	// Only drafts can be sent
	_, err = f.svc.SendProposal(context.Background(), draft.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}

func TestSendProposalMailFailureKeepsSentStatus(t *testing.T) {
	f := newProposalFixture(t)
	draft := f.seedProposal(t, enum.ProposalStatusDraft, f.now.AddDate(0, 0, 10))
	f.mailer.fail = true

	_, err := f.svc.SendProposal(context.Background(), draft.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, appErrorCode(t, err))

	stored, _ := f.proposalRepo.GetByID(context.Background(), draft.ID)
	assert.Equal(t, enum.ProposalStatusSent, stored.Status)
}

func TestGetByPublicTokenHidesDrafts(t *testing.T) {
	f := newProposalFixture(t)
	draft := f.seedProposal(t, enum.ProposalStatusDraft, f.now.AddDate(0, 0, 10))

	_, err := f.svc.GetByPublicToken(context.Background(), draft.PublicToken)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))

	_, err = f.svc.GetByPublicToken(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestMarkViewedIdempotent(t *testing.T) {
	f := newProposalFixture(t)
	sent := f.seedProposal(t, enum.ProposalStatusSent, f.now.AddDate(0, 0, 10))

	viewed, err := f.svc.MarkViewed(context.Background(), sent.PublicToken)
	require.NoError(t, err)
	assert.Equal(t, enum.ProposalStatusViewed, viewed.Status)
	require.NotNil(t, viewed.ViewedAt)

	again, err := f.svc.MarkViewed(context.Background(), sent.PublicToken)
	require.NoError(t, err)
	assert.Equal(t, enum.ProposalStatusViewed, again.Status)

	stored, _ := f.proposalRepo.GetByID(context.Background(), sent.ID)
	assert.Equal(t, 2, stored.Version)
}

func TestAcceptProposalCreatesInvoiceAndProvisions(t *testing.T) {
	f := newProposalFixture(t)
	sent := f.seedProposal(t, enum.ProposalStatusViewed, f.now.AddDate(0, 0, 10))

	proposal, invoice, err := f.svc.AcceptProposal(context.Background(), sent.PublicToken)
	require.NoError(t, err)
	assert.Equal(t, enum.ProposalStatusAccepted, proposal.Status)
	require.NotNil(t, proposal.RespondedAt)

	require.NotNil(t, invoice)
	assert.Equal(t, entity.InvoiceSourceProposal, invoice.Source)
	assert.Equal(t, enum.InvoiceStatusUnpaid, invoice.Status)
	assert.Equal(t, sent.CustomerName, invoice.BilledToName)
	assert.True(t, invoice.Total.Equal(sent.Total))

	items, _ := f.invItemRepo.GetByInvoiceID(context.Background(), invoice.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "Hosting plan", items[0].Name)

	assert.Equal(t, 1, f.provisioner.calls)
}

func TestRejectProposalRecordsReason(t *testing.T) {
	f := newProposalFixture(t)
	sent := f.seedProposal(t, enum.ProposalStatusSent, f.now.AddDate(0, 0, 10))

	reason := "Went with another provider"
	proposal, err := f.svc.RejectProposal(context.Background(), sent.PublicToken, &reason)
	require.NoError(t, err)
	assert.Equal(t, enum.ProposalStatusRejected, proposal.Status)
	require.NotNil(t, proposal.RejectReason)
	assert.Equal(t, reason, *proposal.RejectReason)

	// No invoice appears on rejection
	count, _ := f.invoiceRepo.CountByStatus(context.Background(), enum.InvoiceStatusUnpaid)
	assert.EqualValues(t, 0, count)
}

// Responding must fail for every combination of terminal status and expiry,
// leaving the stored proposal untouched.
func TestRespondRejectedForClosedOrExpired(t *testing.T) {
	day := 24 * time.Hour
	cases := []struct {
		name       string
		status     enum.ProposalStatus
		validDelta time.Duration
	}{
		{"terminal not expired", enum.ProposalStatusAccepted, 10 * day},
		{"terminal expired", enum.ProposalStatusRejected, -day},
		{"open expired", enum.ProposalStatusSent, -day},
		{"viewed expired", enum.ProposalStatusViewed, -day},
	}

	for _, tc := range cases {
		t.Run(tc.name+" accept", func(t *testing.T) {
			f := newProposalFixture(t)
			seeded := f.seedProposal(t, tc.status, f.now.Add(tc.validDelta))

			_, _, err := f.svc.AcceptProposal(context.Background(), seeded.PublicToken)
			require.Error(t, err)
			assert.Equal(t, http.StatusConflict, appErrorCode(t, err))

			stored, _ := f.proposalRepo.GetByID(context.Background(), seeded.ID)
			assert.Equal(t, tc.status, stored.Status)
			assert.Equal(t, 0, f.provisioner.calls)
		})

		t.Run(tc.name+" reject", func(t *testing.T) {
			f := newProposalFixture(t)
			seeded := f.seedProposal(t, tc.status, f.now.Add(tc.validDelta))

			_, err := f.svc.RejectProposal(context.Background(), seeded.PublicToken, nil)
			require.Error(t, err)
			assert.Equal(t, http.StatusConflict, appErrorCode(t, err))

			stored, _ := f.proposalRepo.GetByID(context.Background(), seeded.ID)
			assert.Equal(t, tc.status, stored.Status)
		})
	}
}

func TestDeleteProposalDraftOnly(t *testing.T) {
	f := newProposalFixture(t)
	sent := f.seedProposal(t, enum.ProposalStatusSent, f.now.AddDate(0, 0, 10))

	err := f.svc.DeleteProposal(context.Background(), sent.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))

	draft := f.seedProposal(t, enum.ProposalStatusDraft, f.now.AddDate(0, 0, 10))
	require.NoError(t, f.svc.DeleteProposal(context.Background(), draft.ID))
}
