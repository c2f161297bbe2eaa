package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticketFixture struct {
	svc        *TicketService
	ticketRepo *fakeTicketRepo
	replyRepo  *fakeTicketReplyRepo
	userRepo   *fakeUserRepo
	mailer     *fakeMailer
	now        time.Time
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	f := &ticketFixture{
		ticketRepo: newFakeTicketRepo(),
		replyRepo:  newFakeTicketReplyRepo(),
		userRepo:   newFakeUserRepo(),
		mailer:     &fakeMailer{},
		now:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewTicketService(f.ticketRepo, f.replyRepo, f.userRepo, newFakeServiceRepo(), f.mailer)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f *ticketFixture) seedCustomerUser(t *testing.T) *entity.User {
	t.Helper()
	user := &entity.User{FirstName: "Dana", LastName: "Reed", Email: "dana@example.test"}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func (f *ticketFixture) openTicket(t *testing.T, userID uuid.UUID) *entity.Ticket {
	t.Helper()
	ticket, err := f.svc.OpenTicket(context.Background(), &OpenTicketInput{
		UserID:   userID,
		Subject:  "Site is down",
		Priority: enum.TicketPriorityHigh,
		Message:  "My site returns a 502 since this morning.",
	})
	require.NoError(t, err)
	return ticket
}

func TestOpenTicketCreatesThread(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)

	ticket := f.openTicket(t, user.ID)

	assert.Equal(t, "TKT-000001", ticket.Number)
	assert.Equal(t, enum.TicketStatusOpen, ticket.Status)
	assert.Equal(t, "support", ticket.Department)

	replies, err := f.replyRepo.GetByTicketID(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.False(t, replies[0].IsStaff)
	assert.Equal(t, "My site returns a 502 since this morning.", replies[0].Message)
}

func TestOpenTicketRequiresSubjectAndMessage(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)

	_, err := f.svc.OpenTicket(context.Background(), &OpenTicketInput{UserID: user.ID})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))
}

func TestOpenTicketUnknownService(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)
	missing := uuid.New()

	_, err := f.svc.OpenTicket(context.Background(), &OpenTicketInput{
		UserID: user.ID, ServiceID: &missing, Subject: "x", Message: "y",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestStaffReplyAnswersAndNotifies(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)
	ticket := f.openTicket(t, user.ID)

	_, err := f.svc.Reply(context.Background(), &ReplyInput{
		TicketID: ticket.ID, UserID: uuid.New(), IsStaff: true,
		Message: "We restarted the service, please verify.",
	})
	require.NoError(t, err)

	stored, _ := f.ticketRepo.GetByID(context.Background(), ticket.ID)
	assert.Equal(t, enum.TicketStatusAnswered, stored.Status)
	require.NotNil(t, stored.LastReplyAt)
	assert.Equal(t, f.now, *stored.LastReplyAt)
	assert.Equal(t, 1, f.mailer.ticketEmails)
}

func TestStaffReplyNotificationFailureStillReplies(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)
	ticket := f.openTicket(t, user.ID)
	f.mailer.fail = true

	_, err := f.svc.Reply(context.Background(), &ReplyInput{
		TicketID: ticket.ID, UserID: uuid.New(), IsStaff: true, Message: "Fixed.",
	})
	require.NoError(t, err)

	stored, _ := f.ticketRepo.GetByID(context.Background(), ticket.ID)
	assert.Equal(t, enum.TicketStatusAnswered, stored.Status)
}

func TestCustomerReplyMarksCustomerReply(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)
	ticket := f.openTicket(t, user.ID)

	_, err := f.svc.Reply(context.Background(), &ReplyInput{
		TicketID: ticket.ID, UserID: user.ID, Message: "Still broken for me.",
	})
	require.NoError(t, err)

	stored, _ := f.ticketRepo.GetByID(context.Background(), ticket.ID)
	assert.Equal(t, enum.TicketStatusCustomerReply, stored.Status)
	assert.Zero(t, f.mailer.ticketEmails, "customer replies must not notify the customer")
}

func TestCustomerReplyReopensClosedTicket(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)
	ticket := f.openTicket(t, user.ID)

	_, err := f.svc.CloseTicket(context.Background(), ticket.ID)
	require.NoError(t, err)

	_, err = f.svc.Reply(context.Background(), &ReplyInput{
		TicketID: ticket.ID, UserID: user.ID, Message: "It broke again.",
	})
	require.NoError(t, err)

	stored, _ := f.ticketRepo.GetByID(context.Background(), ticket.ID)
	assert.Equal(t, enum.TicketStatusCustomerReply, stored.Status)
	assert.Nil(t, stored.ClosedAt)
}

func TestStaffReplyToClosedTicketRejected(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)
	ticket := f.openTicket(t, user.ID)

	_, err := f.svc.CloseTicket(context.Background(), ticket.ID)
	require.NoError(t, err)

	_, err = f.svc.Reply(context.Background(), &ReplyInput{
		TicketID: ticket.ID, UserID: uuid.New(), IsStaff: true, Message: "Late answer.",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}

func TestCustomerCannotReplyToForeignTicket(t *testing.T) {
	f := newTicketFixture(t)
	owner := f.seedCustomerUser(t)
	ticket := f.openTicket(t, owner.ID)

	_, err := f.svc.Reply(context.Background(), &ReplyInput{
		TicketID: ticket.ID, UserID: uuid.New(), Message: "Not my ticket.",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestCloseTicketIdempotent(t *testing.T) {
	f := newTicketFixture(t)
	user := f.seedCustomerUser(t)
	ticket := f.openTicket(t, user.ID)

	closed, err := f.svc.CloseTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedAt)
	firstClosedAt := *closed.ClosedAt

	f.now = f.now.Add(time.Hour)
	again, err := f.svc.CloseTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusClosed, again.Status)
	assert.Equal(t, firstClosedAt, *again.ClosedAt)
}

func TestOwnTicketAccessScopedToOwner(t *testing.T) {
	f := newTicketFixture(t)
	owner := f.seedCustomerUser(t)
	ticket := f.openTicket(t, owner.ID)

	got, err := f.svc.GetOwnTicket(context.Background(), ticket.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)

	_, err = f.svc.GetOwnTicket(context.Background(), ticket.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))

	_, err = f.svc.CloseOwnTicket(context.Background(), ticket.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}
