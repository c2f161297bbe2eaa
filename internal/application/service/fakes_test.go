package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/email"
)

// In-memory repository fakes. They keep entities in maps and implement just
// enough of each interface's semantics for the services under test,
// including the versioned proposal write.

type fakeProposalRepo struct {
	proposals map[uuid.UUID]*entity.Proposal
	seq       int
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{proposals: make(map[uuid.UUID]*entity.Proposal)}
}

func (r *fakeProposalRepo) Create(_ context.Context, p *entity.Proposal) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *fakeProposalRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Proposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProposalRepo) GetByNumber(_ context.Context, number string) (*entity.Proposal, error) {
	for _, p := range r.proposals {
		if p.Number == number {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProposalRepo) GetByPublicToken(_ context.Context, token string) (*entity.Proposal, error) {
	for _, p := range r.proposals {
		if p.PublicToken == token {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProposalRepo) Update(_ context.Context, p *entity.Proposal) error {
	if _, ok := r.proposals[p.ID]; !ok {
		return errors.New("proposal not found")
	}
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *fakeProposalRepo) UpdateVersioned(_ context.Context, p *entity.Proposal, expectedVersion int) (bool, error) {
	stored, ok := r.proposals[p.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	cp := *p
	cp.Version = expectedVersion + 1
	r.proposals[p.ID] = &cp
	p.Version = cp.Version
	return true, nil
}

func (r *fakeProposalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.proposals, id)
	return nil
}

func (r *fakeProposalRepo) List(_ context.Context, _ *repository.ProposalFilterParams) ([]entity.Proposal, int64, error) {
	out := make([]entity.Proposal, 0, len(r.proposals))
	for _, p := range r.proposals {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProposalRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProposalRepo) GetNextSequenceNumber(_ context.Context) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeProposalRepo) CountByStatus(_ context.Context, status enum.ProposalStatus) (int64, error) {
	var n int64
	for _, p := range r.proposals {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeProposalItemRepo struct {
	items map[uuid.UUID][]entity.ProposalItem
}

func newFakeProposalItemRepo() *fakeProposalItemRepo {
	return &fakeProposalItemRepo{items: make(map[uuid.UUID][]entity.ProposalItem)}
}

func (r *fakeProposalItemRepo) CreateBatch(_ context.Context, items []entity.ProposalItem) error {
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.ProposalID] = append(r.items[item.ProposalID], item)
	}
	return nil
}

func (r *fakeProposalItemRepo) GetByProposalID(_ context.Context, proposalID uuid.UUID) ([]entity.ProposalItem, error) {
	return r.items[proposalID], nil
}

func (r *fakeProposalItemRepo) DeleteByProposalID(_ context.Context, proposalID uuid.UUID) error {
	delete(r.items, proposalID)
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.UserID != nil && *c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	out := make([]entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
	seq      int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByNumber(_ context.Context, number string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.Number == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, _ *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	out := make([]entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeInvoiceRepo) GetNextSequenceNumber(_ context.Context) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeInvoiceRepo) CountByStatus(_ context.Context, status enum.InvoiceStatus) (int64, error) {
	var n int64
	for _, inv := range r.invoices {
		if inv.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeInvoiceItemRepo struct {
	items map[uuid.UUID][]entity.InvoiceItem
}

func newFakeInvoiceItemRepo() *fakeInvoiceItemRepo {
	return &fakeInvoiceItemRepo{items: make(map[uuid.UUID][]entity.InvoiceItem)}
}

func (r *fakeInvoiceItemRepo) CreateBatch(_ context.Context, items []entity.InvoiceItem) error {
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.InvoiceID] = append(r.items[item.InvoiceID], item)
	}
	return nil
}

func (r *fakeInvoiceItemRepo) GetByInvoiceID(_ context.Context, invoiceID uuid.UUID) ([]entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}

func (r *fakeInvoiceItemRepo) DeleteByInvoiceID(_ context.Context, invoiceID uuid.UUID) error {
	delete(r.items, invoiceID)
	return nil
}

type fakeBillingRepo struct {
	settings *entity.BillingSettings
}

func (r *fakeBillingRepo) Get(_ context.Context) (*entity.BillingSettings, error) {
	if r.settings == nil {
		return nil, nil
	}
	cp := *r.settings
	return &cp, nil
}

func (r *fakeBillingRepo) Upsert(_ context.Context, settings *entity.BillingSettings) error {
	cp := *settings
	r.settings = &cp
	return nil
}

type fakeCartRepo struct {
	items map[uuid.UUID]*entity.CartItem
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[uuid.UUID]*entity.CartItem)}
}

func (r *fakeCartRepo) Add(_ context.Context, item *entity.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeCartRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]entity.CartItem, error) {
	out := make([]entity.CartItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) GetByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.ProductID != nil && *item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) Update(_ context.Context, item *entity.CartItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeCartRepo) Remove(_ context.Context, id uuid.UUID, userID uuid.UUID) error {
	if item, ok := r.items[id]; ok && item.UserID == userID {
		delete(r.items, id)
	}
	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, userID uuid.UUID) error {
	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListActive(_ context.Context, groupID *uuid.UUID) ([]entity.Product, error) {
	out := make([]entity.Product, 0)
	for _, p := range r.products {
		if !p.Active {
			continue
		}
		if groupID != nil && (p.GroupID == nil || *p.GroupID != *groupID) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
	seq    int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByNumber(_ context.Context, number string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.Number == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, o *entity.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, _ *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	out := make([]entity.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) GetNextSequenceNumber(_ context.Context) (int, error) {
	r.seq++
	return r.seq, nil
}

type fakeOrderItemRepo struct {
	items map[uuid.UUID][]entity.OrderItem
}

func newFakeOrderItemRepo() *fakeOrderItemRepo {
	return &fakeOrderItemRepo{items: make(map[uuid.UUID][]entity.OrderItem)}
}

func (r *fakeOrderItemRepo) CreateBatch(_ context.Context, items []entity.OrderItem) error {
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.OrderID] = append(r.items[item.OrderID], item)
	}
	return nil
}

func (r *fakeOrderItemRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	return r.items[orderID], nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByProviderID(_ context.Context, provider, providerID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Provider == provider && u.ProviderID != nil && *u.ProviderID == providerID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ *repository.UserFilterParams) ([]entity.User, int64, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) AssignRole(_ context.Context, userID uuid.UUID, roleName string) error {
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.Roles = append(u.Roles, entity.Role{Name: roleName})
	return nil
}

func (r *fakeUserRepo) RemoveRole(_ context.Context, userID uuid.UUID, roleName string) error {
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	kept := u.Roles[:0]
	for _, role := range u.Roles {
		if role.Name != roleName {
			kept = append(kept, role)
		}
	}
	u.Roles = kept
	return nil
}

type fakeCouponRepo struct {
	coupons map[uuid.UUID]*entity.Coupon
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[uuid.UUID]*entity.Coupon)}
}

func (r *fakeCouponRepo) Create(_ context.Context, c *entity.Coupon) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.coupons[c.ID] = &cp
	return nil
}

func (r *fakeCouponRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Coupon, error) {
	c, ok := r.coupons[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCouponRepo) GetByCode(_ context.Context, code string) (*entity.Coupon, error) {
	for _, c := range r.coupons {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCouponRepo) Update(_ context.Context, c *entity.Coupon) error {
	cp := *c
	r.coupons[c.ID] = &cp
	return nil
}

func (r *fakeCouponRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.coupons, id)
	return nil
}

func (r *fakeCouponRepo) List(_ context.Context, _ *repository.CouponFilterParams) ([]entity.Coupon, int64, error) {
	out := make([]entity.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCouponRepo) IncrementUsage(_ context.Context, id uuid.UUID) error {
	c, ok := r.coupons[id]
	if !ok {
		return errors.New("coupon not found")
	}
	c.TimesUsed++
	return nil
}

// fakeMailer records deliveries and can be told to fail
type fakeMailer struct {
	proposalEmails int
	invoiceEmails  int
	ticketEmails   int
	fail           bool
}

func (m *fakeMailer) SendProposalEmail(_, _, _, _ string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.proposalEmails++
	return nil
}

func (m *fakeMailer) SendInvoiceEmail(_, _, _, _ string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.invoiceEmails++
	return nil
}

func (m *fakeMailer) SendTicketReplyEmail(_, _, _, _ string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.ticketEmails++
	return nil
}

// fakeProvisioner counts provisioning signals
type fakeProvisioner struct {
	calls int
}

func (p *fakeProvisioner) ProvisionInvoice(_ context.Context, _ *entity.Invoice, _ []entity.InvoiceItem) error {
	p.calls++
	return nil
}

type fakeTicketRepo struct {
	tickets map[uuid.UUID]*entity.Ticket
	seq     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uuid.UUID]*entity.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, t *entity.Ticket) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTicketRepo) GetByNumber(_ context.Context, number string) (*entity.Ticket, error) {
	for _, t := range r.tickets {
		if t.Number == number {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTicketRepo) Update(_ context.Context, t *entity.Ticket) error {
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) List(_ context.Context, _ *repository.TicketFilterParams) ([]entity.Ticket, int64, error) {
	out := make([]entity.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTicketRepo) GetWithReplies(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTicketRepo) GetNextSequenceNumber(_ context.Context) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeTicketRepo) CountByStatus(_ context.Context, status enum.TicketStatus) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeTicketReplyRepo struct {
	replies map[uuid.UUID][]entity.TicketReply
}

func newFakeTicketReplyRepo() *fakeTicketReplyRepo {
	return &fakeTicketReplyRepo{replies: make(map[uuid.UUID][]entity.TicketReply)}
}

func (r *fakeTicketReplyRepo) Create(_ context.Context, reply *entity.TicketReply) error {
	if reply.ID == uuid.Nil {
		reply.ID = uuid.New()
	}
	r.replies[reply.TicketID] = append(r.replies[reply.TicketID], *reply)
	return nil
}

func (r *fakeTicketReplyRepo) GetByTicketID(_ context.Context, ticketID uuid.UUID) ([]entity.TicketReply, error) {
	return r.replies[ticketID], nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
}

func (r *fakeServiceRepo) Create(_ context.Context, s *entity.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *entity.Service) error {
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) List(_ context.Context, _ *repository.ServiceFilterParams) ([]entity.Service, int64, error) {
	out := make([]entity.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeServiceRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]entity.Service, error) {
	out := make([]entity.Service, 0)
	for _, s := range r.services {
		if s.CustomerID == customerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) CountByStatus(_ context.Context, status enum.ServiceStatus) (int64, error) {
	var n int64
	for _, s := range r.services {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeEmailSettingsRepo struct {
	settings *entity.EmailSettings
}

func (r *fakeEmailSettingsRepo) Get(_ context.Context) (*entity.EmailSettings, error) {
	if r.settings == nil {
		return nil, nil
	}
	cp := *r.settings
	return &cp, nil
}

func (r *fakeEmailSettingsRepo) Upsert(_ context.Context, settings *entity.EmailSettings) error {
	cp := *settings
	r.settings = &cp
	return nil
}

type fakeSettingsMailer struct {
	configs    []email.EmailConfig
	testEmails int
	fail       bool
}

func (m *fakeSettingsMailer) UpdateConfig(config email.EmailConfig) {
	m.configs = append(m.configs, config)
}

func (m *fakeSettingsMailer) SendTestEmail(string) error {
	if m.fail {
		return errors.New("smtp: connection refused")
	}
	m.testEmails++
	return nil
}

type fakeProductGroupRepo struct {
	groups map[uuid.UUID]*entity.ProductGroup
}

func newFakeProductGroupRepo() *fakeProductGroupRepo {
	return &fakeProductGroupRepo{groups: make(map[uuid.UUID]*entity.ProductGroup)}
}

func (r *fakeProductGroupRepo) Create(_ context.Context, group *entity.ProductGroup) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	cp := *group
	r.groups[group.ID] = &cp
	return nil
}

func (r *fakeProductGroupRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ProductGroup, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (r *fakeProductGroupRepo) GetBySlug(_ context.Context, slug string) (*entity.ProductGroup, error) {
	for _, g := range r.groups {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductGroupRepo) Update(_ context.Context, group *entity.ProductGroup) error {
	cp := *group
	r.groups[group.ID] = &cp
	return nil
}

func (r *fakeProductGroupRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.groups, id)
	return nil
}

func (r *fakeProductGroupRepo) List(_ context.Context) ([]entity.ProductGroup, error) {
	out := make([]entity.ProductGroup, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, *g)
	}
	return out, nil
}

type fakeRoleRepo struct {
	roles map[string]*entity.Role
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: make(map[string]*entity.Role)}
	for i, name := range names {
		r.roles[name] = &entity.Role{ID: uint(i + 1), Name: name}
	}
	return r
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, nil
	}
	cp := *role
	return &cp, nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]entity.Role, error) {
	out := make([]entity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	if role.ID == 0 {
		role.ID = uint(len(r.roles) + 1)
	}
	cp := *role
	r.roles[role.Name] = &cp
	return nil
}

type fakePasswordResetRepo struct {
	tokens map[string]*entity.PasswordResetToken
}

func newFakePasswordResetRepo() *fakePasswordResetRepo {
	return &fakePasswordResetRepo{tokens: make(map[string]*entity.PasswordResetToken)}
}

func (r *fakePasswordResetRepo) Create(_ context.Context, token *entity.PasswordResetToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *fakePasswordResetRepo) GetByToken(_ context.Context, token string) (*entity.PasswordResetToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakePasswordResetRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	for _, t := range r.tokens {
		if t.ID == id {
			now := time.Now()
			t.UsedAt = &now
		}
	}
	return nil
}

func (r *fakePasswordResetRepo) DeleteExpired(_ context.Context) error {
	return nil
}
