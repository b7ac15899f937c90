package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campus-kit/society-events/internal/domain"
	"github.com/campus-kit/society-events/internal/events"
)

// In-memory repository fakes. Each mirrors the row-level behavior of its
// Postgres counterpart, including pgx.ErrNoRows on absent rows.

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakeVerificationRepo struct {
	rows   map[string]*domain.Verification
	nextID int
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{rows: map[string]*domain.Verification{}}
}

func (r *fakeVerificationRepo) Create(_ context.Context, v *domain.Verification) error {
	r.nextID++
	v.ID = fmt.Sprintf("verification-%d", r.nextID)
	clone := *v
	r.rows[v.ID] = &clone
	return nil
}

func (r *fakeVerificationRepo) GetByCode(_ context.Context, code, userID string, vType domain.VerificationType) (*domain.Verification, error) {
	for _, v := range r.rows {
		if v.Code == code && v.UserID == userID && v.Type == vType {
			clone := *v
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeVerificationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows, id)
	return nil
}

type fakeSocietyRepo struct {
	societies map[string]*domain.Society
	nextID    int
}

func newFakeSocietyRepo() *fakeSocietyRepo {
	return &fakeSocietyRepo{societies: map[string]*domain.Society{}}
}

func (r *fakeSocietyRepo) Create(_ context.Context, society *domain.Society) error {
	r.nextID++
	society.ID = fmt.Sprintf("society-%d", r.nextID)
	clone := *society
	r.societies[society.ID] = &clone
	return nil
}

func (r *fakeSocietyRepo) Update(_ context.Context, society *domain.Society) error {
	if _, ok := r.societies[society.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *society
	r.societies[society.ID] = &clone
	return nil
}

func (r *fakeSocietyRepo) GetByID(_ context.Context, id string) (*domain.Society, error) {
	society, ok := r.societies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *society
	return &clone, nil
}

func (r *fakeSocietyRepo) GetByName(_ context.Context, name string) (*domain.Society, error) {
	for _, society := range r.societies {
		if society.Name == name {
			clone := *society
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSocietyRepo) ListActive(_ context.Context) ([]domain.Society, error) {
	var out []domain.Society
	for _, society := range r.societies {
		if !society.Archived {
			out = append(out, *society)
		}
	}
	return out, nil
}

func (r *fakeSocietyRepo) Archive(_ context.Context, id string) error {
	society, ok := r.societies[id]
	if !ok {
		return pgx.ErrNoRows
	}
	society.Archived = true
	return nil
}

type fakeCommitteeRepo struct {
	members []*domain.CommitteeMember
	nextID  int
}

func newFakeCommitteeRepo() *fakeCommitteeRepo {
	return &fakeCommitteeRepo{}
}

func (r *fakeCommitteeRepo) Add(_ context.Context, member *domain.CommitteeMember) error {
	r.nextID++
	member.ID = fmt.Sprintf("member-%d", r.nextID)
	clone := *member
	r.members = append(r.members, &clone)
	return nil
}

func (r *fakeCommitteeRepo) Remove(_ context.Context, societyID, userID string) error {
	for i, m := range r.members {
		if m.SocietyID == societyID && m.UserID == userID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeCommitteeRepo) UpdateRole(_ context.Context, societyID, userID, roleLabel string) error {
	for _, m := range r.members {
		if m.SocietyID == societyID && m.UserID == userID {
			m.RoleLabel = roleLabel
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeCommitteeRepo) GetMember(_ context.Context, societyID, userID string) (*domain.CommitteeMember, error) {
	for _, m := range r.members {
		if m.SocietyID == societyID && m.UserID == userID {
			clone := *m
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCommitteeRepo) ListBySociety(_ context.Context, societyID string) ([]domain.CommitteeMember, error) {
	var out []domain.CommitteeMember
	for _, m := range r.members {
		if m.SocietyID == societyID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeCommitteeRepo) ListByUser(_ context.Context, userID string) ([]domain.CommitteeMember, error) {
	var out []domain.CommitteeMember
	for _, m := range r.members {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeCommitteeRepo) PromotePresident(_ context.Context, societyID, userID string) error {
	var target *domain.CommitteeMember
	for _, m := range r.members {
		if m.SocietyID == societyID && m.UserID == userID {
			target = m
		}
	}
	if target == nil {
		return pgx.ErrNoRows
	}
	for _, m := range r.members {
		if m.SocietyID == societyID {
			m.IsPresident = false
		}
	}
	target.IsPresident = true
	return nil
}

type fakeFollowerRepo struct {
	rows   []*domain.Follower
	nextID int
}

func newFakeFollowerRepo() *fakeFollowerRepo {
	return &fakeFollowerRepo{}
}

func (r *fakeFollowerRepo) Create(_ context.Context, follower *domain.Follower) error {
	r.nextID++
	follower.ID = fmt.Sprintf("follower-%d", r.nextID)
	clone := *follower
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeFollowerRepo) Get(_ context.Context, userID, societyID string) (*domain.Follower, error) {
	for _, f := range r.rows {
		if f.UserID == userID && f.SocietyID == societyID {
			clone := *f
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeFollowerRepo) SetArchived(_ context.Context, userID, societyID string, archived bool) error {
	for _, f := range r.rows {
		if f.UserID == userID && f.SocietyID == societyID {
			f.Archived = archived
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeFollowerRepo) ListActiveBySociety(_ context.Context, societyID string) ([]domain.Follower, error) {
	var out []domain.Follower
	for _, f := range r.rows {
		if f.SocietyID == societyID && !f.Archived {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFollowerRepo) ListActiveByUser(_ context.Context, userID string) ([]domain.Follower, error) {
	var out []domain.Follower
	for _, f := range r.rows {
		if f.UserID == userID && !f.Archived {
			out = append(out, *f)
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	events      map[string]*domain.Event
	ticketTypes *fakeTicketTypeRepo
	nextID      int
}

func newFakeEventRepo(types *fakeTicketTypeRepo) *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*domain.Event{}, ticketTypes: types}
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.Event, types []*domain.TicketType) error {
	r.nextID++
	event.ID = fmt.Sprintf("event-%d", r.nextID)
	clone := *event
	r.events[event.ID] = &clone
	for _, tt := range types {
		tt.EventID = event.ID
		r.ticketTypes.add(tt)
	}
	return nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) ListUpcoming(_ context.Context, now time.Time) ([]domain.Event, error) {
	var out []domain.Event
	for _, event := range r.events {
		if !event.Archived && !event.Date.Before(now) {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) SearchByName(_ context.Context, term string) ([]domain.Event, error) {
	var out []domain.Event
	for _, event := range r.events {
		if !event.Archived && strings.Contains(strings.ToLower(event.Name), strings.ToLower(term)) {
			out = append(out, *event)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Archive(_ context.Context, id string) error {
	event, ok := r.events[id]
	if !ok {
		return pgx.ErrNoRows
	}
	event.Archived = true
	return nil
}

type fakeTicketTypeRepo struct {
	types  map[string]*domain.TicketType
	nextID int
}

func newFakeTicketTypeRepo() *fakeTicketTypeRepo {
	return &fakeTicketTypeRepo{types: map[string]*domain.TicketType{}}
}

func (r *fakeTicketTypeRepo) add(tt *domain.TicketType) {
	if tt.ID == "" {
		r.nextID++
		tt.ID = fmt.Sprintf("type-%d", r.nextID)
	}
	clone := *tt
	r.types[tt.ID] = &clone
}

func (r *fakeTicketTypeRepo) GetByID(_ context.Context, id string) (*domain.TicketType, error) {
	tt, ok := r.types[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *tt
	return &clone, nil
}

func (r *fakeTicketTypeRepo) ListByEvent(_ context.Context, eventID string) ([]domain.TicketType, error) {
	var out []domain.TicketType
	for _, tt := range r.types {
		if tt.EventID == eventID && !tt.Archived {
			out = append(out, *tt)
		}
	}
	return out, nil
}

type fakePurchaseRepo struct {
	purchases map[string]*domain.Purchase
	tickets   *fakeTicketRepo
	failNext  error
	nextID    int
}

func newFakePurchaseRepo(tickets *fakeTicketRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: map[string]*domain.Purchase{}, tickets: tickets}
}

func (r *fakePurchaseRepo) CreateWithTickets(_ context.Context, purchase *domain.Purchase, tickets []*domain.Ticket) error {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	if purchase.ID == "" {
		r.nextID++
		purchase.ID = fmt.Sprintf("purchase-%d", r.nextID)
	}
	purchase.CreatedAt = time.Now()
	clone := *purchase
	r.purchases[purchase.ID] = &clone
	for _, ticket := range tickets {
		ticket.PurchaseID = purchase.ID
		r.tickets.add(ticket)
	}
	return nil
}

func (r *fakePurchaseRepo) ListByUserBeforeDate(ctx context.Context, userID string, cutoff time.Time) ([]domain.Purchase, error) {
	return r.listByUser(userID, func(date time.Time) bool { return !date.After(cutoff) }), nil
}

func (r *fakePurchaseRepo) ListByUserAfterDate(ctx context.Context, userID string, cutoff time.Time) ([]domain.Purchase, error) {
	return r.listByUser(userID, func(date time.Time) bool { return date.After(cutoff) }), nil
}

func (r *fakePurchaseRepo) listByUser(userID string, match func(time.Time) bool) []domain.Purchase {
	var out []domain.Purchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out
}

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) add(ticket *domain.Ticket) {
	if ticket.ID == "" {
		r.nextID++
		ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	}
	clone := *ticket
	r.tickets[ticket.ID] = &clone
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (r *fakeTicketRepo) ListByPurchase(_ context.Context, purchaseID string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.PurchaseID == purchaseID {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) ListByUser(_ context.Context, userID string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.UserID == userID {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) error {
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	return nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}
