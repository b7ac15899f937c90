package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-kit/society-events/internal/domain"
	"github.com/campus-kit/society-events/internal/events"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	return domainErr.HTTPStatus
}

type purchaseFixture struct {
	svc        *PurchaseService
	purchases  *fakePurchaseRepo
	tickets    *fakeTicketRepo
	types      *fakeTicketTypeRepo
	eventsRepo *fakeEventRepo
	committee  *fakeCommitteeRepo
	dispatcher *recordingDispatcher
	buyer      *domain.User
	event      *domain.Event
	ttStandard *domain.TicketType
	ttVIP      *domain.TicketType
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	types := newFakeTicketTypeRepo()
	eventsRepo := newFakeEventRepo(types)
	tickets := newFakeTicketRepo()
	purchases := newFakePurchaseRepo(tickets)
	committee := newFakeCommitteeRepo()
	dispatcher := &recordingDispatcher{}

	event := &domain.Event{
		SocietyID: "society-1",
		Name:      "Spring Ball",
		Date:      time.Now().Add(48 * time.Hour),
	}
	standard := &domain.TicketType{Name: "Standard", Price: 10, Quantity: 100}
	vip := &domain.TicketType{Name: "VIP", Price: 25, Quantity: 10}
	require.NoError(t, eventsRepo.Create(context.Background(), event, []*domain.TicketType{standard, vip}))

	svc := NewPurchaseService(PurchaseDependencies{
		PurchaseRepo:   purchases,
		TicketRepo:     tickets,
		TicketTypeRepo: types,
		EventRepo:      eventsRepo,
		CommitteeRepo:  committee,
		Dispatcher:     dispatcher,
	})

	return &purchaseFixture{
		svc:        svc,
		purchases:  purchases,
		tickets:    tickets,
		types:      types,
		eventsRepo: eventsRepo,
		committee:  committee,
		dispatcher: dispatcher,
		buyer:      &domain.User{ID: "user-1", Email: "buyer@example.com"},
		event:      event,
		ttStandard: standard,
		ttVIP:      vip,
	}
}

func TestCreatePurchaseIssuesTickets(t *testing.T) {
	f := newPurchaseFixture(t)

	err := f.svc.CreatePurchase(context.Background(), f.buyer, PurchaseCreateInput{
		Total:   45,
		EventID: f.event.ID,
		Types: []TicketQuantityInput{
			{TypeID: f.ttStandard.ID, Quantity: 2},
			{TypeID: f.ttVIP.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	tickets, err := f.tickets.ListByUser(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 3)

	secrets := map[string]bool{}
	for _, ticket := range tickets {
		assert.Equal(t, domain.TicketStatusValid, ticket.Status)
		assert.NotEmpty(t, ticket.PurchaseID)

		payload, err := domain.DecodeTicketPayload(ticket.Code)
		require.NoError(t, err)
		assert.Equal(t, f.buyer.ID, payload.UserID)
		assert.Equal(t, f.event.ID, payload.EventID)
		assert.Equal(t, ticket.PurchaseID, payload.PurchaseID)
		assert.NotEmpty(t, payload.Secret)
		secrets[payload.Secret] = true
	}
	assert.Len(t, secrets, 3, "each ticket carries its own secret")

	require.Len(t, f.dispatcher.published, 1)
	published := f.dispatcher.published[0]
	assert.Equal(t, events.EventPurchaseCompleted, published.Type)
	payload, ok := published.Payload.(events.PurchaseCompletedPayload)
	require.True(t, ok)
	assert.Equal(t, 3, payload.Quantity)
	assert.Equal(t, f.buyer.Email, payload.Email)
	assert.Len(t, payload.Tickets, 3)
	assert.Contains(t, payload.Tickets[0].Label, "Spring Ball")
}

// TicketType.Quantity is advisory: checkout never counts issued tickets
// against it, so buying past the advertised quantity succeeds and the
// stored quantity is untouched.
func TestCreatePurchaseQuantityIsAdvisory(t *testing.T) {
	f := newPurchaseFixture(t)

	oversold := f.ttVIP.Quantity + 5
	err := f.svc.CreatePurchase(context.Background(), f.buyer, PurchaseCreateInput{
		EventID: f.event.ID,
		Types:   []TicketQuantityInput{{TypeID: f.ttVIP.ID, Quantity: oversold}},
	})
	require.NoError(t, err)

	tickets, err := f.tickets.ListByUser(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	assert.Len(t, tickets, oversold)

	vip, err := f.types.GetByID(context.Background(), f.ttVIP.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, vip.Quantity, "quantity is never decremented")
}

func TestCreatePurchaseUnknownTicketTypePersistsNothing(t *testing.T) {
	f := newPurchaseFixture(t)

	err := f.svc.CreatePurchase(context.Background(), f.buyer, PurchaseCreateInput{
		EventID: f.event.ID,
		Types: []TicketQuantityInput{
			{TypeID: f.ttStandard.ID, Quantity: 1},
			{TypeID: "no-such-type", Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	assert.Empty(t, f.purchases.purchases)
	assert.Empty(t, f.tickets.tickets)
	assert.Empty(t, f.dispatcher.published)
}

func TestCreatePurchaseForeignTicketTypeRejected(t *testing.T) {
	f := newPurchaseFixture(t)

	other := &domain.Event{SocietyID: "society-2", Name: "Other", Date: time.Now().Add(time.Hour)}
	foreign := &domain.TicketType{Name: "Foreign", Price: 5, Quantity: 5}
	require.NoError(t, f.eventsRepo.Create(context.Background(), other, []*domain.TicketType{foreign}))

	err := f.svc.CreatePurchase(context.Background(), f.buyer, PurchaseCreateInput{
		EventID: f.event.ID,
		Types:   []TicketQuantityInput{{TypeID: foreign.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	assert.Empty(t, f.tickets.tickets)
}

func TestCreatePurchaseUnknownEvent(t *testing.T) {
	f := newPurchaseFixture(t)

	err := f.svc.CreatePurchase(context.Background(), f.buyer, PurchaseCreateInput{
		EventID: "no-such-event",
		Types:   []TicketQuantityInput{{TypeID: f.ttStandard.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestUseTicketRequiresCommittee(t *testing.T) {
	f := newPurchaseFixture(t)
	require.NoError(t, f.svc.CreatePurchase(context.Background(), f.buyer, PurchaseCreateInput{
		EventID: f.event.ID,
		Types:   []TicketQuantityInput{{TypeID: f.ttStandard.ID, Quantity: 1}},
	}))
	tickets, _ := f.tickets.ListByUser(context.Background(), f.buyer.ID)
	require.Len(t, tickets, 1)

	_, err := f.svc.UseTicket(context.Background(), "stranger", tickets[0].ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestUseTicketLifecycle(t *testing.T) {
	f := newPurchaseFixture(t)
	require.NoError(t, f.svc.CreatePurchase(context.Background(), f.buyer, PurchaseCreateInput{
		EventID: f.event.ID,
		Types:   []TicketQuantityInput{{TypeID: f.ttStandard.ID, Quantity: 1}},
	}))
	tickets, _ := f.tickets.ListByUser(context.Background(), f.buyer.ID)
	require.Len(t, tickets, 1)

	doorStaff := "staff-1"
	require.NoError(t, f.committee.Add(context.Background(), &domain.CommitteeMember{
		UserID:    doorStaff,
		SocietyID: f.event.SocietyID,
		RoleLabel: "Member",
	}))

	redeemed, err := f.svc.UseTicket(context.Background(), doorStaff, tickets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusUsed, redeemed.Status)

	// USED is terminal: the second scan is rejected, not silently accepted.
	_, err = f.svc.UseTicket(context.Background(), doorStaff, tickets[0].ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
	assert.Contains(t, err.Error(), "Ticket already used")
}

func TestUseTicketUnknownID(t *testing.T) {
	f := newPurchaseFixture(t)
	require.NoError(t, f.committee.Add(context.Background(), &domain.CommitteeMember{
		UserID:    "staff-1",
		SocietyID: f.event.SocietyID,
	}))

	_, err := f.svc.UseTicket(context.Background(), "staff-1", "no-such-ticket")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestPurchaseHistoryIncludesTicketsAndEvent(t *testing.T) {
	f := newPurchaseFixture(t)
	require.NoError(t, f.svc.CreatePurchase(context.Background(), f.buyer, PurchaseCreateInput{
		EventID: f.event.ID,
		Types:   []TicketQuantityInput{{TypeID: f.ttStandard.ID, Quantity: 2}},
	}))

	entries, err := f.svc.FutureTickets(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Tickets, 2)
	require.NotNil(t, entries[0].Event)
	assert.Equal(t, f.event.ID, entries[0].Event.ID)
}
