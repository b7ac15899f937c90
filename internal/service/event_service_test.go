package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-kit/society-events/internal/domain"
)

type eventFixture struct {
	svc        *EventService
	eventsRepo *fakeEventRepo
	types      *fakeTicketTypeRepo
	societies  *fakeSocietyRepo
	committee  *fakeCommitteeRepo
	society    *domain.Society
	organizer  string
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	types := newFakeTicketTypeRepo()
	eventsRepo := newFakeEventRepo(types)
	societies := newFakeSocietyRepo()
	committee := newFakeCommitteeRepo()

	society := &domain.Society{Name: "Drama Society"}
	require.NoError(t, societies.Create(context.Background(), society))
	require.NoError(t, committee.Add(context.Background(), &domain.CommitteeMember{
		UserID:      "organizer",
		SocietyID:   society.ID,
		IsPresident: true,
	}))

	return &eventFixture{
		svc: NewEventService(EventDependencies{
			EventRepo:      eventsRepo,
			TicketTypeRepo: types,
			SocietyRepo:    societies,
			CommitteeRepo:  committee,
			Cache:          nil,
		}),
		eventsRepo: eventsRepo,
		types:      types,
		societies:  societies,
		committee:  committee,
		society:    society,
		organizer:  "organizer",
	}
}

func validCreateInput(f *eventFixture) EventCreateInput {
	return EventCreateInput{
		Name:      "Opening Night",
		Date:      time.Now().Add(72 * time.Hour),
		Location:  "Main Theatre",
		SocietyID: f.society.ID,
		TicketTypes: []TicketTypeInput{
			{Name: "Standard", Price: 12, Quantity: 80},
		},
	}
}

func TestCreateEventPersistsTypes(t *testing.T) {
	f := newEventFixture(t)

	event, types, err := f.svc.CreateEvent(context.Background(), f.organizer, validCreateInput(f))
	require.NoError(t, err)
	require.NotEmpty(t, event.ID)
	require.Len(t, types, 1)
	assert.Equal(t, event.ID, types[0].EventID)

	listed, err := f.types.ListByEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateEventNonCommitteeRejected(t *testing.T) {
	f := newEventFixture(t)

	_, _, err := f.svc.CreateEvent(context.Background(), "stranger", validCreateInput(f))
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestCreateEventNonPositivePrice(t *testing.T) {
	f := newEventFixture(t)

	input := validCreateInput(f)
	input.TicketTypes[0].Price = 0
	_, _, err := f.svc.CreateEvent(context.Background(), f.organizer, input)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpStatus(t, err))

	input = validCreateInput(f)
	input.TicketTypes[0].Quantity = -1
	_, _, err = f.svc.CreateEvent(context.Background(), f.organizer, input)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, httpStatus(t, err))
}

func TestCreateEventPastDateRejected(t *testing.T) {
	f := newEventFixture(t)

	input := validCreateInput(f)
	input.Date = time.Now().Add(-time.Hour)
	_, _, err := f.svc.CreateEvent(context.Background(), f.organizer, input)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestCreateEventWithoutTicketTypes(t *testing.T) {
	f := newEventFixture(t)

	input := validCreateInput(f)
	input.TicketTypes = nil
	_, _, err := f.svc.CreateEvent(context.Background(), f.organizer, input)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestGetEventAnnotatesCommittee(t *testing.T) {
	f := newEventFixture(t)
	event, _, err := f.svc.CreateEvent(context.Background(), f.organizer, validCreateInput(f))
	require.NoError(t, err)

	details, err := f.svc.GetEvent(context.Background(), event.ID, "")
	require.NoError(t, err)
	assert.False(t, details.IsCommittee)
	require.NotNil(t, details.Society)
	assert.Equal(t, f.society.ID, details.Society.ID)

	details, err = f.svc.GetEvent(context.Background(), event.ID, f.organizer)
	require.NoError(t, err)
	assert.True(t, details.IsCommittee)
}

func TestGetEventUnknownID(t *testing.T) {
	f := newEventFixture(t)

	_, err := f.svc.GetEvent(context.Background(), "no-such-event", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestListUpcomingEmbedsSociety(t *testing.T) {
	f := newEventFixture(t)
	event, _, err := f.svc.CreateEvent(context.Background(), f.organizer, validCreateInput(f))
	require.NoError(t, err)

	upcoming, err := f.svc.ListUpcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, event.ID, upcoming[0].Event.ID)
	require.NotNil(t, upcoming[0].Society)
	assert.Equal(t, f.society.ID, upcoming[0].Society.ID)
	assert.Equal(t, "Drama Society", upcoming[0].Society.Name)
}

func TestArchiveEventHidesFromListing(t *testing.T) {
	f := newEventFixture(t)
	event, _, err := f.svc.CreateEvent(context.Background(), f.organizer, validCreateInput(f))
	require.NoError(t, err)

	upcoming, err := f.svc.ListUpcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, upcoming, 1)

	require.NoError(t, f.svc.ArchiveEvent(context.Background(), f.organizer, event.ID))

	upcoming, err = f.svc.ListUpcoming(context.Background())
	require.NoError(t, err)
	assert.Empty(t, upcoming)
}

func TestUpdateEventPartialAndDateGuard(t *testing.T) {
	f := newEventFixture(t)
	event, _, err := f.svc.CreateEvent(context.Background(), f.organizer, validCreateInput(f))
	require.NoError(t, err)

	updated, err := f.svc.UpdateEvent(context.Background(), f.organizer, EventUpdateInput{
		EventID:  event.ID,
		Location: "Studio B",
	})
	require.NoError(t, err)
	assert.Equal(t, "Opening Night", updated.Name)
	assert.Equal(t, "Studio B", updated.Location)

	past := time.Now().Add(-time.Hour)
	_, err = f.svc.UpdateEvent(context.Background(), f.organizer, EventUpdateInput{
		EventID: event.ID,
		Date:    &past,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestSearchEvents(t *testing.T) {
	f := newEventFixture(t)
	_, _, err := f.svc.CreateEvent(context.Background(), f.organizer, validCreateInput(f))
	require.NoError(t, err)

	hits, err := f.svc.SearchEvents(context.Background(), "opening")
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = f.svc.SearchEvents(context.Background(), "closing")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
