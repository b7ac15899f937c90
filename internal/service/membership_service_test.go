package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-kit/society-events/internal/domain"
)

type membershipFixture struct {
	svc       *MembershipService
	followers *fakeFollowerRepo
	societies *fakeSocietyRepo
	committee *fakeCommitteeRepo
	users     *fakeUserRepo
	society   *domain.Society
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()
	followers := newFakeFollowerRepo()
	societies := newFakeSocietyRepo()
	committee := newFakeCommitteeRepo()
	users := newFakeUserRepo()

	society := &domain.Society{Name: "Robotics"}
	require.NoError(t, societies.Create(context.Background(), society))

	return &membershipFixture{
		svc: NewMembershipService(MembershipDependencies{
			FollowerRepo:  followers,
			SocietyRepo:   societies,
			CommitteeRepo: committee,
			UserRepo:      users,
		}),
		followers: followers,
		societies: societies,
		committee: committee,
		users:     users,
		society:   society,
	}
}

func TestFollowThenRefollow(t *testing.T) {
	f := newMembershipFixture(t)

	require.NoError(t, f.svc.Follow(context.Background(), "user-1", f.society.ID))

	// Following twice while active is a conflict.
	err := f.svc.Follow(context.Background(), "user-1", f.society.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	// Unfollow archives the row, and a later follow reactivates it.
	require.NoError(t, f.svc.Unfollow(context.Background(), "user-1", f.society.ID))
	require.NoError(t, f.svc.Follow(context.Background(), "user-1", f.society.ID))

	isMember, err := f.svc.IsMember(context.Background(), "user-1", f.society.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	// Still exactly one row; reactivation does not duplicate.
	assert.Len(t, f.followers.rows, 1)
}

func TestUnfollowWithoutMembership(t *testing.T) {
	f := newMembershipFixture(t)

	err := f.svc.Unfollow(context.Background(), "user-1", f.society.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))
}

func TestFollowUnknownSociety(t *testing.T) {
	f := newMembershipFixture(t)

	err := f.svc.Follow(context.Background(), "user-1", "no-such-society")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestListMembersCommitteeOnly(t *testing.T) {
	f := newMembershipFixture(t)
	require.NoError(t, f.svc.Follow(context.Background(), "user-1", f.society.ID))

	_, err := f.svc.ListMembers(context.Background(), "outsider", f.society.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	follower := &domain.User{Name: "fan", Email: "fan@example.com"}
	require.NoError(t, f.users.Create(context.Background(), follower))
	// Re-point the follow at a real user so identities resolve.
	f.followers.rows[0].UserID = follower.ID

	require.NoError(t, f.committee.Add(context.Background(), &domain.CommitteeMember{
		UserID:    "chair",
		SocietyID: f.society.ID,
	}))

	members, err := f.svc.ListMembers(context.Background(), "chair", f.society.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, follower.Email, members[0].Email)
}

func TestListMembersEmptyIsNotFound(t *testing.T) {
	f := newMembershipFixture(t)
	require.NoError(t, f.committee.Add(context.Background(), &domain.CommitteeMember{
		UserID:    "chair",
		SocietyID: f.society.ID,
	}))

	_, err := f.svc.ListMembers(context.Background(), "chair", f.society.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestListFollowedSocieties(t *testing.T) {
	f := newMembershipFixture(t)

	_, err := f.svc.ListFollowedSocieties(context.Background(), "user-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))

	require.NoError(t, f.svc.Follow(context.Background(), "user-1", f.society.ID))

	ids, err := f.svc.ListFollowedSocieties(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{f.society.ID}, ids)
}
