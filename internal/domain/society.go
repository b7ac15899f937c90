package domain

import "time"

// SocietyCategory groups societies for browsing.
type SocietyCategory string

const (
	SocietyCategoryAcademic  SocietyCategory = "ACADEMIC"
	SocietyCategoryCultural  SocietyCategory = "CULTURAL"
	SocietyCategorySports    SocietyCategory = "SPORTS"
	SocietyCategorySocial    SocietyCategory = "SOCIAL"
	SocietyCategoryVolunteer SocietyCategory = "VOLUNTEER"
	SocietyCategoryOther     SocietyCategory = "OTHER"
)

// Society owns events and has a committee with exactly one president.
// Archiving is the soft-delete mechanism; archived societies disappear
// from listings but remain resolvable by id.
type Society struct {
	ID           string
	Name         string
	Description  string
	Category     SocietyCategory
	ContactEmail string
	Archived     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CommitteeMember grants a user elevated rights over one society.
type CommitteeMember struct {
	ID          string
	UserID      string
	SocietyID   string
	RoleLabel   string
	IsPresident bool
	CreatedAt   time.Time
}

// Follower links a user to a society they follow. Unfollow archives the
// row instead of deleting it so a later follow reactivates it.
type Follower struct {
	ID        string
	UserID    string
	SocietyID string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
