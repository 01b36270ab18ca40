package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Account      string
	Name         string
	PasswordHash string
	Role         Role
	IsActive     bool
	IsVerified   bool
	IsSuperuser  bool
	// DeletedAt is the day the account is scheduled to go away, nil when it is not.
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPatch carries a partial profile update; nil fields are left alone.
type UserPatch struct {
	Name         *string
	Account      *string
	Email        *string
	PasswordHash *string
}

type MeetingStatus string

const (
	MeetingNew      MeetingStatus = "new"
	MeetingApproved MeetingStatus = "approved"
	MeetingCanceled MeetingStatus = "canceled"
)

type ParticipantStatus string

const (
	ParticipantNew      ParticipantStatus = "new"
	ParticipantAccepted ParticipantStatus = "accepted"
	ParticipantDeclined ParticipantStatus = "declined"
)

func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantNew, ParticipantAccepted, ParticipantDeclined:
		return true
	}
	return false
}

type MeetingType struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Meeting struct {
	ID          uuid.UUID
	Title       string
	OwnerID     uuid.UUID
	AppointedBy uuid.NullUUID
	AssignedTo  uuid.NullUUID
	Type        MeetingType
	Status      MeetingStatus
	StartTime   time.Time
	Location    string
	LocationURL *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Participants []Participant
}

// MeetingPatch is a partial meeting update. TypeTitle is resolved to a
// MeetingType by the store, creating it when unknown.
type MeetingPatch struct {
	Title       *string
	AppointedBy *uuid.UUID
	AssignedTo  *uuid.UUID
	TypeTitle   *string
	StartTime   *time.Time
	Location    *string
	LocationURL *string
}

func (p MeetingPatch) Empty() bool {
	return p.Title == nil && p.AppointedBy == nil && p.AssignedTo == nil &&
		p.TypeTitle == nil && p.StartTime == nil && p.Location == nil && p.LocationURL == nil
}

type Participant struct {
	ID        uuid.UUID
	MeetingID uuid.UUID
	UserID    uuid.UUID
	Status    ParticipantStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// User is filled by queries that join the profile.
	User *User
}

type Follow struct {
	ID          uuid.UUID
	FollowerID  uuid.UUID
	FollowingID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// User is the other end of the edge when listed.
	User *User
}

type FollowStatus struct {
	IsFollowing  bool
	IsFollowedBy bool
	IsMutual     bool
}

type FollowCounts struct {
	Following int
	Followers int
}

type RefreshToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy uuid.NullUUID
	CreatedAt  time.Time
}

// Event is pushed to connected clients when something happens to a meeting.
type Event struct {
	Type      string     `json:"type"`
	MeetingID uuid.UUID  `json:"meeting_id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Status    string     `json:"status,omitempty"`
	Title     string     `json:"title,omitempty"`
	At        time.Time  `json:"at"`
}

const (
	EventInvited   = "meeting.invited"
	EventResponded = "participant.responded"
	EventStatus    = "meeting.status"
	EventDeleted   = "meeting.deleted"
)
