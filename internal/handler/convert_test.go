package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/middleware"
	"social-scheduler-api/internal/model"
)

func TestToMeeting(t *testing.T) {
	owner, guest, boss := uuid.New(), uuid.New(), uuid.New()
	url := "https://meet.example/abc"
	m := &model.Meeting{
		ID:          uuid.New(),
		Title:       "retro",
		OwnerID:     owner,
		AppointedBy: uuid.NullUUID{UUID: boss, Valid: true},
		Type:        model.MeetingType{ID: uuid.New(), Title: "sync"},
		Status:      model.MeetingNew,
		StartTime:   time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC),
		Location:    "online",
		LocationURL: &url,
		Participants: []model.Participant{
			{ID: uuid.New(), UserID: owner, Status: model.ParticipantAccepted, User: &model.User{ID: owner, Account: "owner_1"}},
			{ID: uuid.New(), UserID: guest, Status: model.ParticipantNew},
		},
	}

	out := toMeeting(m)
	assert.Equal(t, boss.String(), out.AppointedBy)
	assert.Empty(t, out.AssignedTo)
	assert.Equal(t, "sync", out.Type.Title)
	assert.Equal(t, "new", out.Status)
	assert.Equal(t, &url, out.LocationUrl)
	require.Len(t, out.Participants, 2)
	assert.Equal(t, "owner_1", out.Participants[0].User.Account)
	assert.Nil(t, out.Participants[1].User)
	assert.Equal(t, "accepted", out.Participants[0].Status)
}

func TestIDParsing(t *testing.T) {
	_, err := parseID("nope", "meeting")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.Equal(t, "invalid meeting id", apperr.MessageOf(err))

	def := uuid.New()
	got, err := optionalID("", "user", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	p, err := optionalIDPtr(nil, "assigned_to")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCaller(t *testing.T) {
	_, err := caller(context.Background())
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	uid := uuid.New()
	got, err := caller(middleware.WithUserID(context.Background(), uid))
	require.NoError(t, err)
	assert.Equal(t, uid, got)
}
