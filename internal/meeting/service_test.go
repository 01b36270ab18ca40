package meeting

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/paging"
)

var now = time.Date(2029, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc             *Service
	repo            *memRepo
	events          *recorder
	owner, a, b, ux uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{owner: uuid.New(), a: uuid.New(), b: uuid.New(), ux: uuid.New(), events: &recorder{}}
	f.repo = newMemRepo(f.owner, f.a, f.b, f.ux)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(f.repo, log, WithNotifier(f.events), WithClock(func() time.Time { return now }))
	return f
}

func (f *fixture) input(invitees ...uuid.UUID) CreateInput {
	in := CreateInput{
		Title:     "Weekly sync",
		TypeTitle: "standup",
		StartTime: now.Add(24 * time.Hour),
		Location:  "Room 4",
	}
	for _, id := range invitees {
		in.Invitees = append(in.Invitees, Invitee{UserID: id})
	}
	return in
}

func (f *fixture) create(t *testing.T, invitees ...uuid.UUID) *model.Meeting {
	t.Helper()
	m, err := f.svc.Create(context.Background(), f.owner, f.input(invitees...))
	require.NoError(t, err)
	return m
}

func (f *fixture) status(t *testing.T, id uuid.UUID) model.MeetingStatus {
	t.Helper()
	m, err := f.repo.GetMeeting(context.Background(), id)
	require.NoError(t, err)
	return m.Status
}

func TestDeriveStatus(t *testing.T) {
	p := func(ss ...model.ParticipantStatus) []model.Participant {
		var out []model.Participant
		for _, s := range ss {
			out = append(out, model.Participant{Status: s})
		}
		return out
	}
	acc, dec, nw := model.ParticipantAccepted, model.ParticipantDeclined, model.ParticipantNew

	tests := []struct {
		name string
		in   []model.Participant
		want model.MeetingStatus
	}{
		{"empty", nil, model.MeetingNew},
		{"all accepted", p(acc, acc, acc), model.MeetingApproved},
		{"one pending", p(acc, nw, acc), model.MeetingNew},
		{"one declined among accepted", p(acc, acc, dec), model.MeetingCanceled},
		{"declined beats pending", p(nw, dec), model.MeetingCanceled},
		{"all pending", p(nw, nw), model.MeetingNew},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.in))
			assert.Equal(t, DeriveStatus(tt.in), DeriveStatus(tt.in))
		})
	}
}

func TestCreateMeeting(t *testing.T) {
	f := newFixture(t)
	m := f.create(t, f.a, f.b)

	assert.Equal(t, model.MeetingNew, m.Status)
	assert.Equal(t, "standup", m.Type.Title)
	require.Len(t, m.Participants, 3)
	assert.Equal(t, f.owner, m.Participants[0].UserID)
	assert.Equal(t, model.ParticipantAccepted, m.Participants[0].Status)
	for _, p := range m.Participants[1:] {
		assert.Equal(t, model.ParticipantNew, p.Status)
	}
	assert.Len(t, f.events.of(model.EventInvited), 2)
}

func TestCreateMeetingWithAnsweredInviteesIsApproved(t *testing.T) {
	f := newFixture(t)
	in := f.input()
	in.Invitees = []Invitee{{UserID: f.a, Status: model.ParticipantAccepted}}

	m, err := f.svc.Create(context.Background(), f.owner, in)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingApproved, m.Status)
}

func TestCreateMeetingSurvivesFailedRecompute(t *testing.T) {
	f := newFixture(t)
	f.repo.statusErr = errors.New("connection reset")
	in := f.input()
	in.Invitees = []Invitee{{UserID: f.a, Status: model.ParticipantAccepted}}

	m, err := f.svc.Create(context.Background(), f.owner, in)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingNew, m.Status)
	assert.Len(t, m.Participants, 2)

	got, err := f.repo.GetMeeting(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)
	assert.Len(t, f.repo.meetings, 1)
}

func TestCreateMeetingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateInput)
		want   error
	}{
		{"start in the past", func(in *CreateInput) { in.StartTime = now.Add(-time.Minute) }, apperr.ErrInvalidSchedule},
		{"start exactly now", func(in *CreateInput) { in.StartTime = now }, apperr.ErrInvalidSchedule},
		{"owner self-invite", func(in *CreateInput) { in.Invitees = append(in.Invitees, Invitee{UserID: f.owner}) }, apperr.ErrInvalidParticipants},
		{"no invitees", func(in *CreateInput) { in.Invitees = nil }, apperr.ErrInvalidParticipants},
		{"repeated invitee", func(in *CreateInput) { in.Invitees = append(in.Invitees, Invitee{UserID: f.a}) }, apperr.ErrInvalidParticipants},
		{"unknown user", func(in *CreateInput) { in.Invitees = append(in.Invitees, Invitee{UserID: uuid.New()}) }, apperr.ErrNotFound},
		{"blank title", func(in *CreateInput) { in.Title = "   " }, apperr.ErrInvalidArgument},
		{"long location", func(in *CreateInput) { in.Location = string(make([]byte, 41)) }, apperr.ErrInvalidArgument},
		{"bad status", func(in *CreateInput) { in.Invitees[0].Status = "maybe" }, apperr.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(f.a)
			tt.mutate(&in)
			_, err := f.svc.Create(ctx, f.owner, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, f.repo.meetings, "rejected creates leave nothing behind")
	assert.Empty(t, f.repo.participants)
}

func TestOwnerSelfInviteMessage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.owner, f.input(f.owner))
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidParticipants, apperr.KindOf(err))
	assert.Equal(t, "owner cannot self-invite", apperr.MessageOf(err))
}

func TestAllAcceptApproves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a, f.b)

	_, err := f.svc.UpdateParticipantStatus(ctx, m.ID, f.a, model.ParticipantAccepted, f.a)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingNew, f.status(t, m.ID))

	_, err = f.svc.UpdateParticipantStatus(ctx, m.ID, f.b, model.ParticipantAccepted, f.b)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingApproved, f.status(t, m.ID))

	responded := f.events.of(model.EventResponded)
	require.Len(t, responded, 2)
	assert.Equal(t, f.owner, responded[0].to)
	assert.Len(t, f.events.of(model.EventStatus), 3, "one status event per participant")
}

func TestAnyDeclineCancels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a, f.b)

	_, err := f.svc.UpdateParticipantStatus(ctx, m.ID, f.a, model.ParticipantAccepted, f.a)
	require.NoError(t, err)
	_, err = f.svc.UpdateParticipantStatus(ctx, m.ID, f.b, model.ParticipantDeclined, f.b)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingCanceled, f.status(t, m.ID))

	// a decline can be taken back
	_, err = f.svc.UpdateParticipantStatus(ctx, m.ID, f.b, model.ParticipantAccepted, f.owner)
	require.NoError(t, err)
	assert.Equal(t, model.MeetingApproved, f.status(t, m.ID))
}

func TestRecomputeSkipsUnchangedStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a, f.b)
	writes := f.repo.statusWrites

	_, err := f.svc.UpdateParticipantStatus(ctx, m.ID, f.a, model.ParticipantNew, f.a)
	require.NoError(t, err)
	_, err = f.svc.recompute(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, writes, f.repo.statusWrites)
}

func TestUpdateParticipantStatusAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a, f.b)

	_, err := f.svc.UpdateParticipantStatus(ctx, m.ID, f.b, model.ParticipantAccepted, f.a)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.UpdateParticipantStatus(ctx, m.ID, f.ux, model.ParticipantAccepted, f.ux)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "not a participant")

	_, err = f.svc.UpdateParticipantStatus(ctx, uuid.New(), f.a, model.ParticipantAccepted, f.a)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.svc.UpdateParticipantStatus(ctx, m.ID, f.owner, model.ParticipantDeclined, f.owner)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)

	_, err = f.svc.UpdateParticipantStatus(ctx, m.ID, f.a, "maybe", f.a)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	p, err := f.svc.UpdateParticipantStatus(ctx, m.ID, f.a, model.ParticipantDeclined, f.owner)
	require.NoError(t, err)
	assert.Equal(t, model.ParticipantDeclined, p.Status)
}

func TestAddParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a)

	_, err := f.svc.UpdateParticipantStatus(ctx, m.ID, f.a, model.ParticipantAccepted, f.a)
	require.NoError(t, err)
	require.Equal(t, model.MeetingApproved, f.status(t, m.ID))

	_, err = f.svc.AddParticipant(ctx, m.ID, Invitee{UserID: f.b}, f.a)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.AddParticipant(ctx, uuid.New(), Invitee{UserID: f.b}, f.owner)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.svc.AddParticipant(ctx, m.ID, Invitee{UserID: uuid.New()}, f.owner)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.svc.AddParticipant(ctx, m.ID, Invitee{UserID: f.a}, f.owner)
	assert.ErrorIs(t, err, apperr.ErrDuplicateParticipant)

	_, err = f.svc.AddParticipant(ctx, m.ID, Invitee{UserID: f.owner}, f.owner)
	assert.ErrorIs(t, err, apperr.ErrDuplicateParticipant)

	p, err := f.svc.AddParticipant(ctx, m.ID, Invitee{UserID: f.b}, f.owner)
	require.NoError(t, err)
	assert.Equal(t, model.ParticipantNew, p.Status)
	assert.Equal(t, model.MeetingNew, f.status(t, m.ID), "a pending newcomer reopens the meeting")
}

func TestDeleteParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a, f.b)
	rows := map[uuid.UUID]uuid.UUID{}
	for _, p := range m.Participants {
		rows[p.UserID] = p.ID
	}

	_, err := f.svc.DeleteParticipant(ctx, rows[f.owner], f.owner)
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
	assert.Equal(t, "cannot remove owner", apperr.MessageOf(err))

	_, err = f.svc.DeleteParticipant(ctx, rows[f.a], f.b)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.DeleteParticipant(ctx, rows[f.owner], f.a)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.svc.UpdateParticipantStatus(ctx, m.ID, f.a, model.ParticipantAccepted, f.a)
	require.NoError(t, err)

	ok, err := f.svc.DeleteParticipant(ctx, rows[f.b], f.b)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, model.MeetingApproved, f.status(t, m.ID), "removal recomputes over the rest")

	ok, err = f.svc.DeleteParticipant(ctx, rows[f.b], f.b)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "participant not found", apperr.MessageOf(err))
	assert.False(t, ok)

	_, err = f.svc.DeleteParticipant(ctx, uuid.New(), f.owner)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOwnerRowIsAlwaysAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a, f.b)

	_, _ = f.svc.UpdateParticipantStatus(ctx, m.ID, f.owner, model.ParticipantNew, f.owner)
	_, _ = f.svc.UpdateParticipantStatus(ctx, m.ID, f.owner, model.ParticipantDeclined, f.a)
	for _, p := range m.Participants {
		if p.UserID == f.owner {
			_, _ = f.svc.DeleteParticipant(ctx, p.ID, f.owner)
		}
	}

	got, err := f.repo.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	owners := 0
	for _, p := range got.Participants {
		if p.UserID == f.owner {
			owners++
			assert.Equal(t, model.ParticipantAccepted, p.Status)
		}
	}
	assert.Equal(t, 1, owners)
}

func TestGetMeetingVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a)

	_, err := f.svc.Get(ctx, m.ID, f.a)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, m.ID, f.owner)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, m.ID, f.ux)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateMeeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a)

	title := "Renamed"
	_, err := f.svc.Update(ctx, m.ID, model.MeetingPatch{Title: &title}, f.a)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	past := now.Add(-time.Hour)
	_, err = f.svc.Update(ctx, m.ID, model.MeetingPatch{StartTime: &past}, f.owner)
	assert.ErrorIs(t, err, apperr.ErrInvalidSchedule)

	typ := "retro"
	got, err := f.svc.Update(ctx, m.ID, model.MeetingPatch{Title: &title, TypeTitle: &typ}, f.owner)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "retro", got.Type.Title)
	assert.Equal(t, "Room 4", got.Location)

	types, err := f.svc.Types(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestDeleteMeeting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.create(t, f.a, f.b)

	_, err := f.svc.Delete(ctx, m.ID, f.a)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	ok, err := f.svc.Delete(ctx, m.ID, f.owner)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, f.repo.participants)
	assert.Len(t, f.events.of(model.EventDeleted), 2)

	ok, err = f.svc.Delete(ctx, m.ID, f.owner)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListAndRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m1 := f.create(t, f.a)
	in := f.input(f.a)
	in.StartTime = now.Add(48 * time.Hour)
	m2, err := f.svc.Create(ctx, f.owner, in)
	require.NoError(t, err)

	reqs, total, err := f.svc.Requests(ctx, f.a, paging.Page{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, reqs, 2)
	assert.Equal(t, m2.ID, reqs[0].ID, "latest invitation first")

	_, err = f.svc.UpdateParticipantStatus(ctx, m1.ID, f.a, model.ParticipantAccepted, f.a)
	require.NoError(t, err)

	mine, total, err := f.svc.List(ctx, f.a, ListInput{IncludeAsParticipant: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, m1.ID, mine[0].ID)

	owned, total, err := f.svc.List(ctx, f.owner, ListInput{Page: paging.Page{Limit: 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "total ignores the window")
	require.Len(t, owned, 1)
	assert.Equal(t, m2.ID, owned[0].ID, "latest start first")

	past, total, err := f.svc.List(ctx, f.owner, ListInput{Past: true})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, past)

	_, _, err = f.svc.List(ctx, f.owner, ListInput{Page: paging.Page{Limit: 5000}})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}
