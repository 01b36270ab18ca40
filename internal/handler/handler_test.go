package handler_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"social-scheduler-api/internal/account"
	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/auth"
	"social-scheduler-api/internal/follow"
	"social-scheduler-api/internal/handler"
	"social-scheduler-api/internal/meeting"
	"social-scheduler-api/internal/middleware"
	"social-scheduler-api/internal/rpc"
	"social-scheduler-api/internal/store"
)

// servers exposes the handler through the registered service interfaces.
type servers struct {
	auth    rpc.AuthServer
	user    rpc.UserServer
	meeting rpc.MeetingServer
	follow  rpc.FollowServer
}

type capture struct{ s *servers }

func (c capture) RegisterService(_ *grpc.ServiceDesc, impl any) {
	if srv, ok := impl.(rpc.AuthServer); ok {
		c.s.auth = srv
	}
	if srv, ok := impl.(rpc.UserServer); ok {
		c.s.user = srv
	}
	if srv, ok := impl.(rpc.MeetingServer); ok {
		c.s.meeting = srv
	}
	if srv, ok := impl.(rpc.FollowServer); ok {
		c.s.follow = srv
	}
}

func setup(t *testing.T) *servers {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	st := store.New(pool)
	require.NoError(t, st.Migrate(ctx))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	iss := auth.NewIssuer("test-secret", 15*time.Minute)
	h := handler.New(
		account.NewService(st, log, 30),
		account.NewSessions(st, iss, time.Hour, log),
		meeting.NewService(st, log),
		follow.NewService(st, log),
		log,
	)
	s := &servers{}
	h.RegisterServices(capture{s})
	return s
}

func as(uid string) context.Context {
	return middleware.WithUserID(context.Background(), uuid.MustParse(uid))
}

func register(t *testing.T, s *servers) *rpc.TokenResponse {
	t.Helper()
	tag := uuid.New().String()[:8]
	tr, err := s.auth.Register(context.Background(), &rpc.RegisterRequest{
		Email:    fmt.Sprintf("test-%s@test.com", tag),
		Account:  "user_" + tag,
		Name:     "Test User",
		Password: "testpass123",
	})
	require.NoError(t, err)
	return tr
}

func createMeeting(t *testing.T, s *servers, owner string, invitees ...string) *rpc.Meeting {
	t.Helper()
	req := &rpc.CreateMeetingRequest{
		Title:     "planning",
		Type:      "sync",
		StartTime: time.Now().Add(48 * time.Hour),
		Location:  "room 4",
	}
	for _, id := range invitees {
		req.Participants = append(req.Participants, &rpc.Invitee{UserId: id})
	}
	m, err := s.meeting.CreateMeeting(as(owner), req)
	require.NoError(t, err)
	return m
}

func TestRegisterAndLogin(t *testing.T) {
	s := setup(t)
	tag := uuid.New().String()[:8]
	email := fmt.Sprintf("Login-%s@Test.com", tag)

	tr, err := s.auth.Register(context.Background(), &rpc.RegisterRequest{
		Email: email, Account: "login_" + tag, Name: "L", Password: "testpass123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tr.AccessToken)
	assert.NotEmpty(t, tr.RefreshToken)

	lr, err := s.auth.Login(context.Background(), &rpc.LoginRequest{Email: email, Password: "testpass123"})
	require.NoError(t, err)
	assert.Equal(t, tr.UserId, lr.UserId)

	_, err = s.auth.Login(context.Background(), &rpc.LoginRequest{Email: email, Password: "wrongpass1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = s.auth.Register(context.Background(), &rpc.RegisterRequest{
		Email: email, Account: "other_" + tag, Name: "L", Password: "testpass123",
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(rpc.Status(err)))
}

func TestRegisterValidation(t *testing.T) {
	s := setup(t)
	cases := map[string]*rpc.RegisterRequest{
		"bad email":      {Email: "nope", Account: "valid_acc", Name: "X", Password: "testpass123"},
		"short password": {Email: "a@b.com", Account: "valid_acc", Name: "X", Password: "short"},
		"short account":  {Email: "a@b.com", Account: "ab", Name: "X", Password: "testpass123"},
		"empty name":     {Email: "a@b.com", Account: "valid_acc", Name: "", Password: "testpass123"},
	}
	for name, req := range cases {
		_, err := s.auth.Register(context.Background(), req)
		assert.Equal(t, codes.InvalidArgument, status.Code(rpc.Status(err)), name)
	}
}

func TestRefreshRotation(t *testing.T) {
	s := setup(t)
	tr := register(t, s)

	next, err := s.auth.Refresh(context.Background(), &rpc.RefreshRequest{RefreshToken: tr.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tr.RefreshToken, next.RefreshToken)

	// replaying the rotated token burns the whole family
	_, err = s.auth.Refresh(context.Background(), &rpc.RefreshRequest{RefreshToken: tr.RefreshToken})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = s.auth.Refresh(context.Background(), &rpc.RefreshRequest{RefreshToken: next.RefreshToken})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestMeetingApproval(t *testing.T) {
	s := setup(t)
	owner, a, b := register(t, s), register(t, s), register(t, s)

	m := createMeeting(t, s, owner.UserId, a.UserId, b.UserId)
	assert.Equal(t, "new", m.Status)
	require.Len(t, m.Participants, 3)

	for _, u := range []*rpc.TokenResponse{a, b} {
		_, err := s.meeting.UpdateParticipantStatus(as(u.UserId), &rpc.ParticipantRequest{MeetingId: m.Id, Status: "accepted"})
		require.NoError(t, err)
	}
	got, err := s.meeting.GetMeeting(as(owner.UserId), &rpc.IDRequest{Id: m.Id})
	require.NoError(t, err)
	assert.Equal(t, "approved", got.Status)

	_, err = s.meeting.UpdateParticipantStatus(as(b.UserId), &rpc.ParticipantRequest{MeetingId: m.Id, Status: "declined"})
	require.NoError(t, err)
	got, err = s.meeting.GetMeeting(as(a.UserId), &rpc.IDRequest{Id: m.Id})
	require.NoError(t, err)
	assert.Equal(t, "canceled", got.Status)
}

func TestMeetingVisibility(t *testing.T) {
	s := setup(t)
	owner, guest, stranger := register(t, s), register(t, s), register(t, s)
	m := createMeeting(t, s, owner.UserId, guest.UserId)

	_, err := s.meeting.GetMeeting(as(stranger.UserId), &rpc.IDRequest{Id: m.Id})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.meeting.UpdateParticipantStatus(as(stranger.UserId), &rpc.ParticipantRequest{
		MeetingId: m.Id, UserId: guest.UserId, Status: "accepted",
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	reqs, err := s.meeting.ListMeetingRequests(as(guest.UserId), &rpc.ListRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 1, reqs.Total)
	assert.Equal(t, m.Id, reqs.Meetings[0].Id)

	// pending invitations stay out of the participant's meeting list
	list, err := s.meeting.ListMeetings(as(guest.UserId), &rpc.ListMeetingsRequest{})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestMeetingOwnerOnly(t *testing.T) {
	s := setup(t)
	owner, guest := register(t, s), register(t, s)
	m := createMeeting(t, s, owner.UserId, guest.UserId)

	title := "renamed"
	_, err := s.meeting.UpdateMeeting(as(guest.UserId), &rpc.UpdateMeetingRequest{Id: m.Id, Title: &title})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	up, err := s.meeting.UpdateMeeting(as(owner.UserId), &rpc.UpdateMeetingRequest{Id: m.Id, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", up.Title)

	ack, err := s.meeting.DeleteMeeting(as(guest.UserId), &rpc.IDRequest{Id: m.Id})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Nil(t, ack)

	ack, err = s.meeting.DeleteMeeting(as(owner.UserId), &rpc.IDRequest{Id: m.Id})
	require.NoError(t, err)
	assert.True(t, ack.Ok)

	ack, err = s.meeting.DeleteMeeting(as(owner.UserId), &rpc.IDRequest{Id: m.Id})
	require.NoError(t, err)
	assert.False(t, ack.Ok)
}

func TestCreateMeetingRejects(t *testing.T) {
	s := setup(t)
	owner, guest := register(t, s), register(t, s)
	ctx := as(owner.UserId)

	_, err := s.meeting.CreateMeeting(ctx, &rpc.CreateMeetingRequest{
		Title: "x", Type: "t", Location: "l", StartTime: time.Now().Add(-time.Hour),
		Participants: []*rpc.Invitee{{UserId: guest.UserId}},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidSchedule)

	_, err = s.meeting.CreateMeeting(ctx, &rpc.CreateMeetingRequest{
		Title: "x", Type: "t", Location: "l", StartTime: time.Now().Add(time.Hour),
		Participants: []*rpc.Invitee{{UserId: owner.UserId}},
	})
	assert.ErrorIs(t, err, apperr.ErrOwnerSelfInvite)

	_, err = s.meeting.CreateMeeting(ctx, &rpc.CreateMeetingRequest{
		Title: "x", Type: "t", Location: "l", StartTime: time.Now().Add(time.Hour),
		Participants: []*rpc.Invitee{{UserId: "not-a-uuid"}},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestFollowFlow(t *testing.T) {
	s := setup(t)
	a, b := register(t, s), register(t, s)

	_, err := s.follow.Follow(as(a.UserId), &rpc.IDRequest{Id: b.UserId})
	require.NoError(t, err)
	_, err = s.follow.Follow(as(a.UserId), &rpc.IDRequest{Id: b.UserId})
	assert.ErrorIs(t, err, apperr.ErrDuplicateFollow)
	_, err = s.follow.Follow(as(a.UserId), &rpc.IDRequest{Id: a.UserId})
	assert.ErrorIs(t, err, apperr.ErrSelfFollow)

	_, err = s.follow.Follow(as(b.UserId), &rpc.IDRequest{Id: a.UserId})
	require.NoError(t, err)
	st, err := s.follow.GetFollowStatus(as(a.UserId), &rpc.IDRequest{Id: b.UserId})
	require.NoError(t, err)
	assert.True(t, st.IsMutual)

	c, err := s.follow.GetFollowCounts(as(a.UserId), &rpc.IDRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, c.Following)
	assert.EqualValues(t, 1, c.Followers)

	fl, err := s.follow.ListFollowers(as(a.UserId), &rpc.ListRequest{Id: b.UserId})
	require.NoError(t, err)
	require.Len(t, fl.Follows, 1)
	assert.Equal(t, a.UserId, fl.Follows[0].User.Id)

	ack, err := s.follow.Unfollow(as(a.UserId), &rpc.IDRequest{Id: b.UserId})
	require.NoError(t, err)
	assert.True(t, ack.Ok)
	ack, err = s.follow.Unfollow(as(a.UserId), &rpc.IDRequest{Id: b.UserId})
	require.NoError(t, err)
	assert.False(t, ack.Ok)
}

func TestDeletionFlow(t *testing.T) {
	s := setup(t)
	u := register(t, s)
	ctx := as(u.UserId)

	info, err := s.user.ScheduleDeletion(ctx, &rpc.Empty{})
	require.NoError(t, err)
	assert.True(t, info.Scheduled)
	assert.True(t, info.CanRecover)
	assert.EqualValues(t, 30, info.DaysRemaining)

	info, err = s.user.RecoverAccount(ctx, &rpc.Empty{})
	require.NoError(t, err)
	assert.False(t, info.Scheduled)

	_, err = s.user.RecoverAccount(ctx, &rpc.Empty{})
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
}

func TestRequiresCaller(t *testing.T) {
	s := setup(t)
	_, err := s.user.GetMe(context.Background(), &rpc.Empty{})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = s.meeting.ListMeetings(context.Background(), &rpc.ListMeetingsRequest{})
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
