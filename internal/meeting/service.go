package meeting

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/store"
)

type Repository interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)

	CreateMeeting(ctx context.Context, m *model.Meeting, typeTitle string, invitees []model.Participant) error
	GetMeeting(ctx context.Context, id uuid.UUID) (*model.Meeting, error)
	UpdateMeeting(ctx context.Context, id uuid.UUID, p model.MeetingPatch) (*model.Meeting, error)
	SetMeetingStatus(ctx context.Context, id uuid.UUID, status model.MeetingStatus) error
	DeleteMeeting(ctx context.Context, id uuid.UUID) (bool, error)
	ListUserMeetings(ctx context.Context, userID uuid.UUID, f store.MeetingFilter) ([]model.Meeting, int, error)
	ListMeetingRequests(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.Meeting, int, error)

	GetParticipant(ctx context.Context, id uuid.UUID) (*model.Participant, error)
	AddParticipant(ctx context.Context, p *model.Participant) error
	UpdateParticipantStatus(ctx context.Context, meetingID, userID uuid.UUID, status model.ParticipantStatus) (*model.Participant, error)
	DeleteParticipant(ctx context.Context, id uuid.UUID) (bool, error)

	ListMeetingTypes(ctx context.Context) ([]model.MeetingType, error)
}

// Notifier receives meeting events for a user. Implementations must not block.
type Notifier interface {
	Notify(userID uuid.UUID, ev model.Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(uuid.UUID, model.Event) {}

type Service struct {
	repo   Repository
	log    *slog.Logger
	notify Notifier
	now    func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notify = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{repo: repo, log: log, notify: nopNotifier{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// fromStore translates persistence sentinels; notFound is what a missing row
// means to the caller.
func fromStore(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound
	default:
		return apperr.Internal(err)
	}
}

// loadMeeting fetches a meeting or ErrMeetingNotFound.
func (s *Service) loadMeeting(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	m, err := s.repo.GetMeeting(ctx, id)
	if err != nil {
		return nil, fromStore(err, apperr.ErrMeetingNotFound)
	}
	return m, nil
}

// recompute re-derives the meeting status from the committed participant set
// and persists it when it changed. A meeting without participants is left as is.
func (s *Service) recompute(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	m, err := s.loadMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(m.Participants) == 0 {
		return m, nil
	}

	next := DeriveStatus(m.Participants)
	if next == m.Status {
		return m, nil
	}
	if err := s.repo.SetMeetingStatus(ctx, id, next); err != nil {
		return nil, fromStore(err, apperr.ErrMeetingNotFound)
	}
	s.log.Debug("meeting status changed", "meeting", id, "from", m.Status, "to", next)
	m.Status = next

	ev := model.Event{Type: model.EventStatus, MeetingID: m.ID, Status: string(next), Title: m.Title, At: s.now()}
	for _, p := range m.Participants {
		s.notify.Notify(p.UserID, ev)
	}
	return m, nil
}
