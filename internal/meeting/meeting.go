package meeting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/authz"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/paging"
	"social-scheduler-api/internal/store"
)

type Invitee struct {
	UserID uuid.UUID
	// Status defaults to new.
	Status model.ParticipantStatus
}

type CreateInput struct {
	Title       string
	TypeTitle   string
	StartTime   time.Time
	Location    string
	LocationURL *string
	AppointedBy *uuid.UUID
	AssignedTo  *uuid.UUID
	Invitees    []Invitee
}

// Create stores a new meeting owned by ownerID together with its invitees and
// the owner's own accepted participation, all or nothing.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*model.Meeting, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.TypeTitle = strings.TrimSpace(in.TypeTitle)
	in.Location = strings.TrimSpace(in.Location)
	if err := checkFields(&in.Title, &in.TypeTitle, &in.Location, in.LocationURL); err != nil {
		return nil, err
	}

	if !in.StartTime.After(s.now()) {
		return nil, apperr.ErrInvalidSchedule
	}

	seen := make(map[uuid.UUID]bool, len(in.Invitees))
	invitees := make([]model.Participant, 0, len(in.Invitees))
	for _, inv := range in.Invitees {
		if inv.UserID == ownerID {
			return nil, apperr.ErrOwnerSelfInvite
		}
		if seen[inv.UserID] {
			return nil, apperr.ErrRepeatedInvitee
		}
		seen[inv.UserID] = true

		st := inv.Status
		if st == "" {
			st = model.ParticipantNew
		}
		if !st.Valid() {
			return nil, apperr.InvalidArg("unknown participant status " + string(st))
		}
		invitees = append(invitees, model.Participant{UserID: inv.UserID, Status: st})
	}
	if len(invitees) == 0 {
		return nil, apperr.ErrNoParticipants
	}

	m := &model.Meeting{
		ID:          uuid.New(),
		Title:       in.Title,
		OwnerID:     ownerID,
		AppointedBy: nullable(in.AppointedBy),
		AssignedTo:  nullable(in.AssignedTo),
		Status:      model.MeetingNew,
		StartTime:   in.StartTime,
		Location:    in.Location,
		LocationURL: in.LocationURL,
	}
	if err := s.repo.CreateMeeting(ctx, m, in.TypeTitle, invitees); err != nil {
		return nil, fromStore(err, apperr.ErrUserNotFound)
	}

	ev := model.Event{Type: model.EventInvited, MeetingID: m.ID, Title: m.Title, At: s.now()}
	for _, p := range invitees {
		s.notify.Notify(p.UserID, ev)
	}
	// Invitees may arrive already answered. The meeting is committed at this
	// point, so a failed recompute is left to the next mutation.
	got, err := s.recompute(ctx, m.ID)
	if err != nil {
		s.log.Warn("recompute after create", "meeting", m.ID, "err", err)
		return m, nil
	}
	return got, nil
}

// Get returns a meeting the actor owns or takes part in. Anyone else gets
// not found.
func (s *Service) Get(ctx context.Context, id, actor uuid.UUID) (*model.Meeting, error) {
	m, err := s.loadMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.IsMember(m, actor) {
		return nil, apperr.ErrMeetingNotFound
	}
	return m, nil
}

type ListInput struct {
	Page                 paging.Page
	IncludeAsParticipant bool
	// Past keeps only meetings that already started.
	Past bool
}

// List returns meetings owned by userID and, when asked, those it already
// answered as a participant. Pending invitations are in Requests.
func (s *Service) List(ctx context.Context, userID uuid.UUID, in ListInput) ([]model.Meeting, int, error) {
	page, err := in.Page.Resolve(paging.DefaultLimit)
	if err != nil {
		return nil, 0, err
	}
	f := store.MeetingFilter{Skip: page.Skip, Limit: page.Limit, IncludeAsParticipant: in.IncludeAsParticipant}
	if in.Past {
		now := s.now()
		f.Before = &now
	}
	ms, total, err := s.repo.ListUserMeetings(ctx, userID, f)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return ms, total, nil
}

// Requests returns meetings where userID has not answered yet, latest
// invitation first.
func (s *Service) Requests(ctx context.Context, userID uuid.UUID, page paging.Page) ([]model.Meeting, int, error) {
	page, err := page.Resolve(paging.DefaultLimit)
	if err != nil {
		return nil, 0, err
	}
	ms, total, err := s.repo.ListMeetingRequests(ctx, userID, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return ms, total, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p model.MeetingPatch, actor uuid.UUID) (*model.Meeting, error) {
	m, err := s.loadMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(m, actor) {
		return nil, apperr.ErrForbidden
	}
	if p.StartTime != nil && !p.StartTime.After(s.now()) {
		return nil, apperr.ErrInvalidSchedule
	}
	p.Title = trimmed(p.Title)
	p.TypeTitle = trimmed(p.TypeTitle)
	p.Location = trimmed(p.Location)
	if err := checkFields(p.Title, p.TypeTitle, p.Location, p.LocationURL); err != nil {
		return nil, err
	}
	if p.Empty() {
		return m, nil
	}

	updated, err := s.repo.UpdateMeeting(ctx, id, p)
	if err != nil {
		// appointed_by / assigned_to reference users
		return nil, fromStore(err, apperr.ErrUserNotFound)
	}
	return updated, nil
}

// Delete removes a meeting and its participants. A missing meeting is not an
// error; it reports false.
func (s *Service) Delete(ctx context.Context, id, actor uuid.UUID) (bool, error) {
	m, err := s.loadMeeting(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !authz.IsOwner(m, actor) {
		return false, apperr.ErrForbidden
	}

	ok, err := s.repo.DeleteMeeting(ctx, id)
	if err != nil {
		return false, apperr.Internal(err)
	}
	if ok {
		ev := model.Event{Type: model.EventDeleted, MeetingID: id, Title: m.Title, At: s.now()}
		for _, p := range m.Participants {
			if p.UserID != m.OwnerID {
				s.notify.Notify(p.UserID, ev)
			}
		}
	}
	return ok, nil
}

func (s *Service) Types(ctx context.Context) ([]model.MeetingType, error) {
	ts, err := s.repo.ListMeetingTypes(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return ts, nil
}

func nullable(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
