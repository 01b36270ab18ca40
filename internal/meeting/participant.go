package meeting

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/authz"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/store"
)

func findParticipant(m *model.Meeting, userID uuid.UUID) *model.Participant {
	for i := range m.Participants {
		if m.Participants[i].UserID == userID {
			return &m.Participants[i]
		}
	}
	return nil
}

// AddParticipant invites another user to a meeting. Only the owner may do it.
func (s *Service) AddParticipant(ctx context.Context, meetingID uuid.UUID, inv Invitee, requester uuid.UUID) (*model.Participant, error) {
	m, err := s.loadMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !authz.IsOwner(m, requester) {
		return nil, apperr.ErrForbidden
	}

	ok, err := s.repo.UserExists(ctx, inv.UserID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	if findParticipant(m, inv.UserID) != nil {
		return nil, apperr.ErrDuplicateParticipant
	}

	st := inv.Status
	if st == "" {
		st = model.ParticipantNew
	}
	if !st.Valid() {
		return nil, apperr.InvalidArg("unknown participant status " + string(st))
	}

	p := &model.Participant{ID: uuid.New(), MeetingID: meetingID, UserID: inv.UserID, Status: st}
	if err := s.repo.AddParticipant(ctx, p); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperr.ErrDuplicateParticipant
		case errors.Is(err, store.ErrNotFound):
			// meeting deleted concurrently
			return nil, apperr.ErrMeetingNotFound
		}
		return nil, apperr.Internal(err)
	}

	s.notify.Notify(p.UserID, model.Event{Type: model.EventInvited, MeetingID: m.ID, Title: m.Title, At: s.now()})
	if _, err := s.recompute(ctx, meetingID); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateParticipantStatus records target's answer. The target may answer for
// itself; the owner may answer for anyone. The owner's own row stays accepted.
func (s *Service) UpdateParticipantStatus(ctx context.Context, meetingID, target uuid.UUID, status model.ParticipantStatus, requester uuid.UUID) (*model.Participant, error) {
	if !status.Valid() {
		return nil, apperr.InvalidArg("unknown participant status " + string(status))
	}
	m, err := s.loadMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !authz.IsSelfOrOwner(m, requester, target) {
		return nil, apperr.ErrForbidden
	}
	if findParticipant(m, target) == nil {
		return nil, apperr.ErrParticipantNotFound
	}
	if target == m.OwnerID && status != model.ParticipantAccepted {
		return nil, apperr.ErrOwnerMustAccept
	}

	p, err := s.repo.UpdateParticipantStatus(ctx, meetingID, target, status)
	if err != nil {
		return nil, fromStore(err, apperr.ErrParticipantNotFound)
	}

	if target != m.OwnerID {
		uid := target
		s.notify.Notify(m.OwnerID, model.Event{
			Type: model.EventResponded, MeetingID: m.ID, UserID: &uid,
			Status: string(status), Title: m.Title, At: s.now(),
		})
	}
	if _, err := s.recompute(ctx, meetingID); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteParticipant removes a participant row. Only the participant or the
// meeting owner may do it, and never on the owner's row. A missing row reports
// false.
func (s *Service) DeleteParticipant(ctx context.Context, participantID, requester uuid.UUID) (bool, error) {
	p, err := s.repo.GetParticipant(ctx, participantID)
	if errors.Is(err, store.ErrNotFound) {
		return false, apperr.ErrParticipantNotFound
	}
	if err != nil {
		return false, apperr.Internal(err)
	}
	m, err := s.loadMeeting(ctx, p.MeetingID)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, apperr.ErrParticipantNotFound
	}
	if err != nil {
		return false, err
	}

	if !authz.IsSelf(p, requester) && !authz.IsOwner(m, requester) {
		return false, apperr.ErrForbidden
	}
	if p.UserID == m.OwnerID {
		return false, apperr.ErrCannotRemoveOwner
	}

	ok, err := s.repo.DeleteParticipant(ctx, participantID)
	if err != nil {
		return false, apperr.Internal(err)
	}
	if !ok {
		return false, apperr.ErrParticipantNotFound
	}
	if _, err := s.recompute(ctx, m.ID); err != nil {
		return false, err
	}
	return true, nil
}
