package meeting

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/store"
)

// memRepo is an in-memory Repository with the same failure modes as the
// Postgres store.
type memRepo struct {
	mu           sync.Mutex
	users        map[uuid.UUID]bool
	types        map[string]model.MeetingType
	meetings     map[uuid.UUID]*model.Meeting
	participants map[uuid.UUID]*model.Participant
	statusWrites int
	statusErr    error
	clock        time.Time
}

func newMemRepo(users ...uuid.UUID) *memRepo {
	r := &memRepo{
		users:        map[uuid.UUID]bool{},
		types:        map[string]model.MeetingType{},
		meetings:     map[uuid.UUID]*model.Meeting{},
		participants: map[uuid.UUID]*model.Participant{},
		clock:        time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, u := range users {
		r.users[u] = true
	}
	return r
}

// tick gives rows strictly increasing creation times.
func (r *memRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memRepo) UserExists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *memRepo) CreateMeeting(_ context.Context, m *model.Meeting, typeTitle string, invitees []model.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range invitees {
		if !r.users[p.UserID] {
			return errors.Wrap(store.ErrNotFound, "participant user")
		}
	}
	t, ok := r.types[typeTitle]
	if !ok {
		t = model.MeetingType{ID: uuid.New(), Title: typeTitle}
		r.types[typeTitle] = t
	}
	m.Type = t
	m.CreatedAt = r.tick()
	cp := *m
	cp.Participants = nil
	r.meetings[m.ID] = &cp

	rows := append([]model.Participant{{UserID: m.OwnerID, Status: model.ParticipantAccepted}}, invitees...)
	m.Participants = m.Participants[:0]
	for _, p := range rows {
		p.ID = uuid.New()
		p.MeetingID = m.ID
		p.CreatedAt = r.tick()
		r.participants[p.ID] = &p
		m.Participants = append(m.Participants, p)
	}
	return nil
}

func (r *memRepo) participantsOf(meetingID uuid.UUID) []model.Participant {
	var out []model.Participant
	for _, p := range r.participants {
		if p.MeetingID == meetingID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memRepo) GetMeeting(_ context.Context, id uuid.UUID) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, errors.Wrap(store.ErrNotFound, "meeting")
	}
	cp := *m
	cp.Participants = r.participantsOf(id)
	return &cp, nil
}

func (r *memRepo) UpdateMeeting(ctx context.Context, id uuid.UUID, p model.MeetingPatch) (*model.Meeting, error) {
	r.mu.Lock()
	m, ok := r.meetings[id]
	if !ok {
		r.mu.Unlock()
		return nil, errors.Wrap(store.ErrNotFound, "meeting")
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.StartTime != nil {
		m.StartTime = *p.StartTime
	}
	if p.Location != nil {
		m.Location = *p.Location
	}
	if p.LocationURL != nil {
		m.LocationURL = p.LocationURL
	}
	if p.AppointedBy != nil {
		m.AppointedBy = uuid.NullUUID{UUID: *p.AppointedBy, Valid: true}
	}
	if p.AssignedTo != nil {
		m.AssignedTo = uuid.NullUUID{UUID: *p.AssignedTo, Valid: true}
	}
	if p.TypeTitle != nil {
		t, ok := r.types[*p.TypeTitle]
		if !ok {
			t = model.MeetingType{ID: uuid.New(), Title: *p.TypeTitle}
			r.types[*p.TypeTitle] = t
		}
		m.Type = t
	}
	r.mu.Unlock()
	return r.GetMeeting(ctx, id)
}

func (r *memRepo) SetMeetingStatus(_ context.Context, id uuid.UUID, status model.MeetingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statusErr != nil {
		return r.statusErr
	}
	m, ok := r.meetings[id]
	if !ok {
		return errors.Wrap(store.ErrNotFound, "meeting")
	}
	m.Status = status
	r.statusWrites++
	return nil
}

func (r *memRepo) DeleteMeeting(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[id]; !ok {
		return false, nil
	}
	for pid, p := range r.participants {
		if p.MeetingID == id {
			delete(r.participants, pid)
		}
	}
	delete(r.meetings, id)
	return true, nil
}

func (r *memRepo) ListUserMeetings(_ context.Context, userID uuid.UUID, f store.MeetingFilter) ([]model.Meeting, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []model.Meeting
	for _, m := range r.meetings {
		match := m.OwnerID == userID
		if !match && f.IncludeAsParticipant {
			for _, p := range r.participantsOf(m.ID) {
				if p.UserID == userID && p.Status != model.ParticipantNew {
					match = true
				}
			}
		}
		if match && f.Before != nil && !m.StartTime.Before(*f.Before) {
			match = false
		}
		if match {
			cp := *m
			cp.Participants = r.participantsOf(m.ID)
			all = append(all, cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.After(all[j].StartTime) })
	return window(all, f.Skip, f.Limit), len(all), nil
}

func (r *memRepo) ListMeetingRequests(_ context.Context, userID uuid.UUID, skip, limit int) ([]model.Meeting, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var invites []model.Participant
	for _, p := range r.participants {
		if p.UserID == userID && p.Status == model.ParticipantNew {
			invites = append(invites, *p)
		}
	}
	sort.Slice(invites, func(i, j int) bool { return invites[i].CreatedAt.After(invites[j].CreatedAt) })
	var out []model.Meeting
	for _, p := range invites {
		cp := *r.meetings[p.MeetingID]
		cp.Participants = r.participantsOf(cp.ID)
		out = append(out, cp)
	}
	return window(out, skip, limit), len(out), nil
}

func window[T any](xs []T, skip, limit int) []T {
	if skip >= len(xs) {
		return nil
	}
	xs = xs[skip:]
	if limit < len(xs) {
		xs = xs[:limit]
	}
	return xs
}

func (r *memRepo) GetParticipant(_ context.Context, id uuid.UUID) (*model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, errors.Wrap(store.ErrNotFound, "participant")
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) AddParticipant(_ context.Context, p *model.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[p.MeetingID]; !ok {
		return errors.Wrap(store.ErrNotFound, "meeting")
	}
	for _, q := range r.participants {
		if q.MeetingID == p.MeetingID && q.UserID == p.UserID {
			return errors.Wrap(store.ErrDuplicate, "participant")
		}
	}
	p.CreatedAt = r.tick()
	cp := *p
	r.participants[p.ID] = &cp
	return nil
}

func (r *memRepo) UpdateParticipantStatus(_ context.Context, meetingID, userID uuid.UUID, status model.ParticipantStatus) (*model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if p.MeetingID == meetingID && p.UserID == userID {
			p.Status = status
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.Wrap(store.ErrNotFound, "participant")
}

func (r *memRepo) DeleteParticipant(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[id]; !ok {
		return false, nil
	}
	delete(r.participants, id)
	return true, nil
}

func (r *memRepo) ListMeetingTypes(context.Context) ([]model.MeetingType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MeetingType
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type recordedEvent struct {
	to uuid.UUID
	ev model.Event
}

type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recorder) Notify(to uuid.UUID, ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{to, ev})
}

func (r *recorder) of(typ string) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedEvent
	for _, e := range r.events {
		if e.ev.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
