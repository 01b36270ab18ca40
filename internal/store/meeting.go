package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/model"
)

const meetingCols = `m.id, m.title, m.owner_id, m.appointed_by, m.assigned_to, m.status,
	m.start_time, m.location, m.location_url, m.created_at, m.updated_at,
	t.id, t.title, t.created_at, t.updated_at`

const meetingFrom = ` FROM meetings m JOIN meeting_types t ON t.id = m.type_id`

// MeetingFilter narrows ListUserMeetings.
type MeetingFilter struct {
	Skip, Limit          int
	IncludeAsParticipant bool
	// Before keeps only meetings starting strictly earlier, when set.
	Before *time.Time
}

func scanMeeting(row pgx.Row) (*model.Meeting, error) {
	m := &model.Meeting{}
	var status string
	err := row.Scan(&m.ID, &m.Title, &m.OwnerID, &m.AppointedBy, &m.AssignedTo, &status,
		&m.StartTime, &m.Location, &m.LocationURL, &m.CreatedAt, &m.UpdatedAt,
		&m.Type.ID, &m.Type.Title, &m.Type.CreatedAt, &m.Type.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Status = model.MeetingStatus(status)
	return m, nil
}

// CreateMeeting stores m with its invitees and the owner's accepted row in one
// transaction. Unknown user ids abort everything with ErrNotFound.
func (s *Store) CreateMeeting(ctx context.Context, m *model.Meeting, typeTitle string, invitees []model.Participant) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		ids := make([]uuid.UUID, 0, len(invitees))
		for _, p := range invitees {
			ids = append(ids, p.UserID)
		}
		var known int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE id = ANY($1)`, ids).Scan(&known); err != nil {
			return wrap(err, "store.CreateMeeting.users")
		}
		if known != len(ids) {
			return errors.Wrap(ErrNotFound, "store.CreateMeeting: participant user")
		}

		t, err := resolveMeetingType(ctx, tx, typeTitle)
		if err != nil {
			return err
		}
		m.Type = t
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if m.Status == "" {
			m.Status = model.MeetingNew
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO meetings (id, title, owner_id, appointed_by, assigned_to, type_id, status, start_time, location, location_url)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			 RETURNING created_at, updated_at`,
			m.ID, m.Title, m.OwnerID, m.AppointedBy, m.AssignedTo, t.ID, string(m.Status),
			m.StartTime, m.Location, m.LocationURL,
		).Scan(&m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return wrap(err, "store.CreateMeeting.meeting")
		}

		rows := append([]model.Participant{{UserID: m.OwnerID, Status: model.ParticipantAccepted}}, invitees...)
		m.Participants = m.Participants[:0]
		for _, p := range rows {
			p.ID = uuid.New()
			p.MeetingID = m.ID
			if err := insertParticipant(ctx, tx, &p); err != nil {
				return err
			}
			m.Participants = append(m.Participants, p)
		}
		return nil
	})
}

func (s *Store) GetMeeting(ctx context.Context, id uuid.UUID) (*model.Meeting, error) {
	m, err := scanMeeting(s.pool.QueryRow(ctx, `SELECT `+meetingCols+meetingFrom+` WHERE m.id = $1`, id))
	if err != nil {
		return nil, wrap(err, "store.GetMeeting")
	}
	m.Participants, err = listParticipants(ctx, s.pool, m.ID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMeeting applies the non-nil fields of p and returns the fresh row.
func (s *Store) UpdateMeeting(ctx context.Context, id uuid.UUID, p model.MeetingPatch) (*model.Meeting, error) {
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var (
			sets []string
			args []any
		)
		add := func(col string, v any) {
			args = append(args, v)
			sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
		}
		if p.Title != nil {
			add("title", *p.Title)
		}
		if p.AppointedBy != nil {
			add("appointed_by", *p.AppointedBy)
		}
		if p.AssignedTo != nil {
			add("assigned_to", *p.AssignedTo)
		}
		if p.StartTime != nil {
			add("start_time", *p.StartTime)
		}
		if p.Location != nil {
			add("location", *p.Location)
		}
		if p.LocationURL != nil {
			add("location_url", *p.LocationURL)
		}
		if p.TypeTitle != nil {
			t, err := resolveMeetingType(ctx, tx, *p.TypeTitle)
			if err != nil {
				return err
			}
			add("type_id", t.ID)
		}
		if len(sets) == 0 {
			return nil
		}

		args = append(args, id)
		tag, err := tx.Exec(ctx,
			`UPDATE meetings SET `+strings.Join(sets, ", ")+`, updated_at = NOW() WHERE id = $`+fmt.Sprint(len(args)),
			args...)
		if err != nil {
			return wrap(err, "store.UpdateMeeting")
		}
		if tag.RowsAffected() == 0 {
			return wrap(pgx.ErrNoRows, "store.UpdateMeeting")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetMeeting(ctx, id)
}

func (s *Store) SetMeetingStatus(ctx context.Context, id uuid.UUID, status model.MeetingStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE meetings SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), id)
	if err != nil {
		return wrap(err, "store.SetMeetingStatus")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "store.SetMeetingStatus")
	}
	return nil
}

// DeleteMeeting removes the participants and then the meeting. It reports
// false when there was nothing to delete.
func (s *Store) DeleteMeeting(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM participants WHERE meeting_id = $1`, id); err != nil {
			return wrap(err, "store.DeleteMeeting.participants")
		}
		tag, err := tx.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
		if err != nil {
			return wrap(err, "store.DeleteMeeting")
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	return deleted, err
}

// ListUserMeetings returns meetings owned by userID and, optionally, those it
// has already answered as a participant. Newest start first.
func (s *Store) ListUserMeetings(ctx context.Context, userID uuid.UUID, f MeetingFilter) ([]model.Meeting, int, error) {
	where := `m.owner_id = $1`
	if f.IncludeAsParticipant {
		where = `(m.owner_id = $1 OR EXISTS (
			SELECT 1 FROM participants p
			WHERE p.meeting_id = m.id AND p.user_id = $1 AND p.status <> 'new'))`
	}
	args := []any{userID}
	if f.Before != nil {
		args = append(args, *f.Before)
		where += fmt.Sprintf(` AND m.start_time < $%d`, len(args))
	}

	var total int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM meetings m WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, wrap(err, "store.ListUserMeetings.count")
	}

	n := len(args)
	args = append(args, f.Skip, f.Limit)
	out, err := s.queryMeetings(ctx,
		`SELECT `+meetingCols+meetingFrom+` WHERE `+where+
			fmt.Sprintf(` ORDER BY m.start_time DESC, m.id OFFSET $%d LIMIT $%d`, n+1, n+2),
		args...)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "store.ListUserMeetings")
	}
	return out, total, nil
}

// ListMeetingRequests returns meetings where userID still has to answer, most
// recent invitation first.
func (s *Store) ListMeetingRequests(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.Meeting, int, error) {
	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM participants WHERE user_id = $1 AND status = 'new'`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, wrap(err, "store.ListMeetingRequests.count")
	}

	out, err := s.queryMeetings(ctx,
		`SELECT `+meetingCols+meetingFrom+`
		 JOIN participants p ON p.meeting_id = m.id
		 WHERE p.user_id = $1 AND p.status = 'new'
		 ORDER BY p.created_at DESC, m.id OFFSET $2 LIMIT $3`,
		userID, skip, limit)
	if err != nil {
		return nil, 0, errors.WithMessage(err, "store.ListMeetingRequests")
	}
	return out, total, nil
}

func (s *Store) queryMeetings(ctx context.Context, sql string, args ...any) ([]model.Meeting, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(err, "query")
	}
	var (
		out []model.Meeting
		ids []uuid.UUID
	)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			rows.Close()
			return nil, wrap(err, "scan")
		}
		out = append(out, *m)
		ids = append(ids, m.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "rows")
	}
	if len(out) == 0 {
		return out, nil
	}

	byMeeting, err := participantsFor(ctx, s.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Participants = byMeeting[out[i].ID]
	}
	return out, nil
}
