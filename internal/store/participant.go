package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"social-scheduler-api/internal/model"
)

const participantCols = `p.id, p.meeting_id, p.user_id, p.status, p.created_at, p.updated_at,
	u.id, u.email, u.account, u.name, u.role, u.created_at`

const participantFrom = ` FROM participants p JOIN users u ON u.id = p.user_id`

func scanParticipant(row pgx.Row) (model.Participant, error) {
	var (
		p            model.Participant
		u            model.User
		status, role string
	)
	err := row.Scan(&p.ID, &p.MeetingID, &p.UserID, &status, &p.CreatedAt, &p.UpdatedAt,
		&u.ID, &u.Email, &u.Account, &u.Name, &role, &u.CreatedAt)
	if err != nil {
		return p, err
	}
	p.Status = model.ParticipantStatus(status)
	u.Role = model.Role(role)
	p.User = &u
	return p, nil
}

func insertParticipant(ctx context.Context, q querier, p *model.Participant) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := q.QueryRow(ctx,
		`INSERT INTO participants (id, meeting_id, user_id, status) VALUES ($1,$2,$3,$4)
		 RETURNING created_at, updated_at`,
		p.ID, p.MeetingID, p.UserID, string(p.Status),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return wrap(err, "store.insertParticipant")
}

func listParticipants(ctx context.Context, q querier, meetingID uuid.UUID) ([]model.Participant, error) {
	byMeeting, err := participantsFor(ctx, q, []uuid.UUID{meetingID})
	if err != nil {
		return nil, err
	}
	return byMeeting[meetingID], nil
}

// participantsFor loads the participants of several meetings in one query.
func participantsFor(ctx context.Context, q querier, meetingIDs []uuid.UUID) (map[uuid.UUID][]model.Participant, error) {
	rows, err := q.Query(ctx,
		`SELECT `+participantCols+participantFrom+`
		 WHERE p.meeting_id = ANY($1) ORDER BY p.created_at, p.id`, meetingIDs)
	if err != nil {
		return nil, wrap(err, "store.participantsFor")
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]model.Participant, len(meetingIDs))
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, wrap(err, "store.participantsFor.scan")
		}
		out[p.MeetingID] = append(out[p.MeetingID], p)
	}
	return out, wrap(rows.Err(), "store.participantsFor.rows")
}

func (s *Store) ListParticipants(ctx context.Context, meetingID uuid.UUID) ([]model.Participant, error) {
	return listParticipants(ctx, s.pool, meetingID)
}

func (s *Store) GetParticipant(ctx context.Context, id uuid.UUID) (*model.Participant, error) {
	p, err := scanParticipant(s.pool.QueryRow(ctx, `SELECT `+participantCols+participantFrom+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, wrap(err, "store.GetParticipant")
	}
	return &p, nil
}

// AddParticipant inserts p. A second row for the same (meeting, user) pair
// fails with ErrDuplicate.
func (s *Store) AddParticipant(ctx context.Context, p *model.Participant) error {
	return insertParticipant(ctx, s.pool, p)
}

func (s *Store) UpdateParticipantStatus(ctx context.Context, meetingID, userID uuid.UUID, status model.ParticipantStatus) (*model.Participant, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`UPDATE participants SET status = $1, updated_at = NOW()
		 WHERE meeting_id = $2 AND user_id = $3
		 RETURNING id`,
		string(status), meetingID, userID,
	).Scan(&id)
	if err != nil {
		return nil, wrap(err, "store.UpdateParticipantStatus")
	}
	return s.GetParticipant(ctx, id)
}

func (s *Store) DeleteParticipant(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return false, wrap(err, "store.DeleteParticipant")
	}
	return tag.RowsAffected() > 0, nil
}
