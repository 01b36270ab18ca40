package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/model"
)

// resolveMeetingType returns the type with this exact title, creating it if
// needed. Two racing creators both end up with the single row the unique
// constraint lets through.
func resolveMeetingType(ctx context.Context, q querier, title string) (model.MeetingType, error) {
	t, err := meetingTypeByTitle(ctx, q, title)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return t, wrap(err, "store.resolveMeetingType")
	}

	_, err = q.Exec(ctx,
		`INSERT INTO meeting_types (id, title) VALUES ($1, $2) ON CONFLICT (title) DO NOTHING`,
		uuid.New(), title)
	if err != nil {
		return t, wrap(err, "store.resolveMeetingType.insert")
	}

	t, err = meetingTypeByTitle(ctx, q, title)
	return t, wrap(err, "store.resolveMeetingType.reload")
}

func meetingTypeByTitle(ctx context.Context, q querier, title string) (model.MeetingType, error) {
	var t model.MeetingType
	err := q.QueryRow(ctx,
		`SELECT id, title, created_at, updated_at FROM meeting_types WHERE title = $1`, title,
	).Scan(&t.ID, &t.Title, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (s *Store) ListMeetingTypes(ctx context.Context) ([]model.MeetingType, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, title, created_at, updated_at FROM meeting_types ORDER BY title`)
	if err != nil {
		return nil, wrap(err, "store.ListMeetingTypes")
	}
	defer rows.Close()

	var out []model.MeetingType
	for rows.Next() {
		var t model.MeetingType
		if err := rows.Scan(&t.ID, &t.Title, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, wrap(err, "store.ListMeetingTypes.scan")
		}
		out = append(out, t)
	}
	return out, wrap(rows.Err(), "store.ListMeetingTypes.rows")
}
