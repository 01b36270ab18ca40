package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"social-scheduler-api/internal/model"
)

// CreateFollow inserts the edge follower -> following. An existing edge fails
// with ErrDuplicate, an unknown user with ErrNotFound.
func (s *Store) CreateFollow(ctx context.Context, followerID, followingID uuid.UUID) (*model.Follow, error) {
	f := &model.Follow{ID: uuid.New(), FollowerID: followerID, FollowingID: followingID}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO follows (id, follower_id, following_id) VALUES ($1,$2,$3)
		 RETURNING created_at, updated_at`,
		f.ID, followerID, followingID,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, wrap(err, "store.CreateFollow")
	}
	return f, nil
}

func (s *Store) DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return false, wrap(err, "store.DeleteFollow")
	}
	return tag.RowsAffected() > 0, nil
}

// FollowEdges reports which of the two directed edges between a and b exist.
func (s *Store) FollowEdges(ctx context.Context, a, b uuid.UUID) (aToB, bToA bool, err error) {
	err = s.pool.QueryRow(ctx,
		`SELECT
			EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2),
			EXISTS(SELECT 1 FROM follows WHERE follower_id = $2 AND following_id = $1)`,
		a, b,
	).Scan(&aToB, &bToA)
	return aToB, bToA, wrap(err, "store.FollowEdges")
}

func (s *Store) FollowCounts(ctx context.Context, userID uuid.UUID) (model.FollowCounts, error) {
	var c model.FollowCounts
	err := s.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1),
			(SELECT COUNT(*) FROM follows WHERE following_id = $1)`,
		userID,
	).Scan(&c.Following, &c.Followers)
	return c, wrap(err, "store.FollowCounts")
}

// ListFollowing returns the users userID follows, newest edge first.
func (s *Store) ListFollowing(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.Follow, int, error) {
	return s.listFollows(ctx, "follower_id", "following_id", userID, skip, limit)
}

// ListFollowers returns the users following userID, newest edge first.
func (s *Store) ListFollowers(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.Follow, int, error) {
	return s.listFollows(ctx, "following_id", "follower_id", userID, skip, limit)
}

// listFollows selects edges where self = userID and joins the user on the
// other column. Column names are never user input.
func (s *Store) listFollows(ctx context.Context, self, other string, userID uuid.UUID, skip, limit int) ([]model.Follow, int, error) {
	var total int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE `+self+` = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, wrap(err, "store.listFollows.count")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT f.id, f.follower_id, f.following_id, f.created_at, f.updated_at,
			u.id, u.email, u.account, u.name, u.role, u.created_at
		 FROM follows f JOIN users u ON u.id = f.`+other+`
		 WHERE f.`+self+` = $1
		 ORDER BY f.created_at DESC, f.id OFFSET $2 LIMIT $3`,
		userID, skip, limit)
	if err != nil {
		return nil, 0, wrap(err, "store.listFollows")
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Follow, error) {
		var (
			f    model.Follow
			u    model.User
			role string
		)
		err := row.Scan(&f.ID, &f.FollowerID, &f.FollowingID, &f.CreatedAt, &f.UpdatedAt,
			&u.ID, &u.Email, &u.Account, &u.Name, &role, &u.CreatedAt)
		u.Role = model.Role(role)
		f.User = &u
		return f, err
	})
	if err != nil {
		return nil, 0, wrap(err, "store.listFollows.scan")
	}
	return out, total, nil
}
