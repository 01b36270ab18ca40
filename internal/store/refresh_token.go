package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"social-scheduler-api/internal/model"
)

func (s *Store) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES ($1,$2,$3,$4)`,
		id, userID, tokenHash, expiresAt,
	)
	return id, wrap(err, "store.CreateRefreshToken")
}

func (s *Store) RefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	rt := &model.RefreshToken{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, token_hash, expires_at, revoked, replaced_by, created_at
		 FROM refresh_tokens WHERE token_hash = $1`, tokenHash,
	).Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.Revoked, &rt.ReplacedBy, &rt.CreatedAt)
	if err != nil {
		return nil, wrap(err, "store.RefreshTokenByHash")
	}
	return rt, nil
}

// RotateRefreshToken revokes oldID, points it at a freshly inserted token and
// returns the new id. A concurrent rotation of the same token loses with
// ErrNotFound.
func (s *Store) RotateRefreshToken(ctx context.Context, oldID, userID uuid.UUID, newHash string, newExpiry time.Time) (uuid.UUID, error) {
	newID := uuid.New()
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES ($1,$2,$3,$4)`,
			newID, userID, newHash, newExpiry,
		)
		if err != nil {
			return wrap(err, "store.RotateRefreshToken.insert")
		}

		tag, err := tx.Exec(ctx,
			`UPDATE refresh_tokens SET revoked = TRUE, replaced_by = $1 WHERE id = $2 AND revoked = FALSE`,
			newID, oldID,
		)
		if err != nil {
			return wrap(err, "store.RotateRefreshToken.revoke")
		}
		if tag.RowsAffected() == 0 {
			return wrap(pgx.ErrNoRows, "store.RotateRefreshToken.revoke")
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return newID, nil
}

// RevokeAllRefreshTokens is used on logout and when a revoked token is replayed.
func (s *Store) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked = TRUE WHERE user_id = $1 AND revoked = FALSE`,
		userID,
	)
	return wrap(err, "store.RevokeAllRefreshTokens")
}
