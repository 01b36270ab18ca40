package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/auth"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/store"
)

type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (uuid.UUID, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, userID uuid.UUID, newHash string, newExpiry time.Time) (uuid.UUID, error)
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

type Tokens struct {
	Access    string
	Refresh   string
	ExpiresAt time.Time
}

// Sessions issues access tokens and rotates refresh tokens.
type Sessions struct {
	repo       TokenRepository
	issuer     *auth.Issuer
	refreshTTL time.Duration
	log        *slog.Logger
	now        func() time.Time
}

func NewSessions(repo TokenRepository, issuer *auth.Issuer, refreshTTL time.Duration, log *slog.Logger) *Sessions {
	return &Sessions{repo: repo, issuer: issuer, refreshTTL: refreshTTL, log: log, now: time.Now}
}

func (s *Sessions) access(uid uuid.UUID) (string, time.Time, error) {
	tok, err := s.issuer.MakeToken(uid)
	if err != nil {
		return "", time.Time{}, apperr.Internal(err)
	}
	return tok, s.now().Add(s.issuer.TTL()), nil
}

func (s *Sessions) Issue(ctx context.Context, uid uuid.UUID) (Tokens, error) {
	access, exp, err := s.access(uid)
	if err != nil {
		return Tokens{}, err
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return Tokens{}, apperr.Internal(err)
	}
	if _, err := s.repo.CreateRefreshToken(ctx, uid, hash, s.now().Add(s.refreshTTL)); err != nil {
		return Tokens{}, apperr.Internal(err)
	}
	return Tokens{Access: access, Refresh: raw, ExpiresAt: exp}, nil
}

// Refresh trades a refresh token for a new pair. Replaying a token that was
// already rotated revokes every session of its user.
func (s *Sessions) Refresh(ctx context.Context, raw string) (Tokens, uuid.UUID, error) {
	invalid := apperr.Unauthenticated("invalid refresh token")
	if raw == "" {
		return Tokens{}, uuid.Nil, invalid
	}
	rt, err := s.repo.RefreshTokenByHash(ctx, auth.HashRefreshToken(raw))
	if errors.Is(err, store.ErrNotFound) {
		return Tokens{}, uuid.Nil, invalid
	}
	if err != nil {
		return Tokens{}, uuid.Nil, apperr.Internal(err)
	}
	if rt.Revoked {
		s.log.Warn("revoked refresh token presented, revoking all sessions", "user", rt.UserID)
		if err := s.repo.RevokeAllRefreshTokens(ctx, rt.UserID); err != nil {
			return Tokens{}, uuid.Nil, apperr.Internal(err)
		}
		return Tokens{}, uuid.Nil, invalid
	}
	if !s.now().Before(rt.ExpiresAt) {
		return Tokens{}, uuid.Nil, invalid
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return Tokens{}, uuid.Nil, apperr.Internal(err)
	}
	_, err = s.repo.RotateRefreshToken(ctx, rt.ID, rt.UserID, newHash, s.now().Add(s.refreshTTL))
	if errors.Is(err, store.ErrNotFound) {
		// rotated concurrently
		return Tokens{}, uuid.Nil, invalid
	}
	if err != nil {
		return Tokens{}, uuid.Nil, apperr.Internal(err)
	}

	access, exp, err := s.access(rt.UserID)
	if err != nil {
		return Tokens{}, uuid.Nil, err
	}
	return Tokens{Access: access, Refresh: newRaw, ExpiresAt: exp}, rt.UserID, nil
}

func (s *Sessions) Logout(ctx context.Context, uid uuid.UUID) error {
	if err := s.repo.RevokeAllRefreshTokens(ctx, uid); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
