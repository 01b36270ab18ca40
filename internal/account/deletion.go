package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"social-scheduler-api/internal/apperr"
)

type DeletionInfo struct {
	Scheduled     bool
	DeletedAt     *time.Time
	DaysRemaining int
	CanRecover    bool
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Deletion derives the deletion state of an account on the given day.
func Deletion(today time.Time, deletedAt *time.Time) DeletionInfo {
	if deletedAt == nil {
		return DeletionInfo{}
	}
	at := day(*deletedAt)
	left := int(at.Sub(day(today)).Hours() / 24)
	return DeletionInfo{
		Scheduled:     true,
		DeletedAt:     &at,
		DaysRemaining: left,
		CanRecover:    left > 0,
	}
}

// ScheduleDeletion marks the account for deletion once the grace period is
// over. Scheduling again restarts the period.
func (s *Service) ScheduleDeletion(ctx context.Context, id uuid.UUID) (DeletionInfo, error) {
	at := day(s.now()).AddDate(0, 0, s.graceDays)
	if err := s.repo.SetDeletedAt(ctx, id, &at); err != nil {
		return DeletionInfo{}, userErr(err)
	}
	s.log.Info("account deletion scheduled", "user", id, "deleted_at", at.Format(time.DateOnly))
	return Deletion(s.now(), &at), nil
}

// Recover cancels a scheduled deletion while the grace period lasts.
func (s *Service) Recover(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.UserByID(ctx, id)
	if err != nil {
		return userErr(err)
	}
	if !Deletion(s.now(), u.DeletedAt).CanRecover {
		return apperr.ErrRecoveryExpired
	}
	if err := s.repo.SetDeletedAt(ctx, id, nil); err != nil {
		return userErr(err)
	}
	s.log.Info("account recovered", "user", id)
	return nil
}

func (s *Service) DeletionInfo(ctx context.Context, id uuid.UUID) (DeletionInfo, error) {
	u, err := s.repo.UserByID(ctx, id)
	if err != nil {
		return DeletionInfo{}, userErr(err)
	}
	return Deletion(s.now(), u.DeletedAt), nil
}
