package follow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/paging"
	"social-scheduler-api/internal/store"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

type Repository interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	CreateFollow(ctx context.Context, followerID, followingID uuid.UUID) (*model.Follow, error)
	DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	FollowEdges(ctx context.Context, a, b uuid.UUID) (aToB, bToA bool, err error)
	FollowCounts(ctx context.Context, userID uuid.UUID) (model.FollowCounts, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.Follow, int, error)
	ListFollowers(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.Follow, int, error)
}

// Service maintains the directed follow graph between users.
type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) mustExist(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !ok {
		return apperr.ErrUserNotFound
	}
	return nil
}

func (s *Service) Follow(ctx context.Context, followerID, followeeID uuid.UUID) (*model.Follow, error) {
	if followerID == followeeID {
		return nil, apperr.ErrSelfFollow
	}
	if err := s.mustExist(ctx, followeeID); err != nil {
		return nil, err
	}

	f, err := s.repo.CreateFollow(ctx, followerID, followeeID)
	switch {
	case err == nil:
		s.log.Debug("follow created", "follower", followerID, "following", followeeID)
		return f, nil
	case errors.Is(err, store.ErrDuplicate):
		return nil, apperr.ErrDuplicateFollow
	case errors.Is(err, store.ErrNotFound):
		return nil, apperr.ErrUserNotFound
	default:
		return nil, apperr.Internal(err)
	}
}

// Unfollow reports false when there was no edge to remove.
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	if followerID == followeeID {
		return false, nil
	}
	ok, err := s.repo.DeleteFollow(ctx, followerID, followeeID)
	if err != nil {
		return false, apperr.Internal(err)
	}
	return ok, nil
}

// Status describes the edges between userID and otherID from userID's side.
// A user never follows itself.
func (s *Service) Status(ctx context.Context, userID, otherID uuid.UUID) (model.FollowStatus, error) {
	if userID == otherID {
		return model.FollowStatus{}, nil
	}
	out, in, err := s.repo.FollowEdges(ctx, userID, otherID)
	if err != nil {
		return model.FollowStatus{}, apperr.Internal(err)
	}
	return model.FollowStatus{IsFollowing: out, IsFollowedBy: in, IsMutual: out && in}, nil
}

func (s *Service) Counts(ctx context.Context, userID uuid.UUID) (model.FollowCounts, error) {
	if err := s.mustExist(ctx, userID); err != nil {
		return model.FollowCounts{}, err
	}
	c, err := s.repo.FollowCounts(ctx, userID)
	if err != nil {
		return c, apperr.Internal(err)
	}
	return c, nil
}

func (s *Service) Following(ctx context.Context, userID uuid.UUID, page paging.Page) ([]model.Follow, int, error) {
	return s.list(ctx, userID, page, s.repo.ListFollowing)
}

func (s *Service) Followers(ctx context.Context, userID uuid.UUID, page paging.Page) ([]model.Follow, int, error) {
	return s.list(ctx, userID, page, s.repo.ListFollowers)
}

func (s *Service) list(ctx context.Context, userID uuid.UUID, page paging.Page,
	fetch func(context.Context, uuid.UUID, int, int) ([]model.Follow, int, error),
) ([]model.Follow, int, error) {
	page, err := page.Resolve(paging.DefaultFollowLimit)
	if err != nil {
		return nil, 0, err
	}
	if err := s.mustExist(ctx, userID); err != nil {
		return nil, 0, err
	}
	fs, total, err := fetch(ctx, userID, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return fs, total, nil
}
