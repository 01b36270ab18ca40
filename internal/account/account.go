package account

import (
	"context"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"social-scheduler-api/internal/apperr"
	"social-scheduler-api/internal/auth"
	"social-scheduler-api/internal/model"
	"social-scheduler-api/internal/paging"
	"social-scheduler-api/internal/store"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . Repository,TokenRepository

type Repository interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByAccount(ctx context.Context, account string) (*model.User, error)
	IdentityTaken(ctx context.Context, email, account string, exclude uuid.UUID) (bool, error)
	SearchUsers(ctx context.Context, query string, skip, limit int) ([]model.User, int, error)
	UpdateUser(ctx context.Context, id uuid.UUID, p model.UserPatch) (*model.User, error)
	SetDeletedAt(ctx context.Context, id uuid.UUID, day *time.Time) error
}

var accountRe = regexp.MustCompile(`^[a-z0-9_.]{6,32}$`)

const (
	maxName        = 40
	minPassword    = 8
	minSearchQuery = 2
)

type Service struct {
	repo      Repository
	log       *slog.Logger
	graceDays int
	now       func() time.Time
}

func NewService(repo Repository, log *slog.Logger, graceDays int) *Service {
	return &Service{repo: repo, log: log, graceDays: graceDays, now: time.Now}
}

// WithClock replaces the service clock; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type RegisterInput struct {
	Email    string
	Account  string
	Name     string
	Password string
}

func normEmail(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return "", apperr.InvalidArg("invalid email address")
	}
	return v, nil
}

func normAccount(v string) (string, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if !accountRe.MatchString(v) {
		return "", apperr.InvalidArg("account must be 6-32 characters of a-z, 0-9, '_' or '.'")
	}
	return v, nil
}

func normName(v string) (string, error) {
	v = strings.TrimSpace(v)
	if n := utf8.RuneCountInString(v); n < 1 || n > maxName {
		return "", apperr.InvalidArg("name must be 1-40 characters")
	}
	return v, nil
}

func checkPassword(pw string) error {
	if len(pw) < minPassword {
		return apperr.InvalidArg("password must be at least 8 characters")
	}
	return nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	return s.create(ctx, in, false)
}

func (s *Service) create(ctx context.Context, in RegisterInput, superuser bool) (*model.User, error) {
	email, err := normEmail(in.Email)
	if err != nil {
		return nil, err
	}
	account, err := normAccount(in.Account)
	if err != nil {
		return nil, err
	}
	name, err := normName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	taken, err := s.repo.IdentityTaken(ctx, email, account, uuid.Nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.AlreadyExists("registration failed")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Account:      account,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
		IsVerified:   true,
		IsSuperuser:  superuser,
	}
	if superuser {
		u.Role = model.RoleAdmin
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		// lost a race with another registration
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.AlreadyExists("registration failed")
		}
		return nil, apperr.Internal(err)
	}
	return u, nil
}

// EnsureSuperuser creates the configured superuser unless its email is
// already registered.
func (s *Service) EnsureSuperuser(ctx context.Context, in RegisterInput) error {
	if in.Email == "" || in.Password == "" {
		return nil
	}
	if in.Name == "" {
		in.Name = "Administrator"
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	_, err := s.repo.UserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return apperr.Internal(err)
	}
	u, err := s.create(ctx, in, true)
	if err != nil {
		return err
	}
	s.log.Info("superuser created", "user", u.ID, "account", u.Account)
	return nil
}

// Authenticate checks email and password. Every failure looks the same to
// the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.ErrInvalidCredentials
	}
	u, err := s.repo.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !u.IsActive || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.repo.UserByID(ctx, id)
	return u, userErr(err)
}

func (s *Service) GetByAccount(ctx context.Context, account string) (*model.User, error) {
	u, err := s.repo.UserByAccount(ctx, strings.ToLower(strings.TrimSpace(account)))
	return u, userErr(err)
}

func userErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperr.ErrUserNotFound
	default:
		return apperr.Internal(err)
	}
}

func (s *Service) Search(ctx context.Context, query string, page paging.Page) ([]model.User, int, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchQuery {
		return nil, 0, apperr.InvalidArg("search query must be at least 2 characters")
	}
	page, err := page.Resolve(paging.DefaultLimit)
	if err != nil {
		return nil, 0, err
	}
	us, total, err := s.repo.SearchUsers(ctx, query, page.Skip, page.Limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return us, total, nil
}

type ProfileInput struct {
	Name     *string
	Account  *string
	Email    *string
	Password *string
}

// UpdateProfile applies the fields present in in. Email and account stay
// unique across users.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*model.User, error) {
	var p model.UserPatch
	if in.Name != nil {
		v, err := normName(*in.Name)
		if err != nil {
			return nil, err
		}
		p.Name = &v
	}
	if in.Account != nil {
		v, err := normAccount(*in.Account)
		if err != nil {
			return nil, err
		}
		p.Account = &v
	}
	if in.Email != nil {
		v, err := normEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		p.Email = &v
	}
	if in.Password != nil {
		if err := checkPassword(*in.Password); err != nil {
			return nil, err
		}
		h, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		p.PasswordHash = &h
	}

	if p.Email != nil || p.Account != nil {
		email, account := "", ""
		if p.Email != nil {
			email = *p.Email
		}
		if p.Account != nil {
			account = *p.Account
		}
		taken, err := s.repo.IdentityTaken(ctx, email, account, id)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if taken {
			return nil, apperr.AlreadyExists("email or account already in use")
		}
	}

	u, err := s.repo.UpdateUser(ctx, id, p)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, apperr.AlreadyExists("email or account already in use")
	}
	return u, userErr(err)
}
