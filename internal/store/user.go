package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"social-scheduler-api/internal/model"
)

const userCols = `u.id, u.email, u.account, u.name, u.password_hash, u.role,
	u.is_active, u.is_verified, u.is_superuser, u.deleted_at, u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.Account, &u.Name, &u.PasswordHash, &role,
		&u.IsActive, &u.IsVerified, &u.IsSuperuser, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, account, name, password_hash, role, is_active, is_verified, is_superuser)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING created_at, updated_at`,
		u.ID, u.Email, u.Account, u.Name, u.PasswordHash, string(u.Role), u.IsActive, u.IsVerified, u.IsSuperuser,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return wrap(err, "store.CreateUser")
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users u WHERE u.id = $1`, id))
	return u, wrap(err, "store.UserByID")
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users u WHERE u.email = $1`, email))
	return u, wrap(err, "store.UserByEmail")
}

func (s *Store) UserByAccount(ctx context.Context, account string) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users u WHERE u.account = $1`, account))
	return u, wrap(err, "store.UserByAccount")
}

func (s *Store) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return userExists(ctx, s.pool, id)
}

func userExists(ctx context.Context, q querier, id uuid.UUID) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, wrap(err, "store.userExists")
}

// IdentityTaken reports whether email or account belongs to a user other than exclude.
func (s *Store) IdentityTaken(ctx context.Context, email, account string, exclude uuid.UUID) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM users
			WHERE (email = $1 OR account = $2) AND id <> $3
		)`, email, account, exclude,
	).Scan(&taken)
	return taken, wrap(err, "store.IdentityTaken")
}

func (s *Store) SearchUsers(ctx context.Context, query string, skip, limit int) ([]model.User, int, error) {
	pattern := "%" + escapeLike(query) + "%"
	where := `u.name ILIKE $1 OR u.account ILIKE $1 OR u.email ILIKE $1`

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u WHERE `+where, pattern).Scan(&total); err != nil {
		return nil, 0, wrap(err, "store.SearchUsers.count")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+userCols+` FROM users u WHERE `+where+`
		 ORDER BY u.account OFFSET $2 LIMIT $3`, pattern, skip, limit)
	if err != nil {
		return nil, 0, wrap(err, "store.SearchUsers")
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, wrap(err, "store.SearchUsers.scan")
		}
		out = append(out, *u)
	}
	return out, total, wrap(rows.Err(), "store.SearchUsers.rows")
}

func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, p model.UserPatch) (*model.User, error) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Account != nil {
		add("account", *p.Account)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.PasswordHash != nil {
		add("password_hash", *p.PasswordHash)
	}
	if len(sets) > 0 {
		args = append(args, id)
		tag, err := s.pool.Exec(ctx,
			`UPDATE users SET `+strings.Join(sets, ", ")+`, updated_at = NOW() WHERE id = $`+fmt.Sprint(len(args)),
			args...)
		if err != nil {
			return nil, wrap(err, "store.UpdateUser")
		}
		if tag.RowsAffected() == 0 {
			return nil, wrap(pgx.ErrNoRows, "store.UpdateUser")
		}
	}
	return s.UserByID(ctx, id)
}

// SetDeletedAt schedules (day != nil) or cancels (nil) account deletion.
func (s *Store) SetDeletedAt(ctx context.Context, id uuid.UUID, day *time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET deleted_at = $1, is_active = TRUE, updated_at = NOW() WHERE id = $2`, day, id)
	if err != nil {
		return wrap(err, "store.SetDeletedAt")
	}
	if tag.RowsAffected() == 0 {
		return wrap(pgx.ErrNoRows, "store.SetDeletedAt")
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
