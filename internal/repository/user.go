package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"logistics-sim/internal/apperr"
	"logistics-sim/internal/domain"
)

// UserRepo persists users.
type UserRepo struct{ db *pgxpool.Pool }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

// CountByRole returns the number of users with the given role.
func (r *UserRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role=$1`, string(role)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by role %s: %w", role, err)
	}
	return n, nil
}

// Drivers returns id and name of every driver, ordered by id.
func (r *UserRepo) Drivers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM users WHERE role=$1 ORDER BY id`, string(domain.RoleDriver))
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u := domain.User{Role: domain.RoleDriver}
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// RandomIDsByRole returns up to n uniformly random user ids with the role.
func (r *UserRepo) RandomIDsByRole(ctx context.Context, role domain.Role, n int) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM users WHERE role=$1 ORDER BY random() LIMIT $2`, string(role), n)
	if err != nil {
		return nil, fmt.Errorf("sample users by role %s: %w", role, err)
	}
	defer rows.Close()

	out := make([]int64, 0, n)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Create inserts a user and returns its id. A duplicate email maps to
// apperr.Conflict so callers can retry with a fresh candidate.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, role) VALUES($1, $2, $3, $4) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, string(u.Role)).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		return 0, fmt.Errorf("create %s user: %w", u.Role, err)
	}
	return id, nil
}
