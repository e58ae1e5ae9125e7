package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aigerim-zh/kshop/internal/modules/auth/domain"
)

type PgUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates and returns a new PostgreSQL-based user repository.
func NewUserRepository(db *sqlx.DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// Create inserts a new user record. A unique violation on email maps to
// domain.ErrUserAlreadyExists.
func (r *PgUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, is_admin, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :first_name, :last_name, :is_admin, :created_at, :updated_at)`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // Unique violation
				return domain.ErrUserAlreadyExists
			}
		}
		return err
	}
	return nil
}

// GetByEmail retrieves a user by email address.
func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, user, query, email)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by their unique identifier.
func (r *PgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user := &domain.User{}
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, user, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns one page of users plus the total count, for the admin console.
func (r *PgUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	var results []struct {
		domain.User
		TotalCount int `db:"total_count"`
	}

	query := `SELECT *, COUNT(*) OVER() AS total_count FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &results, query, limit, offset); err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, len(results))
	total := 0
	for i, row := range results {
		users[i] = row.User
		total = row.TotalCount
	}
	return users, total, nil
}

// Update rewrites the mutable profile fields (names and the admin flag).
// Email and password are not editable through the admin console.
func (r *PgUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	query := `UPDATE users SET first_name = :first_name, last_name = :last_name, is_admin = :is_admin, updated_at = :updated_at WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes a user account.
func (r *PgUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListAdminIDs returns the ids of all admin accounts. The notification
// service uses it to fan out order events.
func (r *PgUserRepository) ListAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE is_admin = TRUE`)
	return ids, err
}
