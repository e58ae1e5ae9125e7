package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aigerim-zh/kshop/internal/modules/wishlist/domain"
)

type PgWishlistRepository struct {
	db *sqlx.DB
}

func NewWishlistRepository(db *sqlx.DB) *PgWishlistRepository {
	return &PgWishlistRepository{db: db}
}

func (r *PgWishlistRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.Item, error) {
	items := []domain.Item{}
	query := `
        SELECT w.id, w.album_id, w.created_at,
               a.title, a.base_price, a.status, a.main_image_url AS image_url,
               ar.name AS artist_name
        FROM wishlist w
        JOIN albums a ON w.album_id = a.id
        JOIN artists ar ON a.artist_id = ar.id
        WHERE w.user_id = $1
        ORDER BY w.created_at DESC`
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PgWishlistRepository) Add(ctx context.Context, userID, albumID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wishlist (id, user_id, album_id, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, albumID, time.Now())
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return domain.ErrAlreadyInWishlist
	}
	return err
}

func (r *PgWishlistRepository) Remove(ctx context.Context, userID, albumID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist WHERE user_id = $1 AND album_id = $2`, userID, albumID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotInWishlist
	}
	return nil
}
