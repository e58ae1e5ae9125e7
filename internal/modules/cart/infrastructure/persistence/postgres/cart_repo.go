package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/cart/domain"
)

type PgCartRepository struct {
	db *sqlx.DB
}

func NewCartRepository(db *sqlx.DB) *PgCartRepository {
	return &PgCartRepository{db: db}
}

func (r *PgCartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart := &domain.Cart{}
	err := r.db.GetContext(ctx, cart, `SELECT * FROM carts WHERE user_id = $1`, userID)
	if err == nil {
		return cart, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	cart = &domain.Cart{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	// Concurrent first requests can race on the unique user_id index;
	// ON CONFLICT keeps one cart per user either way.
	query := `
        INSERT INTO carts (id, user_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
        RETURNING id, user_id, created_at, updated_at`
	if err := r.db.GetContext(ctx, cart, query, cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *PgCartRepository) Items(ctx context.Context, cartID uuid.UUID) ([]domain.ItemRow, error) {
	rows := []domain.ItemRow{}
	query := `
        SELECT ci.id AS item_id, ci.version_id, ci.quantity,
               v.version_name, v.price_diff,
               a.id AS album_id, a.title AS album_title, a.base_price, a.main_image_url AS image_url,
               ar.name AS artist_name
        FROM cart_items ci
        JOIN album_versions v ON ci.version_id = v.id
        JOIN albums a ON v.album_id = a.id
        JOIN artists ar ON a.artist_id = ar.id
        WHERE ci.cart_id = $1
        ORDER BY ci.created_at ASC`
	if err := r.db.SelectContext(ctx, &rows, query, cartID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PgCartRepository) AddItem(ctx context.Context, cartID, versionID uuid.UUID, quantity int) error {
	query := `
        INSERT INTO cart_items (id, cart_id, version_id, quantity, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (cart_id, version_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), cartID, versionID, quantity, time.Now())
	return err
}

func (r *PgCartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	return err
}

func (r *PgCartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}
