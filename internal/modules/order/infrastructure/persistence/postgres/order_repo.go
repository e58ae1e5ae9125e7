package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/order/domain"
)

type PgOrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *PgOrderRepository {
	return &PgOrderRepository{db: db}
}

func (r *PgOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO orders (id, user_id, status, base_total, total_amount, created_at, updated_at)
        VALUES (:id, :user_id, :status, :base_total, :total_amount, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, order); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID

		itemQuery := `
            INSERT INTO order_items (id, order_id, version_id, album_title, artist_name, version_name,
                                     unit_price, discount_percent, final_price, quantity)
            VALUES (:id, :order_id, :version_id, :album_title, :artist_name, :version_name,
                    :unit_price, :discount_percent, :final_price, :quantity)`
		if _, err := tx.NamedExecContext(ctx, itemQuery, item); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PgOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.GetContext(ctx, order, `SELECT * FROM orders WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PgOrderRepository) GetByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.GetContext(ctx, order, `SELECT * FROM orders WHERE razorpay_order_id = $1`, razorpayOrderID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PgOrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	order.Items = []domain.OrderItem{}
	return r.db.SelectContext(ctx, &order.Items,
		`SELECT * FROM order_items WHERE order_id = $1`, order.ID)
}

func (r *PgOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, int, error) {
	query := `
        SELECT *, COUNT(*) OVER() AS total_count
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`
	return r.selectOrders(ctx, query, userID, limit, offset)
}

// List is the admin view: every order, buyer email joined in.
func (r *PgOrderRepository) List(ctx context.Context, limit, offset int) ([]domain.Order, int, error) {
	query := `
        SELECT o.*, u.email AS user_email, COUNT(*) OVER() AS total_count
        FROM orders o
        JOIN users u ON u.id = o.user_id
        ORDER BY o.created_at DESC
        LIMIT $1 OFFSET $2`
	return r.selectOrders(ctx, query, limit, offset)
}

func (r *PgOrderRepository) selectOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, int, error) {
	var results []struct {
		domain.Order
		TotalCount int `db:"total_count"`
	}
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, 0, err
	}

	orders := make([]domain.Order, len(results))
	total := 0
	for i, row := range results {
		orders[i] = row.Order
		total = row.TotalCount
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *PgOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *PgOrderRepository) SetRazorpayOrderID(ctx context.Context, id uuid.UUID, razorpayOrderID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET razorpay_order_id = $1, updated_at = $2 WHERE id = $3`,
		razorpayOrderID, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
