package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/discount/domain"
)

type PgDiscountRepository struct {
	db *sqlx.DB
}

func NewDiscountRepository(db *sqlx.DB) *PgDiscountRepository {
	return &PgDiscountRepository{db: db}
}

func (r *PgDiscountRepository) Create(ctx context.Context, discount *domain.Discount) error {
	if discount.ID == uuid.Nil {
		discount.ID = uuid.New()
	}
	discount.CreatedAt = time.Now()
	discount.UpdatedAt = discount.CreatedAt

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO discounts (id, name, description, percent, start_date, end_date, is_active, created_at, updated_at)
        VALUES (:id, :name, :description, :percent, :start_date, :end_date, :is_active, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, discount); err != nil {
		return err
	}

	if err := replaceAlbums(ctx, tx, discount.ID, discount.AlbumIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceAlbums(ctx context.Context, tx *sqlx.Tx, discountID uuid.UUID, albumIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM album_discounts WHERE discount_id = $1`, discountID); err != nil {
		return err
	}
	for _, albumID := range albumIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO album_discounts (discount_id, album_id) VALUES ($1, $2)`,
			discountID, albumID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PgDiscountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Discount, error) {
	discount := &domain.Discount{}
	err := r.db.GetContext(ctx, discount, `SELECT * FROM discounts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrDiscountNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadAlbumIDs(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (r *PgDiscountRepository) loadAlbumIDs(ctx context.Context, discount *domain.Discount) error {
	discount.AlbumIDs = []uuid.UUID{}
	return r.db.SelectContext(ctx, &discount.AlbumIDs,
		`SELECT album_id FROM album_discounts WHERE discount_id = $1`, discount.ID)
}

func (r *PgDiscountRepository) List(ctx context.Context, limit, offset int) ([]domain.Discount, int, error) {
	var results []struct {
		domain.Discount
		TotalCount int `db:"total_count"`
	}

	query := `
        SELECT *, COUNT(*) OVER() AS total_count
        FROM discounts
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &results, query, limit, offset); err != nil {
		return nil, 0, err
	}

	discounts := make([]domain.Discount, len(results))
	total := 0
	for i, row := range results {
		discounts[i] = row.Discount
		total = row.TotalCount
		if err := r.loadAlbumIDs(ctx, &discounts[i]); err != nil {
			return nil, 0, err
		}
	}
	return discounts, total, nil
}

func (r *PgDiscountRepository) Update(ctx context.Context, discount *domain.Discount) error {
	discount.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE discounts
        SET name = :name, description = :description, percent = :percent,
            start_date = :start_date, end_date = :end_date, is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id`
	res, err := tx.NamedExecContext(ctx, query, discount)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDiscountNotFound
	}

	if err := replaceAlbums(ctx, tx, discount.ID, discount.AlbumIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PgDiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDiscountNotFound
	}
	return nil
}

func (r *PgDiscountRepository) SetAlbums(ctx context.Context, discountID uuid.UUID, albumIDs []uuid.UUID) error {
	if _, err := r.GetByID(ctx, discountID); err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceAlbums(ctx, tx, discountID, albumIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PgDiscountRepository) ForAlbum(ctx context.Context, albumID uuid.UUID) ([]domain.Discount, error) {
	discounts := []domain.Discount{}
	query := `
        SELECT d.*
        FROM discounts d
        JOIN album_discounts ad ON ad.discount_id = d.id
        WHERE ad.album_id = $1
        ORDER BY d.percent DESC`
	if err := r.db.SelectContext(ctx, &discounts, query, albumID); err != nil {
		return nil, err
	}
	return discounts, nil
}
