package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
)

type PgArtistRepository struct {
	db *sqlx.DB
}

func NewArtistRepository(db *sqlx.DB) *PgArtistRepository {
	return &PgArtistRepository{db: db}
}

func (r *PgArtistRepository) Create(ctx context.Context, artist *domain.Artist) error {
	if artist.ID == uuid.Nil {
		artist.ID = uuid.New()
	}
	if artist.CreatedAt.IsZero() {
		artist.CreatedAt = time.Now()
	}
	artist.UpdatedAt = time.Now()

	query := `
        INSERT INTO artists (id, name, category, description, image_url, created_at, updated_at)
        VALUES (:id, :name, :category, :description, :image_url, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, artist)
	return err
}

func (r *PgArtistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Artist, error) {
	artist := &domain.Artist{}
	err := r.db.GetContext(ctx, artist, `SELECT * FROM artists WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrArtistNotFound
	}
	if err != nil {
		return nil, err
	}
	return artist, nil
}

func (r *PgArtistRepository) List(ctx context.Context, category domain.Category, limit, offset int) ([]domain.Artist, int, error) {
	var results []struct {
		domain.Artist
		TotalCount int `db:"total_count"`
	}

	query := `SELECT *, COUNT(*) OVER() AS total_count FROM artists`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name ASC`
	if limit > 0 {
		query += ` LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
		args = append(args, limit, offset)
	}

	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, 0, err
	}

	artists := make([]domain.Artist, len(results))
	total := 0
	for i, row := range results {
		artists[i] = row.Artist
		total = row.TotalCount
	}
	return artists, total, nil
}

func (r *PgArtistRepository) Update(ctx context.Context, artist *domain.Artist) error {
	artist.UpdatedAt = time.Now()
	query := `
        UPDATE artists
        SET name = :name, category = :category, description = :description,
            image_url = :image_url, updated_at = :updated_at
        WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, artist)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrArtistNotFound
	}
	return nil
}

func (r *PgArtistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrArtistNotFound
	}
	return nil
}
