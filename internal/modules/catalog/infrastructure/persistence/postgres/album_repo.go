package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
)

type PgAlbumRepository struct {
	db *sqlx.DB
}

func NewAlbumRepository(db *sqlx.DB) *PgAlbumRepository {
	return &PgAlbumRepository{db: db}
}

// placeholder renders a Postgres positional argument like $3.
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// albumSortColumns whitelists the sortable album fields; anything else falls
// back to release date.
var albumSortColumns = map[string]string{
	"release_date": "a.release_date",
	"title":        "a.title",
	"base_price":   "a.base_price",
}

func (r *PgAlbumRepository) Create(ctx context.Context, album *domain.Album) error {
	if album.ID == uuid.Nil {
		album.ID = uuid.New()
	}
	if album.CreatedAt.IsZero() {
		album.CreatedAt = time.Now()
	}
	album.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO albums (id, artist_id, title, base_price, description, release_date, status, main_image_url, created_at, updated_at)
        VALUES (:id, :artist_id, :title, :base_price, :description, :release_date, :status, :main_image_url, :created_at, :updated_at)`

	if _, err = tx.NamedExecContext(ctx, query, album); err != nil {
		return err
	}

	if err := insertVersions(ctx, tx, album); err != nil {
		return err
	}

	return tx.Commit()
}

// insertVersions writes the album's versions preserving their order.
func insertVersions(ctx context.Context, tx *sqlx.Tx, album *domain.Album) error {
	for i := range album.Versions {
		v := &album.Versions[i]
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		v.AlbumID = album.ID
		v.Position = i

		query := `
            INSERT INTO album_versions (id, album_id, version_name, price_diff, packaging_details, is_limited, stock_quantity, position)
            VALUES (:id, :album_id, :version_name, :price_diff, :packaging_details, :is_limited, :stock_quantity, :position)`
		if _, err := tx.NamedExecContext(ctx, query, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgAlbumRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	album := &domain.Album{}

	query := `
        SELECT a.*, ar.name AS artist_name, ar.image_url AS artist_image
        FROM albums a
        JOIN artists ar ON a.artist_id = ar.id
        WHERE a.id = $1`
	err := r.db.GetContext(ctx, album, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrAlbumNotFound
	}
	if err != nil {
		return nil, err
	}

	versionQuery := `SELECT * FROM album_versions WHERE album_id = $1 ORDER BY position ASC`
	if err := r.db.SelectContext(ctx, &album.Versions, versionQuery, id); err != nil {
		return nil, err
	}
	return album, nil
}

func (r *PgAlbumRepository) List(ctx context.Context, filter domain.AlbumFilter) ([]domain.Album, int, error) {
	var results []struct {
		domain.Album
		TotalCount int `db:"total_count"`
	}

	query := `
        SELECT a.*, ar.name AS artist_name, ar.image_url AS artist_image,
               COUNT(*) OVER() AS total_count
        FROM albums a
        JOIN artists ar ON a.artist_id = ar.id
        WHERE 1=1`
	args := []interface{}{}

	if !filter.IncludeSoldOut {
		query += ` AND a.status != 'out_of_stock'`
	}
	if filter.ArtistID != uuid.Nil {
		args = append(args, filter.ArtistID)
		query += ` AND a.artist_id = ` + placeholder(len(args))
	}

	sortCol, ok := albumSortColumns[filter.Sort]
	if !ok {
		sortCol = "a.release_date"
	}
	// Newest releases first; other sorts ascending.
	if sortCol == "a.release_date" {
		query += ` ORDER BY ` + sortCol + ` DESC`
	} else {
		query += ` ORDER BY ` + sortCol + ` ASC`
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT ` + placeholder(len(args))
		args = append(args, filter.Offset)
		query += ` OFFSET ` + placeholder(len(args))
	}

	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, 0, err
	}

	albums := make([]domain.Album, len(results))
	total := 0
	ids := make([]uuid.UUID, len(results))
	for i, row := range results {
		albums[i] = row.Album
		total = row.TotalCount
		ids[i] = row.Album.ID
	}

	if err := r.attachVersions(ctx, albums, ids); err != nil {
		return nil, 0, err
	}
	return albums, total, nil
}

// attachVersions loads versions for a page of albums in one query.
func (r *PgAlbumRepository) attachVersions(ctx context.Context, albums []domain.Album, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`SELECT * FROM album_versions WHERE album_id IN (?) ORDER BY position ASC`, ids)
	if err != nil {
		return err
	}
	query = r.db.Rebind(query)

	var versions []domain.Version
	if err := r.db.SelectContext(ctx, &versions, query, args...); err != nil {
		return err
	}

	byAlbum := make(map[uuid.UUID][]domain.Version, len(albums))
	for _, v := range versions {
		byAlbum[v.AlbumID] = append(byAlbum[v.AlbumID], v)
	}
	for i := range albums {
		albums[i].Versions = byAlbum[albums[i].ID]
	}
	return nil
}

// Update rewrites the album row and replaces its version set wholesale. The
// admin console always submits the full version list with the album.
func (r *PgAlbumRepository) Update(ctx context.Context, album *domain.Album) error {
	album.UpdatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE albums
        SET artist_id = :artist_id, title = :title, base_price = :base_price,
            description = :description, release_date = :release_date,
            status = :status, main_image_url = :main_image_url, updated_at = :updated_at
        WHERE id = :id`

	res, err := tx.NamedExecContext(ctx, query, album)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAlbumNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM album_versions WHERE album_id = $1`, album.ID); err != nil {
		return err
	}
	if err := insertVersions(ctx, tx, album); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PgAlbumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

// FindVersion implements domain.VersionFinder for the cart module.
func (r *PgAlbumRepository) FindVersion(ctx context.Context, versionID uuid.UUID) (*domain.Version, *domain.Album, error) {
	version := &domain.Version{}
	err := r.db.GetContext(ctx, version, `SELECT * FROM album_versions WHERE id = $1`, versionID)
	if err == sql.ErrNoRows {
		return nil, nil, domain.ErrVersionNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	album, err := r.GetByID(ctx, version.AlbumID)
	if err != nil {
		return nil, nil, err
	}
	return version, album, nil
}
