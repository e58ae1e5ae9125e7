package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigerim-zh/kshop/internal/modules/catalog/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPgArtistRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArtistRepository(db)

	mock.ExpectExec(`INSERT INTO artists`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	artist := &domain.Artist{Name: "NewJeans", Category: domain.CategoryFemaleGroup}
	err := repo.Create(context.Background(), artist)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, artist.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgArtistRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArtistRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM artists WHERE id`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrArtistNotFound)
}

func TestPgArtistRepository_List_FiltersByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArtistRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "category", "description", "image_url", "created_at", "updated_at", "total_count"}).
		AddRow(id, "IU", "solo", "", "", time.Now(), time.Now(), 1)

	mock.ExpectQuery(`SELECT \*, COUNT\(\*\) OVER\(\) AS total_count FROM artists`).
		WithArgs("solo", 20, 0).
		WillReturnRows(rows)

	artists, total, err := repo.List(context.Background(), "solo", 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, artists, 1)
	assert.Equal(t, "IU", artists[0].Name)
}
