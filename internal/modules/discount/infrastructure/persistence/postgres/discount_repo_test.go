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

	"github.com/aigerim-zh/kshop/internal/modules/discount/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPgDiscountRepository_Create_WritesAssociations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiscountRepository(db)

	albumA, albumB := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO discounts`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM album_discounts`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO album_discounts`).WithArgs(sqlmock.AnyArg(), albumA).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO album_discounts`).WithArgs(sqlmock.AnyArg(), albumB).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	discount := &domain.Discount{
		Name:      "comeback week",
		Percent:   30,
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 0, 7),
		IsActive:  true,
		AlbumIDs:  []uuid.UUID{albumA, albumB},
	}
	err := repo.Create(context.Background(), discount)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, discount.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgDiscountRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiscountRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE discounts`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &domain.Discount{ID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrDiscountNotFound)
}

func TestPgDiscountRepository_ForAlbum(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDiscountRepository(db)

	albumID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "percent", "start_date", "end_date", "is_active", "created_at", "updated_at"}).
		AddRow(uuid.New(), "comeback", 30.0, now, now.AddDate(0, 0, 7), true, now, now).
		AddRow(uuid.New(), "clearance", 10.0, now, now.AddDate(0, 0, 30), true, now, now)

	mock.ExpectQuery(`SELECT d\.\*\s+FROM discounts d\s+JOIN album_discounts`).
		WithArgs(albumID).
		WillReturnRows(rows)

	discounts, err := repo.ForAlbum(context.Background(), albumID)

	require.NoError(t, err)
	require.Len(t, discounts, 2)
	assert.Equal(t, 30.0, discounts[0].Percent)
}
