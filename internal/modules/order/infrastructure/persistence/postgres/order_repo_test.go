package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigerim-zh/kshop/internal/modules/order/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPgOrderRepository_Create_PersistsItemsAtomically(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO order_items`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO order_items`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	order := &domain.Order{
		UserID:      uuid.New(),
		Status:      domain.StatusCreated,
		BaseTotal:   50,
		TotalAmount: 35,
		Items: []domain.OrderItem{
			{VersionID: uuid.New(), AlbumTitle: "Get Up", FinalPrice: 17.5, Quantity: 2},
			{VersionID: uuid.New(), AlbumTitle: "Born Pink", FinalPrice: 25, Quantity: 1},
		},
	}
	err := repo.Create(context.Background(), order)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgOrderRepository_Create_RollsBackOnItemFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO order_items`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	order := &domain.Order{
		UserID: uuid.New(),
		Status: domain.StatusCreated,
		Items:  []domain.OrderItem{{VersionID: uuid.New()}},
	}

	assert.Error(t, repo.Create(context.Background(), order))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgOrderRepository_List_JoinsBuyerEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	orderID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "user_id", "status", "total_amount", "user_email", "total_count"}).
		AddRow(orderID, uuid.New(), "paid", 35.0, "fan@example.com", 1)

	mock.ExpectQuery(`SELECT o\.\*, u\.email AS user_email.*FROM orders o\s+JOIN users u`).
		WithArgs(20, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM order_items`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

	orders, total, err := repo.List(context.Background(), 20, 0)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "fan@example.com", orders[0].UserEmail)
}

func TestPgOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec(`UPDATE orders SET status`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.StatusShipped)

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
