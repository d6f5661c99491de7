package persistence

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ngkart/backend/internal/domain/order"
	"github.com/ngkart/backend/internal/domain/shared"
	"github.com/ngkart/backend/internal/domain/shared/valueobject"
)

func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormOrderRepository(gormDB), mock, mockDB
}

func newMockOrderItemRepository(t *testing.T) (*GormOrderItemRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormOrderItemRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds order with items", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		customerID := uuid.New()
		productID := uuid.New()

		orderRows := sqlmock.NewRows([]string{
			"id", "customer_id", "status", "shipping_pct", "flat_shipping", "total", "version",
		}).AddRow(orderID, customerID, "PROCESSING", 0, false, "204.12", 1)

		itemRows := sqlmock.NewRows([]string{
			"order_id", "product_id", "quantity", "cost",
		}).AddRow(orderID, productID, 2, "204.12")

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)
		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		ord, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NotNil(t, ord)
		assert.Equal(t, customerID, ord.CustomerID)
		assert.Equal(t, order.StatusProcessing, ord.Status)
		assert.Len(t, ord.Items, 1)
		assert.Equal(t, 2, ord.Items[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		ord, err := repo.FindByID(context.Background(), orderID)

		assert.Error(t, err)
		assert.Nil(t, ord)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	// Updates args follow gorm's alphabetical map ordering: 8 SET
	// columns, then the id and version conditions, then the model
	// primary key appended by gorm.
	expectVersionedUpdate := func(mock sqlmock.Sqlmock, setVersion, whereVersion int, rows int64) {
		args := make([]driver.Value, 11)
		for i := range args {
			args[i] = sqlmock.AnyArg()
		}
		args[7] = setVersion
		args[9] = whereVersion
		mock.ExpectExec(`UPDATE "orders" SET .* WHERE \(id = \$\d+ AND version = \$\d+\)`).
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(0, rows))
	}

	t.Run("multi-field update advances the version once", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		ord, err := order.NewOrder(uuid.New(), 0, false, nil)
		assert.NoError(t, err)
		assert.NoError(t, ord.SetStatus(order.StatusShipped))
		ord.SetTracking("TRK-42")
		ord.SetTotal(valueobject.NewMoneyINRFromFloat(204.12))

		expectVersionedUpdate(mock, 2, 1, 1)

		err = repo.SaveWithLock(context.Background(), ord)

		assert.NoError(t, err)
		assert.Equal(t, 2, ord.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		ord, err := order.NewOrder(uuid.New(), 0, false, nil)
		assert.NoError(t, err)
		ord.SetTotal(valueobject.NewMoneyINRFromFloat(204.12))

		expectVersionedUpdate(mock, 2, 1, 0)

		err = repo.SaveWithLock(context.Background(), ord)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_Delete(t *testing.T) {
	t.Run("deletes existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectExec(`DELETE FROM "orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectExec(`DELETE FROM "orders" WHERE id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), orderID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderItemRepository_FindByKey(t *testing.T) {
	t.Run("finds item by composite key", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderItemRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		productID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"order_id", "product_id", "quantity", "cost",
		}).AddRow(orderID, productID, 3, "306.18")

		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE order_id = \$1 AND product_id = \$2`).
			WithArgs(orderID, productID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByKey(context.Background(), orderID, productID)

		assert.NoError(t, err)
		assert.NotNil(t, item)
		assert.Equal(t, 3, item.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing line", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderItemRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE order_id = \$1 AND product_id = \$2`).
			WithArgs(orderID, productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByKey(context.Background(), orderID, productID)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderItemRepository_CountByOrder(t *testing.T) {
	t.Run("counts item lines", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderItemRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "order_items" WHERE order_id = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := repo.CountByOrder(context.Background(), orderID)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderItemRepository_DeleteByOrder(t *testing.T) {
	t.Run("deletes all lines of an order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderItemRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectExec(`DELETE FROM "order_items" WHERE order_id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.DeleteByOrder(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("succeeds when the order has no lines", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderItemRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectExec(`DELETE FROM "order_items" WHERE order_id = \$1`).
			WithArgs(orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteByOrder(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements order repositories", func(t *testing.T) {
		orderRepo, _, orderDB := newMockOrderRepository(t)
		defer orderDB.Close()
		itemRepo, _, itemDB := newMockOrderItemRepository(t)
		defer itemDB.Close()

		var _ order.OrderRepository = orderRepo
		var _ order.OrderItemRepository = itemRepo
	})
}
