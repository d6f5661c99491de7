package persistence

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormProductRepository(gormDB), mock, mockDB
}

func productRows(id uuid.UUID, name string, inventory, version int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "slug", "description", "price", "featured_price",
		"inventory", "unit", "discount_pct", "shipping_pct", "version",
	}).AddRow(
		id, name, catalog.Slugify(name), "", decimal.NewFromInt(100), 100,
		inventory, "PC", 0, 0, version,
	)
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnRows(productRows(productID, "Teapot", 10, 1))

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "Teapot", product.Name)
		assert.Equal(t, 10, product.Inventory)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByIDForUpdate(t *testing.T) {
	t.Run("locks the row while loading", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnRows(productRows(productID, "Teapot", 10, 1))

		product, err := repo.FindByIDForUpdate(context.Background(), productID)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByIDForUpdate(context.Background(), productID)

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindBySlug(t *testing.T) {
	t.Run("finds product by slug", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE slug = \$1`).
			WithArgs("teapot", 1).
			WillReturnRows(productRows(productID, "Teapot", 10, 1))

		product, err := repo.FindBySlug(context.Background(), "teapot")

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "teapot", product.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	t.Run("orders by a whitelisted column", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY price ASC LIMIT \$1`).
			WillReturnRows(productRows(uuid.New(), "Teapot", 10, 1))

		page, err := repo.FindAll(context.Background(), shared.Filter{
			Page:     1,
			PageSize: 10,
			OrderBy:  "price",
			OrderDir: "asc",
		})

		assert.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to created_at for an unknown sort field", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "products" ORDER BY created_at DESC LIMIT \$1`).
			WillReturnRows(productRows(uuid.New(), "Teapot", 10, 1))

		page, err := repo.FindAll(context.Background(), shared.Filter{
			Page:     1,
			PageSize: 10,
			OrderBy:  "price; DROP TABLE products; --",
			OrderDir: "asc, (SELECT 1)",
		})

		assert.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	newStocked := func(t *testing.T) *catalog.Product {
		t.Helper()
		product, err := catalog.NewProduct("Teapot", "", decimal.NewFromInt(100), 100, catalog.UnitPiece, nil)
		require.NoError(t, err)
		require.NoError(t, product.SetInventory(5))
		return product
	}

	// Updates args follow gorm's alphabetical map ordering: 18 SET
	// columns, then the id and version conditions, then the model
	// primary key appended by gorm.
	expectVersionedUpdate := func(mock sqlmock.Sqlmock, setVersion, whereVersion int, rows int64) {
		args := make([]driver.Value, 21)
		for i := range args {
			args[i] = sqlmock.AnyArg()
		}
		args[17] = setVersion
		args[19] = whereVersion
		mock.ExpectExec(`UPDATE "products" SET .* WHERE \(id = \$\d+ AND version = \$\d+\)`).
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(0, rows))
	}

	t.Run("updates when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product := newStocked(t)
		require.NoError(t, product.Reserve(2))

		expectVersionedUpdate(mock, 2, 1, 1)

		err := repo.SaveWithLock(context.Background(), product)

		assert.NoError(t, err)
		assert.Equal(t, 2, product.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("multi-field update advances the version once", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product := newStocked(t)
		require.NoError(t, product.SetInventory(3))
		require.NoError(t, product.SetPricingRates(10, 5, false))

		expectVersionedUpdate(mock, 2, 1, 1)

		err := repo.SaveWithLock(context.Background(), product)

		assert.NoError(t, err)
		assert.Equal(t, 2, product.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product := newStocked(t)
		require.NoError(t, product.Reserve(2))

		expectVersionedUpdate(mock, 2, 1, 0)

		err := repo.SaveWithLock(context.Background(), product)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindAllNames(t *testing.T) {
	t.Run("maps ids to names", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id1 := uuid.New()
		id2 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(id1, "Teapot").
			AddRow(id2, "Tea Cup")

		mock.ExpectQuery(`SELECT "id","name" FROM "products"`).
			WillReturnRows(rows)

		names, err := repo.FindAllNames(context.Background())

		assert.NoError(t, err)
		assert.Len(t, names, 2)
		assert.Equal(t, "Teapot", names[id1])
		assert.Equal(t, "Tea Cup", names[id2])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("deletes existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), productID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), productID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements ProductRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		var _ catalog.ProductRepository = repo
	})
}
