package mysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/domain/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "mysql"), mock
}

var productRowColumns = []string{"id", "name", "photo", "price", "description", "stock", "category", "created_at", "updated_at"}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Create binds every column", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO products`).
			WithArgs("p1", "Mug", "uploads/mug.png", 12.5, "Ceramic", 4, "kitchen", createdAt, createdAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewProductRepository(db).Create(ctx, &model.Product{
			ID: "p1", Name: "Mug", Photo: "uploads/mug.png", Price: 12.5, Description: "Ceramic",
			Stock: 4, Category: "kitchen", CreatedAt: createdAt, UpdatedAt: createdAt,
		})
		assert.NoError(t, err)
	})

	t.Run("FindByID maps row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \?`).
			WithArgs("p1").
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow("p1", "Mug", "uploads/mug.png", 12.5, "Ceramic", -2, "kitchen", createdAt, createdAt))

		product, err := NewProductRepository(db).FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, model.Product{
			ID: "p1", Name: "Mug", Photo: "uploads/mug.png", Price: 12.5, Description: "Ceramic",
			Stock: -2, Category: "kitchen", CreatedAt: createdAt, UpdatedAt: createdAt,
		}, *product)
	})

	t.Run("FindByID missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM products WHERE id = \?`).WithArgs("nope").WillReturnRows(sqlmock.NewRows(productRowColumns))

		_, err := NewProductRepository(db).FindByID(ctx, "nope")
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Update without match", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE products`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewProductRepository(db).Update(ctx, &model.Product{ID: "nope"})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Find applies filter and paging", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE category = ? ORDER BY price DESC LIMIT ? OFFSET ?`)).
			WithArgs("kitchen", 8, 8).
			WillReturnRows(sqlmock.NewRows(productRowColumns).
				AddRow("p2", "Pan", "", 30.0, "", 1, "kitchen", createdAt, createdAt))

		products, err := NewProductRepository(db).Find(ctx, model.Query{
			Filter: model.NewFilter().Eq(model.FieldCategory, "kitchen").Build(),
			Sort:   &model.Sort{Field: model.FieldPrice, Order: model.Descending},
			Skip:   8,
			Limit:  8,
		})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Pan", products[0].Name)
	})

	t.Run("Distinct", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT category FROM products ORDER BY category`)).
			WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("books").AddRow("toys"))

		values, err := NewProductRepository(db).Distinct(ctx, model.FieldCategory, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"books", "toys"}, values)
	})
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Create inserts order and items in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO orders`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).
			WithArgs("o1", 0, "Mug", "", 10.0, 3, "p1", "o1", 1, "Pen", "", 2.0, 1, "p2").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := NewOrderRepository(db).Create(ctx, &model.Order{
			ID:     "o1",
			UserID: "u1",
			Status: model.Processing,
			Items: []model.OrderItem{
				{Name: "Mug", Price: 10, Quantity: 3, ProductID: "p1"},
				{Name: "Pen", Price: 2, Quantity: 1, ProductID: "p2"},
			},
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		})
		assert.NoError(t, err)
	})

	t.Run("Create rolls back on item failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO orders`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO order_items`).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := NewOrderRepository(db).Create(ctx, &model.Order{ID: "o1", Items: []model.OrderItem{{Name: "Mug", ProductID: "p1"}}})
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("FindByID loads items", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT (.+) FROM orders WHERE id = \?`).
			WithArgs("o1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "address", "city", "state", "country", "phone", "postal_code", "user_id",
				"subtotal", "tax", "shipping_charge", "discount", "total", "status", "created_at", "updated_at",
			}).AddRow("o1", "1 Main St", "Pune", "MH", "India", "999", "411001", "u1",
				30.0, 1.0, 0.0, 0.0, 31.0, "Shipped", createdAt, createdAt))
		mock.ExpectQuery(`FROM order_items WHERE order_id IN \(\?\)`).
			WithArgs("o1").
			WillReturnRows(sqlmock.NewRows([]string{"order_id", "position", "name", "photo", "price", "quantity", "product_id"}).
				AddRow("o1", 0, "Mug", "", 10.0, 3, "p1"))

		order, err := NewOrderRepository(db).FindByID(ctx, "o1")
		require.NoError(t, err)
		assert.Equal(t, model.Shipped, order.Status)
		assert.Equal(t, "u1", order.UserID)
		assert.Equal(t, model.ShippingInfo{
			Address: "1 Main St", City: "Pune", State: "MH", Country: "India", Phone: "999", PostalCode: "411001",
		}, order.ShippingInfo)
		assert.Equal(t, []model.OrderItem{{Name: "Mug", Price: 10, Quantity: 3, ProductID: "p1"}}, order.Items)
	})
}

func TestCouponRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Duplicate code", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO coupons`).WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'SAVE'"})

		err := NewCouponRepository(db).Create(ctx, &model.Coupon{ID: "c1", Code: "SAVE", Discount: 5})
		assert.ErrorIs(t, err, model.ErrCouponCodeTaken)
	})

	t.Run("FindByCode maps row", func(t *testing.T) {
		db, mock := newMockDB(t)
		expireAt := time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`FROM coupons WHERE code = \?`).
			WithArgs("SAVE").
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "discount", "expire_at"}).AddRow("c1", "SAVE", 5.0, expireAt))

		coupon, err := NewCouponRepository(db).FindByCode(ctx, "SAVE")
		require.NoError(t, err)
		assert.Equal(t, model.Coupon{ID: "c1", Code: "SAVE", Discount: 5, ExpireAt: expireAt}, *coupon)
	})

	t.Run("Delete missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM coupons WHERE id = \?`).WithArgs("c1").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, NewCouponRepository(db).Delete(ctx, "c1"), model.ErrCouponNotFound)
	})
}
