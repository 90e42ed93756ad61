package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

const selectOrders = `SELECT id, address, city, state, country, phone, postal_code, user_id,
	subtotal, tax, shipping_charge, discount, total, status, created_at, updated_at FROM orders`

var orderColumns = columns{
	model.FieldID:        "id",
	model.FieldUser:      "user_id",
	model.FieldStatus:    "status",
	model.FieldCreatedAt: "created_at",
}

type orderRow struct {
	ID             string    `db:"id"`
	Address        string    `db:"address"`
	City           string    `db:"city"`
	State          string    `db:"state"`
	Country        string    `db:"country"`
	Phone          string    `db:"phone"`
	PostalCode     string    `db:"postal_code"`
	UserID         string    `db:"user_id"`
	Subtotal       float64   `db:"subtotal"`
	Tax            float64   `db:"tax"`
	ShippingCharge float64   `db:"shipping_charge"`
	Discount       float64   `db:"discount"`
	Total          float64   `db:"total"`
	Status         string    `db:"status"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type orderItemRow struct {
	OrderID   string  `db:"order_id"`
	Position  int     `db:"position"`
	Name      string  `db:"name"`
	Photo     string  `db:"photo"`
	Price     float64 `db:"price"`
	Quantity  int     `db:"quantity"`
	ProductID string  `db:"product_id"`
}

func (r orderRow) toModel(items []model.OrderItem) model.Order {
	if items == nil {
		items = []model.OrderItem{}
	}
	return model.Order{
		ID: r.ID,
		ShippingInfo: model.ShippingInfo{
			Address:    r.Address,
			City:       r.City,
			State:      r.State,
			Country:    r.Country,
			Phone:      r.Phone,
			PostalCode: r.PostalCode,
		},
		UserID:         r.UserID,
		Subtotal:       r.Subtotal,
		Tax:            r.Tax,
		ShippingCharge: r.ShippingCharge,
		Discount:       r.Discount,
		Total:          r.Total,
		Status:         model.OrderStatus(r.Status),
		Items:          items,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toOrderRow(o *model.Order) orderRow {
	return orderRow{
		ID:             o.ID,
		Address:        o.ShippingInfo.Address,
		City:           o.ShippingInfo.City,
		State:          o.ShippingInfo.State,
		Country:        o.ShippingInfo.Country,
		Phone:          o.ShippingInfo.Phone,
		PostalCode:     o.ShippingInfo.PostalCode,
		UserID:         o.UserID,
		Subtotal:       o.Subtotal,
		Tax:            o.Tax,
		ShippingCharge: o.ShippingCharge,
		Discount:       o.Discount,
		Total:          o.Total,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func NewOrderRepository(db *sqlx.DB) model.OrderRepository {
	return &orderRepository{db: db}
}

type orderRepository struct {
	db *sqlx.DB
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin order tx")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO orders (id, address, city, state, country, phone, postal_code, user_id,
			subtotal, tax, shipping_charge, discount, total, status, created_at, updated_at)
		VALUES (:id, :address, :city, :state, :country, :phone, :postal_code, :user_id,
			:subtotal, :tax, :shipping_charge, :discount, :total, :status, :created_at, :updated_at)`,
		toOrderRow(o))
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	if len(o.Items) > 0 {
		rows := make([]orderItemRow, 0, len(o.Items))
		for i, item := range o.Items {
			rows = append(rows, orderItemRow{
				OrderID:   o.ID,
				Position:  i,
				Name:      item.Name,
				Photo:     item.Photo,
				Price:     item.Price,
				Quantity:  item.Quantity,
				ProductID: item.ProductID,
			})
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO order_items (order_id, position, name, photo, price, quantity, product_id)
			VALUES (:order_id, :position, :name, :photo, :price, :quantity, :product_id)`, rows)
		if err != nil {
			return errors.Wrap(err, "insert order items")
		}
	}

	return errors.Wrap(tx.Commit(), "commit order tx")
}

func (r *orderRepository) Update(ctx context.Context, o *model.Order) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE orders
		SET address = :address, city = :city, state = :state, country = :country, phone = :phone,
		    postal_code = :postal_code, subtotal = :subtotal, tax = :tax, shipping_charge = :shipping_charge,
		    discount = :discount, total = :total, status = :status, updated_at = :updated_at
		WHERE id = :id`,
		toOrderRow(o))
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	return affected(res, model.ErrOrderNotFound)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete order")
	}
	return affected(res, model.ErrOrderNotFound)
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var row orderRow
	err := r.db.GetContext(ctx, &row, selectOrders+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select order")
	}
	orders, err := r.withItems(ctx, []orderRow{row})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) Find(ctx context.Context, query model.Query) ([]model.Order, error) {
	stmt, args, err := orderColumns.query(selectOrders, query)
	if err != nil {
		return nil, err
	}
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	return r.withItems(ctx, rows)
}

func (r *orderRepository) Count(ctx context.Context, filter model.Filter) (int64, error) {
	return count(ctx, r.db, "orders", orderColumns, filter)
}

func (r *orderRepository) withItems(ctx context.Context, rows []orderRow) ([]model.Order, error) {
	orders := make([]model.Order, 0, len(rows))
	if len(rows) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	stmt, args, err := sqlx.In(`SELECT order_id, position, name, photo, price, quantity, product_id
		FROM order_items WHERE order_id IN (?) ORDER BY order_id, position`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "expand order items query")
	}
	var itemRows []orderItemRow
	if err := r.db.SelectContext(ctx, &itemRows, r.db.Rebind(stmt), args...); err != nil {
		return nil, errors.Wrap(err, "select order items")
	}

	items := make(map[string][]model.OrderItem, len(rows))
	for _, item := range itemRows {
		items[item.OrderID] = append(items[item.OrderID], model.OrderItem{
			Name:      item.Name,
			Photo:     item.Photo,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}
	for _, row := range rows {
		orders = append(orders, row.toModel(items[row.ID]))
	}
	return orders, nil
}
