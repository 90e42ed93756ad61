package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

const selectProducts = `SELECT id, name, photo, price, description, stock, category, created_at, updated_at FROM products`

var productColumns = columns{
	model.FieldID:        "id",
	model.FieldName:      "name",
	model.FieldPrice:     "price",
	model.FieldCategory:  "category",
	model.FieldStock:     "stock",
	model.FieldCreatedAt: "created_at",
}

type productRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Photo       string    `db:"photo"`
	Price       float64   `db:"price"`
	Description string    `db:"description"`
	Stock       int       `db:"stock"`
	Category    string    `db:"category"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r productRow) toModel() model.Product {
	return model.Product{
		ID:          r.ID,
		Name:        r.Name,
		Photo:       r.Photo,
		Price:       r.Price,
		Description: r.Description,
		Stock:       r.Stock,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func NewProductRepository(db *sqlx.DB) model.ProductRepository {
	return &productRepository{db: db}
}

type productRepository struct {
	db *sqlx.DB
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO products (id, name, photo, price, description, stock, category, created_at, updated_at)
		VALUES (:id, :name, :photo, :price, :description, :stock, :category, :created_at, :updated_at)`,
		toProductRow(p))
	return errors.Wrap(err, "insert product")
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE products
		SET name = :name, photo = :photo, price = :price, description = :description,
		    stock = :stock, category = :category, updated_at = :updated_at
		WHERE id = :id`,
		toProductRow(p))
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	return affected(res, model.ErrProductNotFound)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	return affected(res, model.ErrProductNotFound)
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, selectProducts+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select product")
	}
	product := row.toModel()
	return &product, nil
}

func (r *productRepository) Find(ctx context.Context, query model.Query) ([]model.Product, error) {
	stmt, args, err := productColumns.query(selectProducts, query)
	if err != nil {
		return nil, err
	}
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "select products")
	}
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter model.Filter) (int64, error) {
	return count(ctx, r.db, "products", productColumns, filter)
}

func (r *productRepository) Distinct(ctx context.Context, field string, filter model.Filter) ([]string, error) {
	column, ok := productColumns[field]
	if !ok {
		return nil, errors.Errorf("unsupported distinct field %q", field)
	}
	where, args, err := productColumns.where(filter)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0)
	stmt := `SELECT DISTINCT ` + column + ` FROM products` + where + ` ORDER BY ` + column
	if err := r.db.SelectContext(ctx, &values, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "select distinct products")
	}
	return values, nil
}

func toProductRow(p *model.Product) productRow {
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Photo:       p.Photo,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func count(ctx context.Context, db *sqlx.DB, table string, c columns, filter model.Filter) (int64, error) {
	where, args, err := c.where(filter)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table+where, args...); err != nil {
		return 0, errors.Wrapf(err, "count %s", table)
	}
	return n, nil
}

func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
