package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

const selectCoupons = `SELECT id, code, discount, expire_at FROM coupons`

type couponRow struct {
	ID       string    `db:"id"`
	Code     string    `db:"code"`
	Discount float64   `db:"discount"`
	ExpireAt time.Time `db:"expire_at"`
}

func (r couponRow) toModel() model.Coupon {
	return model.Coupon{ID: r.ID, Code: r.Code, Discount: r.Discount, ExpireAt: r.ExpireAt}
}

func NewCouponRepository(db *sqlx.DB) model.CouponRepository {
	return &couponRepository{db: db}
}

type couponRepository struct {
	db *sqlx.DB
}

func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO coupons (id, code, discount, expire_at) VALUES (:id, :code, :discount, :expire_at)`,
		couponRow{ID: c.ID, Code: c.Code, Discount: c.Discount, ExpireAt: c.ExpireAt})
	if isDuplicate(err) {
		return model.ErrCouponCodeTaken
	}
	return errors.Wrap(err, "insert coupon")
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete coupon")
	}
	return affected(res, model.ErrCouponNotFound)
}

func (r *couponRepository) FindByID(ctx context.Context, id string) (*model.Coupon, error) {
	return r.findOne(ctx, `id = ?`, id)
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return r.findOne(ctx, `code = ?`, code)
}

func (r *couponRepository) findOne(ctx context.Context, cond string, arg interface{}) (*model.Coupon, error) {
	var row couponRow
	err := r.db.GetContext(ctx, &row, selectCoupons+` WHERE `+cond, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCouponNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select coupon")
	}
	coupon := row.toModel()
	return &coupon, nil
}

func (r *couponRepository) FindAll(ctx context.Context) ([]model.Coupon, error) {
	var rows []couponRow
	if err := r.db.SelectContext(ctx, &rows, selectCoupons); err != nil {
		return nil, errors.Wrap(err, "select coupons")
	}
	coupons := make([]model.Coupon, 0, len(rows))
	for _, row := range rows {
		coupons = append(coupons, row.toModel())
	}
	return coupons, nil
}
