package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/pkg/domain/model"
)

var (
	productFields = newFields(model.FieldID, model.FieldName, model.FieldPrice, model.FieldCategory,
		model.FieldStock, model.FieldCreatedAt)
	orderFields  = newFields(model.FieldID, model.FieldUser, model.FieldStatus, model.FieldCreatedAt)
	userFields   = newFields(model.FieldID, model.FieldName, model.FieldGender, model.FieldRole, model.FieldCreatedAt)
	couponFields = newFields(model.FieldID, model.FieldCode)
)

func NewProductRepository(db *mongo.Database) model.ProductRepository {
	return &productRepository{collection[model.Product]{
		coll:     db.Collection(productsCollection),
		fields:   productFields,
		notFound: model.ErrProductNotFound,
	}}
}

type productRepository struct {
	c collection[model.Product]
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	return r.c.insert(ctx, p)
}

func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	return r.c.replace(ctx, p.ID, p)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r *productRepository) Find(ctx context.Context, query model.Query) ([]model.Product, error) {
	return r.c.find(ctx, query)
}

func (r *productRepository) Count(ctx context.Context, filter model.Filter) (int64, error) {
	return r.c.count(ctx, filter)
}

func (r *productRepository) Distinct(ctx context.Context, field string, filter model.Filter) ([]string, error) {
	return r.c.distinct(ctx, field, filter)
}

func NewOrderRepository(db *mongo.Database) model.OrderRepository {
	return &orderRepository{collection[model.Order]{
		coll:     db.Collection(ordersCollection),
		fields:   orderFields,
		notFound: model.ErrOrderNotFound,
	}}
}

type orderRepository struct {
	c collection[model.Order]
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	return r.c.insert(ctx, o)
}

func (r *orderRepository) Update(ctx context.Context, o *model.Order) error {
	return r.c.replace(ctx, o.ID, o)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r *orderRepository) Find(ctx context.Context, query model.Query) ([]model.Order, error) {
	return r.c.find(ctx, query)
}

func (r *orderRepository) Count(ctx context.Context, filter model.Filter) (int64, error) {
	return r.c.count(ctx, filter)
}

func NewUserRepository(db *mongo.Database) model.UserRepository {
	return &userRepository{collection[model.User]{
		coll:     db.Collection(usersCollection),
		fields:   userFields,
		notFound: model.ErrUserNotFound,
	}}
}

type userRepository struct {
	c collection[model.User]
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	err := r.c.insert(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrEmailTaken
	}
	return err
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) Find(ctx context.Context, query model.Query) ([]model.User, error) {
	return r.c.find(ctx, query)
}

func (r *userRepository) Count(ctx context.Context, filter model.Filter) (int64, error) {
	return r.c.count(ctx, filter)
}

func NewCouponRepository(db *mongo.Database) model.CouponRepository {
	return &couponRepository{collection[model.Coupon]{
		coll:     db.Collection(couponsCollection),
		fields:   couponFields,
		notFound: model.ErrCouponNotFound,
	}}
}

type couponRepository struct {
	c collection[model.Coupon]
}

func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	err := r.c.insert(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrCouponCodeTaken
	}
	return err
}

func (r *couponRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *couponRepository) FindByID(ctx context.Context, id string) (*model.Coupon, error) {
	return r.c.findOne(ctx, bson.M{"_id": id})
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return r.c.findOne(ctx, bson.M{"code": code})
}

func (r *couponRepository) FindAll(ctx context.Context) ([]model.Coupon, error) {
	return r.c.find(ctx, model.Query{})
}
