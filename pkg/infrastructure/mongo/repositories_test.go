package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storefront/pkg/domain/model"
)

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	createdAt := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("Create writes bson fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewProductRepository(mt.DB)

		err := repo.Create(ctx, &model.Product{ID: "p1", Name: "Mug", Price: 12.5, Stock: 4, Category: "kitchen", CreatedAt: createdAt})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		docs, err := started.Command.Lookup("documents").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		doc := docs[0].Document()
		assert.Equal(mt, "p1", doc.Lookup("_id").StringValue())
		assert.Equal(mt, "kitchen", doc.Lookup("category").StringValue())
		assert.Equal(mt, 12.5, doc.Lookup("price").Double())
		assert.True(mt, createdAt.Equal(doc.Lookup("createdAt").Time()))
	})

	mt.Run("FindByID decodes document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "p1"},
			{Key: "name", Value: "Mug"},
			{Key: "price", Value: 12.5},
			{Key: "stock", Value: int32(4)},
			{Key: "category", Value: "kitchen"},
			{Key: "createdAt", Value: createdAt},
		}))
		repo := NewProductRepository(mt.DB)

		product, err := repo.FindByID(ctx, "p1")
		require.NoError(mt, err)
		assert.Equal(mt, "Mug", product.Name)
		assert.Equal(mt, 4, product.Stock)
		assert.Equal(mt, 12.5, product.Price)
		assert.True(mt, createdAt.Equal(product.CreatedAt))
	})

	mt.Run("FindByID missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch))
		_, err := NewProductRepository(mt.DB).FindByID(ctx, "nope")
		assert.ErrorIs(mt, err, model.ErrProductNotFound)
	})

	mt.Run("Update without match", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		err := NewProductRepository(mt.DB).Update(ctx, &model.Product{ID: "nope"})
		assert.ErrorIs(mt, err, model.ErrProductNotFound)
	})

	mt.Run("Distinct is sorted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "values", Value: bson.A{"toys", "books"}}))
		values, err := NewProductRepository(mt.DB).Distinct(ctx, model.FieldCategory, nil)
		require.NoError(mt, err)
		assert.Equal(mt, []string{"books", "toys"}, values)
	})

	mt.Run("Count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))
		n, err := NewProductRepository(mt.DB).Count(ctx, model.NewFilter().Gt(model.FieldStock, 0).Build())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}

func TestOrderRepositoryFind(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Decodes nested items", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.orders", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "o1"},
			{Key: "user", Value: "u1"},
			{Key: "status", Value: "Shipped"},
			{Key: "total", Value: 31.0},
			{Key: "shippingInfo", Value: bson.D{{Key: "city", Value: "Pune"}, {Key: "phoneNo", Value: "999"}}},
			{Key: "orderItems", Value: bson.A{
				bson.D{{Key: "name", Value: "Mug"}, {Key: "quantity", Value: int32(3)}, {Key: "productId", Value: "p1"}},
			}},
		}))

		orders, err := NewOrderRepository(mt.DB).Find(context.Background(), model.Query{
			Filter: model.NewFilter().Eq(model.FieldUser, "u1").Build(),
			Sort:   model.NewestFirst(),
		})
		require.NoError(mt, err)
		require.Len(mt, orders, 1)
		assert.Equal(mt, model.Shipped, orders[0].Status)
		assert.Equal(mt, "Pune", orders[0].ShippingInfo.City)
		assert.Equal(mt, "999", orders[0].ShippingInfo.Phone)
		assert.Equal(mt, []string{"p1"}, orders[0].ProductIDs())
		assert.Equal(mt, 3, orders[0].Items[0].Quantity)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "u1", started.Command.Lookup("filter", "user", "$eq").StringValue())
	})
}

func TestDuplicateKeys(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	duplicate := mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"})

	mt.Run("User email", func(mt *mtest.T) {
		mt.AddMockResponses(duplicate)
		err := NewUserRepository(mt.DB).Create(context.Background(), &model.User{ID: "u1", Email: "a@b.c"})
		assert.ErrorIs(mt, err, model.ErrEmailTaken)
	})

	mt.Run("Coupon code", func(mt *mtest.T) {
		mt.AddMockResponses(duplicate)
		err := NewCouponRepository(mt.DB).Create(context.Background(), &model.Coupon{ID: "c1", Code: "SAVE"})
		assert.ErrorIs(mt, err, model.ErrCouponCodeTaken)
	})
}
