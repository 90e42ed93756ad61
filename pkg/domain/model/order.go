package model

import (
	"context"
	"time"
)

type OrderStatus string

const (
	Processing OrderStatus = "Processing"
	Shipped    OrderStatus = "Shipped"
	Delivered  OrderStatus = "Delivered"
	// Cancelled is a valid stored state, no transition leads to it.
	Cancelled OrderStatus = "Cancelled"
)

// Next returns the status an order moves to when processed. Delivered and
// Cancelled orders stay where they are.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case Processing:
		return Shipped
	case Shipped:
		return Delivered
	default:
		return s
	}
}

type ShippingInfo struct {
	Address    string `json:"address" bson:"address"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	Country    string `json:"country" bson:"country"`
	Phone      string `json:"phoneNo" bson:"phoneNo"`
	PostalCode string `json:"postalCode" bson:"postalCode"`
}

type OrderItem struct {
	Name      string  `json:"name" bson:"name"`
	Photo     string  `json:"photo" bson:"photo"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	ProductID string  `json:"productId" bson:"productId"`
}

type Order struct {
	ID             string       `json:"_id" bson:"_id" validate:"required"`
	ShippingInfo   ShippingInfo `json:"shippingInfo" bson:"shippingInfo"`
	UserID         string       `json:"user" bson:"user"`
	Subtotal       float64      `json:"subtotal" bson:"subtotal"`
	Tax            float64      `json:"tax" bson:"tax"`
	ShippingCharge float64      `json:"shippingCharge" bson:"shippingCharge"`
	Discount       float64      `json:"discount" bson:"discount"`
	Total          float64      `json:"total" bson:"total"`
	Status         OrderStatus  `json:"status" bson:"status" validate:"oneof=Processing Shipped Delivered Cancelled"`
	Items          []OrderItem  `json:"orderItems" bson:"orderItems"`
	CreatedAt      time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt" bson:"updatedAt"`
}

func (o Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Order, error)
	Find(ctx context.Context, query Query) ([]Order, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}
