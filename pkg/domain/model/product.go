package model

import (
	"context"
	"time"
)

type Product struct {
	ID          string    `json:"_id" bson:"_id" validate:"required"`
	Name        string    `json:"name" bson:"name"`
	Photo       string    `json:"photo" bson:"photo"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	Stock       int       `json:"stock" bson:"stock"`
	Category    string    `json:"category" bson:"category"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Product, error)
	Find(ctx context.Context, query Query) ([]Product, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Distinct(ctx context.Context, field string, filter Filter) ([]string, error)
}
