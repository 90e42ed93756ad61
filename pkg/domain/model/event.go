package model

type ProductCreated struct {
	ProductID string
	Name      string
	Category  string
}

func (e ProductCreated) Type() string { return "ProductCreated" }

type ProductUpdated struct {
	ProductID string
}

func (e ProductUpdated) Type() string { return "ProductUpdated" }

type ProductDeleted struct {
	ProductID string
}

func (e ProductDeleted) Type() string { return "ProductDeleted" }

type ProductStockChanged struct {
	ProductID    string
	ChangeAmount int
	NewQuantity  int
}

func (e ProductStockChanged) Type() string { return "ProductStockChanged" }

type OrderPlaced struct {
	OrderID string
	UserID  string
	Total   float64
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type OrderProcessed struct {
	OrderID   string
	OldStatus OrderStatus
	NewStatus OrderStatus
}

func (e OrderProcessed) Type() string { return "OrderProcessed" }

type OrderDeleted struct {
	OrderID string
	UserID  string
}

func (e OrderDeleted) Type() string { return "OrderDeleted" }

type CouponCreated struct {
	CouponID string
	Code     string
}

func (e CouponCreated) Type() string { return "CouponCreated" }

type UserRegistered struct {
	UserID string
	Email  string
	Name   string
}

func (e UserRegistered) Type() string { return "UserRegistered" }

type UserDeleted struct {
	UserID string
}

func (e UserDeleted) Type() string { return "UserDeleted" }
