package model

// CategoryShare maps a single category to its percentage of all products.
type CategoryShare map[string]int64

type PeriodStat struct {
	ThisMonth int64 `json:"thisMonth"`
	LastMonth int64 `json:"lastMonth"`
	Change    int64 `json:"change"`
}

type RevenueStat struct {
	TotalRevenue float64 `json:"totalRevenue"`
	ThisMonth    float64 `json:"thisMonth"`
	LastMonth    float64 `json:"lastMonth"`
	Change       int64   `json:"change"`
}

type UserStat struct {
	TotalUsers int64 `json:"totalUsers"`
	PeriodStat
}

type OrderStat struct {
	TotalOrders int64 `json:"totalOrders"`
	PeriodStat
}

type ProductStat struct {
	TotalProducts int64 `json:"totalProducts"`
	PeriodStat
}

type GenderRatio struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

type Transaction struct {
	ID       string      `json:"_id" validate:"required"`
	Total    float64     `json:"total"`
	Discount float64     `json:"discount"`
	Status   OrderStatus `json:"status"`
	Quantity int         `json:"quantity"`
}

type OrderChart struct {
	Order   []int64   `json:"order" validate:"len=6"`
	Revenue []float64 `json:"revenue" validate:"len=6"`
}

type Stats struct {
	CategoryCount      []CategoryShare `json:"categoryCount"`
	GenderRatio        GenderRatio     `json:"genderRatio"`
	LatestTransactions []Transaction   `json:"latestTransactions" validate:"max=5,dive"`
	Revenue            RevenueStat     `json:"revenue"`
	Users              UserStat        `json:"users"`
	Orders             OrderStat       `json:"orders"`
	Products           ProductStat     `json:"products"`
	Chart              OrderChart      `json:"chart"`
}

type OrderStatusCount struct {
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
}

type StockAvailability struct {
	InStock    int64 `json:"inStock"`
	OutOfStock int64 `json:"outOfStock"`
}

type RevenueDistribution struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalDiscount float64 `json:"totalDiscount"`
	TotalTax      float64 `json:"totalTax"`
	TotalShipping float64 `json:"totalShipping"`
	NetMargin     float64 `json:"netmargin"`
}

type UsersByRole struct {
	Customer int64 `json:"customer"`
	Admin    int64 `json:"admin"`
}

type AgeGroups struct {
	Teen  int64 `json:"teen"`
	Adult int64 `json:"adult"`
	Older int64 `json:"older"`
}

type PieCharts struct {
	OrderStatus         OrderStatusCount    `json:"orderStatus"`
	ProductCategories   []CategoryShare     `json:"productCatergories"`
	StockAvailable      StockAvailability   `json:"stockAvailable"`
	RevenueDistribution RevenueDistribution `json:"revenueDistribution"`
	Users               UsersByRole         `json:"users"`
	AgeGroup            AgeGroups           `json:"ageGroup"`
}

type BarCharts struct {
	Product []int64 `json:"product" validate:"len=6"`
	User    []int64 `json:"user" validate:"len=6"`
	Order   []int64 `json:"order" validate:"len=12"`
}

type LineCharts struct {
	Product  []int64   `json:"product" validate:"len=12"`
	User     []int64   `json:"user" validate:"len=12"`
	Discount []float64 `json:"discount" validate:"len=12"`
	Revenue  []float64 `json:"revenue" validate:"len=12"`
}
