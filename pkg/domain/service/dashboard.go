package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/pkg/domain/model"
)

const latestTransactionsLimit = 5

type DashboardService interface {
	Stats(ctx context.Context) (*model.Stats, error)
	PieCharts(ctx context.Context) (*model.PieCharts, error)
	BarCharts(ctx context.Context) (*model.BarCharts, error)
	LineCharts(ctx context.Context) (*model.LineCharts, error)
}

type DashboardOptions struct {
	Now func() time.Time
	// CacheLineCharts enables writing the line-chart report to the cache.
	CacheLineCharts bool
}

func NewDashboardService(
	products model.ProductRepository,
	users model.UserRepository,
	orders model.OrderRepository,
	cache Cache,
	opts DashboardOptions,
) DashboardService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &dashboardService{
		products: products,
		users:    users,
		orders:   orders,
		codec:    NewCacheCodec(cache),
		opts:     opts,
	}
}

type dashboardService struct {
	products model.ProductRepository
	users    model.UserRepository
	orders   model.OrderRepository
	codec    *CacheCodec
	opts     DashboardOptions
}

type counter interface {
	Count(ctx context.Context, filter model.Filter) (int64, error)
}

func countInto(g *errgroup.Group, ctx context.Context, c counter, filter model.Filter, dst *int64) {
	g.Go(func() error {
		n, err := c.Count(ctx, filter)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	})
}

func findOrdersInto(g *errgroup.Group, ctx context.Context, repo model.OrderRepository, query model.Query, dst *[]model.Order) {
	g.Go(func() error {
		orders, err := repo.Find(ctx, query)
		if err != nil {
			return err
		}
		*dst = orders
		return nil
	})
}

type period struct {
	from time.Time
	to   time.Time
}

func (p period) filter() model.Filter {
	return model.NewFilter().CreatedBetween(p.from, p.to).Build()
}

func thisMonth(now time.Time) period {
	return period{from: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), to: now}
}

// lastMonth ends at midnight of the previous month's last day, so orders
// placed during that day fall outside both periods.
func lastMonth(now time.Time) period {
	return period{
		from: time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location()),
		to:   time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location()),
	}
}

func monthsBack(now time.Time, months int) period {
	return period{from: now.AddDate(0, -months, 0), to: now}
}

func (s *dashboardService) Stats(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}
	if s.codec.Load(KeyAdminStats, stats) {
		return stats, nil
	}

	now := s.opts.Now()
	current, previous, sixMonths := thisMonth(now), lastMonth(now), monthsBack(now, 6)

	var (
		thisMonthProducts, lastMonthProducts int64
		thisMonthUsers, lastMonthUsers       int64
		productCount, userCount, maleCount   int64
		thisMonthOrders, lastMonthOrders     []model.Order
		allOrders, sixMonthOrders, latest    []model.Order
		categories                           []model.CategoryShare
	)

	g, gctx := errgroup.WithContext(ctx)
	countInto(g, gctx, s.products, current.filter(), &thisMonthProducts)
	countInto(g, gctx, s.products, previous.filter(), &lastMonthProducts)
	countInto(g, gctx, s.users, current.filter(), &thisMonthUsers)
	countInto(g, gctx, s.users, previous.filter(), &lastMonthUsers)
	findOrdersInto(g, gctx, s.orders, model.Query{Filter: current.filter()}, &thisMonthOrders)
	findOrdersInto(g, gctx, s.orders, model.Query{Filter: previous.filter()}, &lastMonthOrders)
	countInto(g, gctx, s.products, nil, &productCount)
	countInto(g, gctx, s.users, nil, &userCount)
	findOrdersInto(g, gctx, s.orders, model.Query{}, &allOrders)
	findOrdersInto(g, gctx, s.orders, model.Query{Filter: sixMonths.filter()}, &sixMonthOrders)
	countInto(g, gctx, s.users, model.NewFilter().Eq(model.FieldGender, string(model.Male)).Build(), &maleCount)
	findOrdersInto(g, gctx, s.orders, model.Query{Sort: model.NewestFirst(), Limit: latestTransactionsLimit}, &latest)
	g.Go(func() error {
		var err error
		categories, err = s.categoryShares(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	thisMonthRevenue := sumOrders(thisMonthOrders, orderTotal)
	lastMonthRevenue := sumOrders(lastMonthOrders, orderTotal)

	chart := model.OrderChart{Order: make([]int64, 6), Revenue: make([]float64, 6)}
	for _, order := range sixMonthOrders {
		if i, ok := MonthBucket(now, order.CreatedAt, 6); ok {
			chart.Order[i]++
			chart.Revenue[i] += order.Total
		}
	}

	transactions := make([]model.Transaction, 0, len(latest))
	for _, order := range latest {
		transactions = append(transactions, model.Transaction{
			ID:       order.ID,
			Total:    order.Total,
			Discount: order.Discount,
			Status:   order.Status,
			Quantity: len(order.Items),
		})
	}

	stats = &model.Stats{
		CategoryCount:      categories,
		GenderRatio:        model.GenderRatio{Male: maleCount, Female: userCount - maleCount},
		LatestTransactions: transactions,
		Revenue: model.RevenueStat{
			TotalRevenue: sumOrders(allOrders, orderTotal),
			ThisMonth:    thisMonthRevenue,
			LastMonth:    lastMonthRevenue,
			Change:       CalcPercentage(thisMonthRevenue, lastMonthRevenue),
		},
		Users: model.UserStat{
			TotalUsers: userCount,
			PeriodStat: periodStat(thisMonthUsers, lastMonthUsers),
		},
		Orders: model.OrderStat{
			TotalOrders: int64(len(allOrders)),
			PeriodStat:  periodStat(int64(len(thisMonthOrders)), int64(len(lastMonthOrders))),
		},
		Products: model.ProductStat{
			TotalProducts: productCount,
			PeriodStat:    periodStat(thisMonthProducts, lastMonthProducts),
		},
		Chart: chart,
	}

	s.codec.Store(KeyAdminStats, stats)
	return stats, nil
}

func (s *dashboardService) PieCharts(ctx context.Context) (*model.PieCharts, error) {
	charts := &model.PieCharts{}
	if s.codec.Load(KeyAdminPieCharts, charts) {
		return charts, nil
	}

	now := s.opts.Now()
	var (
		processing, shipped, delivered int64
		productCount, inStock          int64
		customers, admins              int64
		categories                     []model.CategoryShare
		orders                         []model.Order
		users                          []model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	countInto(g, gctx, s.orders, statusFilter(model.Processing), &processing)
	countInto(g, gctx, s.orders, statusFilter(model.Shipped), &shipped)
	countInto(g, gctx, s.orders, statusFilter(model.Delivered), &delivered)
	g.Go(func() error {
		var err error
		categories, err = s.categoryShares(gctx)
		return err
	})
	countInto(g, gctx, s.products, nil, &productCount)
	countInto(g, gctx, s.products, model.NewFilter().Gt(model.FieldStock, 0).Build(), &inStock)
	findOrdersInto(g, gctx, s.orders, model.Query{}, &orders)
	g.Go(func() error {
		var err error
		users, err = s.users.Find(gctx, model.Query{})
		return err
	})
	countInto(g, gctx, s.users, model.NewFilter().Eq(model.FieldRole, string(model.RoleUser)).Build(), &customers)
	countInto(g, gctx, s.users, model.NewFilter().Eq(model.FieldRole, string(model.RoleAdmin)).Build(), &admins)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	distribution := model.RevenueDistribution{
		TotalRevenue:  sumOrders(orders, orderTotal),
		TotalDiscount: sumOrders(orders, func(o model.Order) float64 { return o.Discount }),
		TotalTax:      sumOrders(orders, func(o model.Order) float64 { return o.Tax }),
		TotalShipping: sumOrders(orders, func(o model.Order) float64 { return o.ShippingCharge }),
	}
	distribution.NetMargin = distribution.TotalRevenue - distribution.TotalDiscount -
		distribution.TotalTax - distribution.TotalShipping

	var ages model.AgeGroups
	for _, user := range users {
		switch age := user.Age(now); {
		case age < 20:
			ages.Teen++
		case age < 40:
			ages.Adult++
		default:
			ages.Older++
		}
	}

	charts = &model.PieCharts{
		OrderStatus: model.OrderStatusCount{
			Processing: processing,
			Shipped:    shipped,
			Delivered:  delivered,
		},
		ProductCategories: categories,
		StockAvailable: model.StockAvailability{
			InStock:    inStock,
			OutOfStock: productCount - inStock,
		},
		RevenueDistribution: distribution,
		Users:               model.UsersByRole{Customer: customers, Admin: admins},
		AgeGroup:            ages,
	}

	s.codec.Store(KeyAdminPieCharts, charts)
	return charts, nil
}

func (s *dashboardService) BarCharts(ctx context.Context) (*model.BarCharts, error) {
	charts := &model.BarCharts{}
	if s.codec.Load(KeyAdminBarCharts, charts) {
		return charts, nil
	}

	now := s.opts.Now()
	sixMonths, twelveMonths := monthsBack(now, 6), monthsBack(now, 12)

	var products, users, orders []time.Time
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.productDates(gctx, sixMonths)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.userDates(gctx, sixMonths)
		return err
	})
	g.Go(func() error {
		found, err := s.orders.Find(gctx, model.Query{Filter: twelveMonths.filter()})
		for _, order := range found {
			orders = append(orders, order.CreatedAt)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	charts = &model.BarCharts{
		Product: countByMonth(now, products, 6),
		User:    countByMonth(now, users, 6),
		Order:   countByMonth(now, orders, 12),
	}

	s.codec.Store(KeyAdminBarCharts, charts)
	return charts, nil
}

func (s *dashboardService) LineCharts(ctx context.Context) (*model.LineCharts, error) {
	charts := &model.LineCharts{}
	if s.codec.Load(KeyAdminLineCharts, charts) {
		return charts, nil
	}

	now := s.opts.Now()
	twelveMonths := monthsBack(now, 12)

	var (
		products, users []time.Time
		orders          []model.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	findOrdersInto(g, gctx, s.orders, model.Query{Filter: twelveMonths.filter()}, &orders)
	g.Go(func() error {
		var err error
		products, err = s.productDates(gctx, twelveMonths)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.userDates(gctx, twelveMonths)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	discount := make([]float64, 12)
	revenue := make([]float64, 12)
	for _, order := range orders {
		if i, ok := MonthBucket(now, order.CreatedAt, 12); ok {
			discount[i] += order.Discount
			revenue[i] += order.Total
		}
	}

	charts = &model.LineCharts{
		Product:  countByMonth(now, products, 12),
		User:     countByMonth(now, users, 12),
		Discount: discount,
		Revenue:  revenue,
	}

	if s.opts.CacheLineCharts {
		s.codec.Store(KeyAdminLineCharts, charts)
	}
	return charts, nil
}

// categoryShares returns each distinct category with its rounded share of all
// products, in distinct-category order.
func (s *dashboardService) categoryShares(ctx context.Context) ([]model.CategoryShare, error) {
	var (
		categories []string
		total      int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.products.Distinct(gctx, model.FieldCategory, nil)
		return err
	})
	countInto(g, gctx, s.products, nil, &total)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make([]int64, len(categories))
	g, gctx = errgroup.WithContext(ctx)
	for i, category := range categories {
		countInto(g, gctx, s.products, model.NewFilter().Eq(model.FieldCategory, category).Build(), &counts[i])
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	shares := make([]model.CategoryShare, 0, len(categories))
	for i, category := range categories {
		var pct int64
		if total > 0 {
			pct = round(float64(counts[i]) / float64(total) * 100)
		}
		shares = append(shares, model.CategoryShare{category: pct})
	}
	return shares, nil
}

func (s *dashboardService) productDates(ctx context.Context, p period) ([]time.Time, error) {
	products, err := s.products.Find(ctx, model.Query{Filter: p.filter()})
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(products))
	for _, product := range products {
		dates = append(dates, product.CreatedAt)
	}
	return dates, nil
}

func (s *dashboardService) userDates(ctx context.Context, p period) ([]time.Time, error) {
	users, err := s.users.Find(ctx, model.Query{Filter: p.filter()})
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(users))
	for _, user := range users {
		dates = append(dates, user.CreatedAt)
	}
	return dates, nil
}

func statusFilter(status model.OrderStatus) model.Filter {
	return model.NewFilter().Eq(model.FieldStatus, string(status)).Build()
}

func periodStat(thisMonth, lastMonth int64) model.PeriodStat {
	return model.PeriodStat{
		ThisMonth: thisMonth,
		LastMonth: lastMonth,
		Change:    CalcPercentage(float64(thisMonth), float64(lastMonth)),
	}
}

func orderTotal(o model.Order) float64 { return o.Total }

func sumOrders(orders []model.Order, value func(model.Order) float64) float64 {
	var sum float64
	for _, order := range orders {
		sum += value(order)
	}
	return sum
}
