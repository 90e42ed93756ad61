package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"storefront/pkg/common/domain"
	"storefront/pkg/domain/model"
	"storefront/pkg/domain/service"
	"storefront/pkg/infrastructure/amqp"
	"storefront/pkg/infrastructure/cache"
	"storefront/pkg/infrastructure/event"
	"storefront/pkg/infrastructure/memory"
	"storefront/pkg/infrastructure/mongo"
	"storefront/pkg/infrastructure/mysql"
	"storefront/pkg/infrastructure/stripe"
	"storefront/pkg/infrastructure/upload"
	"storefront/pkg/transport"
)

const shutdownTimeout = 10 * time.Second

type repositories struct {
	products model.ProductRepository
	orders   model.OrderRepository
	users    model.UserRepository
	coupons  model.CouponRepository
	closer   func()
}

func runService(c *cli.Context) error {
	cfg, err := parseEnv()
	if err != nil {
		return err
	}
	closeLog := setupLogger(cfg.LogFile)
	defer closeLog()

	ctx := c.Context
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.closer()

	dispatcher, closeDispatcher, err := newDispatcher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDispatcher()

	lru, err := cache.NewLRU(cfg.CacheSize)
	if err != nil {
		return err
	}
	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	router := transport.Router(transport.Services{
		Products: service.NewProductService(repos.products, lru, uploads, dispatcher, cfg.ProductsLimit),
		Orders: service.NewOrderService(
			repos.orders,
			service.NewStockReducer(repos.products, dispatcher),
			lru,
			dispatcher,
		),
		Payments: service.NewPaymentService(stripe.NewGateway(cfg.StripeSecretKey, cfg.StripeAPIURL)),
		Coupons:  service.NewCouponService(repos.coupons, dispatcher, time.Now),
		Users:    service.NewUserService(repos.users, lru, dispatcher),
		Dashboard: service.NewDashboardService(repos.products, repos.users, repos.orders, lru, service.DashboardOptions{
			CacheLineCharts: cfg.DashboardCacheLineCharts,
		}),
		Uploads: uploads,
	})

	log.WithFields(log.Fields{
		"url":     cfg.ServeRESTAddress,
		"storage": cfg.StorageDriver,
	}).Info("Starting server")

	killSignalChan := getKillSignalChan()
	srv := startServer(cfg.ServeRESTAddress, router)

	waitForKillSignalChan(killSignalChan)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config) (*repositories, error) {
	switch cfg.StorageDriver {
	case storageMySQL:
		db, err := mysql.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		if err := mysql.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &repositories{
			products: mysql.NewProductRepository(db),
			orders:   mysql.NewOrderRepository(db),
			users:    mysql.NewUserRepository(db),
			coupons:  mysql.NewCouponRepository(db),
			closer:   func() { closeQuietly(db, "mysql") },
		}, nil
	case storageMongo:
		client, err := mongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &repositories{
			products: mongo.NewProductRepository(db),
			orders:   mongo.NewOrderRepository(db),
			users:    mongo.NewUserRepository(db),
			coupons:  mongo.NewCouponRepository(db),
			closer: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.WithError(err).Error("disconnect mongo")
				}
			},
		}, nil
	}
	return &repositories{
		products: memory.NewProductRepository(),
		orders:   memory.NewOrderRepository(),
		users:    memory.NewUserRepository(),
		coupons:  memory.NewCouponRepository(),
		closer:   func() {},
	}, nil
}

func newDispatcher(ctx context.Context, cfg *config) (domain.EventDispatcher, func(), error) {
	logDispatcher := event.NewLogDispatcher()
	if cfg.AMQPURL == "" {
		return logDispatcher, func() {}, nil
	}
	publisher, err := amqp.NewDispatcher(ctx, cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create event publisher")
	}
	return event.Multi{logDispatcher, publisher}, func() { closeQuietly(publisher, "rabbitmq") }, nil
}

func closeQuietly(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		log.WithError(err).WithField("resource", name).Error("close")
	}
}

func startServer(serverUrl string, router http.Handler) *http.Server {
	srv := &http.Server{Addr: serverUrl, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	return srv
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(killSignalChan <-chan os.Signal) {
	killSignal := <-killSignalChan
	switch killSignal {
	case os.Interrupt:
		log.Info("Got SIGINT...")
	case syscall.SIGTERM:
		log.Info("Got SIGTERM...")
	}
}
