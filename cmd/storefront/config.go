package main

import (
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	storageMemory = "memory"
	storageMySQL  = "mysql"
	storageMongo  = "mongo"
)

type config struct {
	ServeRESTAddress         string `envconfig:"serve_rest_address" default:":3000"`
	Port                     string `envconfig:"port"`
	StorageDriver            string `envconfig:"storage_driver" default:"memory"`
	MySQLDSN                 string `envconfig:"mysql_dsn"`
	MongoURI                 string `envconfig:"mongo_uri"`
	MongoDatabase            string `envconfig:"mongo_database" default:"Ecommerce_TS"`
	StripeSecretKey          string `envconfig:"stripe_secret_key"`
	StripeAPIURL             string `envconfig:"stripe_api_url"`
	ProductsLimit            int    `envconfig:"products_limit" default:"8"`
	CacheSize                int    `envconfig:"cache_size" default:"1024"`
	UploadDir                string `envconfig:"upload_dir" default:"uploads"`
	AMQPURL                  string `envconfig:"amqp_url"`
	AMQPExchange             string `envconfig:"amqp_exchange" default:"storefront.events"`
	DashboardCacheLineCharts bool   `envconfig:"dashboard_cache_line_charts" default:"false"`
	LogFile                  string `envconfig:"log_file"`
}

func parseEnv() (*config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("failed to load .env")
	}

	c := new(config)
	if err := envconfig.Process("", c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}
	if c.Port != "" {
		host, _, err := net.SplitHostPort(c.ServeRESTAddress)
		if err != nil {
			host = ""
		}
		c.ServeRESTAddress = net.JoinHostPort(host, c.Port)
	}
	switch c.StorageDriver {
	case storageMemory, storageMySQL, storageMongo:
	default:
		return nil, errors.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	return c, nil
}
