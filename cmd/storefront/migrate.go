package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"storefront/pkg/infrastructure/mysql"
)

func runMigrate(c *cli.Context) error {
	cfg, err := parseEnv()
	if err != nil {
		return err
	}
	closeLog := setupLogger(cfg.LogFile)
	defer closeLog()

	if cfg.MySQLDSN == "" {
		return errors.New("MYSQL_DSN is required for migrations")
	}

	db, err := mysql.Open(c.Context, cfg.MySQLDSN)
	if err != nil {
		return err
	}
	defer closeQuietly(db, "mysql")

	if err := mysql.Migrate(db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}
