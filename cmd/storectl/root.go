package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/lac-hong-legacy/ven_shop/services"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

// RootCmd is the base command; every subcommand registers itself in init.
var RootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Operational tasks for the storefront API",
	Long: `storectl runs the maintenance tasks of the storefront outside the HTTP server:
schema migrations, catalog seeding and the abandoned cart reminder sweep.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.String("db-driver", "postgres", "datastore: postgres or sqlite (env DB_DRIVER)")
	flags.String("database-url", "", "postgres DSN, defaults to DATABASE_URL or DB_* (env DATABASE_URL)")
	flags.String("db-database", "ven_shop.db", "sqlite file (env DB_DATABASE)")

	for _, name := range []string{"db-driver", "database-url", "db-database"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig loads .env and lets environment variables override flag defaults,
// e.g. db-driver is read from DB_DRIVER.
func initConfig() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded, using environment")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	shared.ConfigureLogging()
}

func openDB() (*gorm.DB, error) {
	switch driver := viper.GetString("db-driver"); driver {
	case "sqlite":
		return services.OpenSqlite(viper.GetString("db-database"))
	case "postgres", "":
		dsn := viper.GetString("database-url")
		if dsn == "" {
			dsn = services.PostgresDSNFromEnv()
		}
		return services.OpenPostgres(dsn, 3)
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
