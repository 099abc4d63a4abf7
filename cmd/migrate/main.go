// Command migrate runs the goose schema migrations.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"cinelist/internal/config"
	"cinelist/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|down|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.DBDriver != "postgres" {
		return fmt.Errorf("migrations target postgres, DB_DRIVER is %q", cfg.DBDriver)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{AutoMigrate: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	defer sqlDB.Close()

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.MigrateUp(sqlDB); err != nil {
			return err
		}
		log.Println("sql migrations applied")
	case "down":
		if err := database.MigrateDown(sqlDB); err != nil {
			return err
		}
		log.Println("rolled back latest migration")
	case "status":
		return database.MigrationStatus(sqlDB)
	default:
		return usage()
	}

	return nil
}
