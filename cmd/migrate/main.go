// Command migrate manages the database schema: apply versioned SQL
// migrations, run AutoMigrate, inspect state, or roll a migration back.
//
// Usage:
//
//	migrate up              apply all pending SQL migrations
//	migrate auto            force a GORM AutoMigrate pass
//	migrate status          show plan, applied and pending migrations
//	migrate down <version>  roll back one migration
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"recipehub/internal/config"
	"recipehub/internal/database"

	"gorm.io/gorm"
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate <up|auto|status|down> [version]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	// Schema changes happen only through the chosen subcommand.
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	ctx := context.Background()
	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = cmdUp(ctx, db)
	case "auto":
		err = cmdAuto(ctx, db, cfg)
	case "status":
		err = cmdStatus(ctx, db, cfg)
	case "down":
		err = cmdDown(ctx, db, flag.Arg(1))
	default:
		err = fmt.Errorf("unknown subcommand %q", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func cmdUp(ctx context.Context, db *gorm.DB) error {
	if err := database.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("sql migrations: %w", err)
	}
	log.Println("sql migrations applied")
	return nil
}

func cmdAuto(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	cfg.DBSchemaMode = database.SchemaModeAuto
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	log.Println("auto-migrate complete")
	return nil
}

func cmdStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	status, err := database.GetSchemaStatus(ctx, db, cfg)
	if err != nil {
		return fmt.Errorf("schema status: %w", err)
	}
	log.Printf("mode=%s env=%s run_sql=%t run_auto=%t applied=%d pending=%d",
		status.Mode, status.Environment, status.WillRunSQL, status.WillRunAutoMigrate,
		len(status.AppliedVersions), len(status.PendingMigrations))
	for _, m := range status.PendingMigrations {
		log.Printf("pending: %s", m.String())
	}
	return nil
}

func cmdDown(ctx context.Context, db *gorm.DB, arg string) error {
	version, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("down needs a numeric version, got %q", arg)
	}
	if err := database.RollbackMigration(ctx, db, version); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	log.Printf("rolled back migration %d", version)
	return nil
}
