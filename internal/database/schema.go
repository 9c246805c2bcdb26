package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recipehub/internal/config"
	"recipehub/internal/middleware"

	"gorm.io/gorm"
)

// Schema management modes, selected with DB_SCHEMA_MODE.
const (
	// SchemaModeHybrid runs SQL migrations everywhere and additionally
	// AutoMigrate outside production-like environments. The default.
	SchemaModeHybrid = "hybrid"
	// SchemaModeSQL runs only the versioned SQL migrations.
	SchemaModeSQL = "sql"
	// SchemaModeAuto runs only GORM AutoMigrate. Refused in
	// production-like environments unless explicitly allowed, since
	// AutoMigrate can drop or rewrite columns.
	SchemaModeAuto = "auto"
)

// schemaPlan is the resolved decision of what ApplySchema will run.
type schemaPlan struct {
	mode    string
	runSQL  bool
	runAuto bool
}

// SchemaStatus describes the schema plan plus the migration ledger state.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

func isProdLikeEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod", "staging", "stage":
		return true
	}
	return false
}

func resolveSchemaPlan(cfg *config.Config) (schemaPlan, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))
	if mode == "" {
		mode = SchemaModeHybrid
	}
	prodLike := isProdLikeEnv(cfg.Env)

	switch mode {
	case SchemaModeSQL:
		return schemaPlan{mode: mode, runSQL: true}, nil
	case SchemaModeAuto:
		if prodLike && !cfg.DBAutoMigrateAllowDestructive {
			return schemaPlan{}, fmt.Errorf("DB_SCHEMA_MODE=auto needs DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true in %q", cfg.Env)
		}
		return schemaPlan{mode: mode, runAuto: true}, nil
	case SchemaModeHybrid:
		return schemaPlan{mode: mode, runSQL: true, runAuto: !prodLike}, nil
	}
	return schemaPlan{}, fmt.Errorf("unknown DB_SCHEMA_MODE %q", mode)
}

// ApplySchema brings the database schema up to date according to the
// configured schema mode.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := resolveSchemaPlan(cfg)
	if err != nil {
		return err
	}

	if plan.runSQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("sql migrations: %w", err)
		}
	}
	if plan.runAuto {
		middleware.Logger.Info("Running GORM AutoMigrate",
			slog.String("mode", plan.mode), slog.String("env", cfg.Env))
		if err := Migrate(db); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// GetSchemaStatus reports what ApplySchema would do and which SQL
// migrations are applied versus pending.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := resolveSchemaPlan(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        cfg.Env,
		WillRunSQL:         plan.runSQL,
		WillRunAutoMigrate: plan.runAuto,
	}
	if !plan.runSQL {
		return status, nil
	}

	l := ledger{db: db}
	if err := l.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := l.versions(ctx)
	if err != nil {
		return nil, err
	}
	status.AppliedVersions = applied

	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}
	for _, m := range migrations {
		if !done[m.Version] {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}
	return status, nil
}
