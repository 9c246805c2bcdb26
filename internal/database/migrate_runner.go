package database

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"recipehub/internal/middleware"

	"gorm.io/gorm"
)

// appliedMigration is one row of the schema_migrations bookkeeping table.
type appliedMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (appliedMigration) TableName() string { return "schema_migrations" }

// ledger tracks which migrations have run against a database.
type ledger struct {
	db *gorm.DB
}

func (l ledger) ensureTable(ctx context.Context) error {
	if err := l.db.WithContext(ctx).AutoMigrate(&appliedMigration{}); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}
	return nil
}

func (l ledger) versions(ctx context.Context) ([]int, error) {
	var out []int
	err := l.db.WithContext(ctx).
		Model(&appliedMigration{}).
		Order("version ASC").
		Pluck("version", &out).Error
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	return out, nil
}

func (l ledger) apply(ctx context.Context, m Migration) error {
	if err := l.db.WithContext(ctx).Exec(m.Up).Error; err != nil {
		return fmt.Errorf("migration %s: %w", m.String(), err)
	}
	row := appliedMigration{Version: m.Version, Name: m.Name}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record migration %s: %w", m.String(), err)
	}
	middleware.Logger.Info("Migration applied", slog.Int("version", m.Version), slog.String("name", m.Name))
	return nil
}

func (l ledger) revert(ctx context.Context, m Migration) error {
	if err := l.db.WithContext(ctx).Exec(m.Down).Error; err != nil {
		return fmt.Errorf("rollback of %s: %w", m.String(), err)
	}
	err := l.db.WithContext(ctx).
		Where("version = ?", m.Version).
		Delete(&appliedMigration{}).Error
	if err != nil {
		return fmt.Errorf("unrecord migration %s: %w", m.String(), err)
	}
	middleware.Logger.Info("Migration rolled back", slog.Int("version", m.Version))
	return nil
}

// RunMigrations applies every registered migration that has not run yet,
// creating the bookkeeping table on first use.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	l := ledger{db: db}
	if err := l.ensureTable(ctx); err != nil {
		return err
	}

	applied, err := l.versions(ctx)
	if err != nil {
		return err
	}
	if err := checkUnknownVersions(applied); err != nil {
		return err
	}

	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.Version] {
			continue
		}
		middleware.Logger.Info("Applying migration", slog.Int("version", m.Version), slog.String("name", m.Name))
		if err := l.apply(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// checkUnknownVersions refuses to run against a database whose
// schema_migrations rows reference versions this binary does not know,
// which usually means a newer deployment already touched the schema.
func checkUnknownVersions(applied []int) error {
	known := make(map[int]bool, len(migrations))
	for _, m := range migrations {
		known[m.Version] = true
	}

	var unknown []string
	for _, v := range applied {
		if !known[v] {
			unknown = append(unknown, fmt.Sprintf("%06d", v))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("schema_migrations has versions unknown to this build: %s", strings.Join(unknown, ", "))
}

// RollbackMigration reverts one previously applied migration by version.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	m := GetMigrationByVersion(version)
	if m == nil {
		return fmt.Errorf("unknown migration version %d", version)
	}

	l := ledger{db: db}
	applied, err := l.versions(ctx)
	if err != nil {
		return err
	}
	for _, v := range applied {
		if v == version {
			return l.revert(ctx, *m)
		}
	}
	return fmt.Errorf("migration %06d has not been applied", version)
}
