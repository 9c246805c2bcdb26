package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Migration is one versioned schema change, loaded from an
// NNNNNN_name.up.sql / NNNNNN_name.down.sql pair in the embedded
// migrations directory.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

func (m *Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}

//go:embed migrations/*.sql
var migrationFiles embed.FS

var migrations = mustLoadMigrations(migrationFiles)

func mustLoadMigrations(fsys fs.FS) []Migration {
	ms, err := loadMigrations(fsys)
	if err != nil {
		panic(fmt.Sprintf("database: broken embedded migrations: %v", err))
	}
	return ms
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	upFiles, err := fs.Glob(fsys, "migrations/*.up.sql")
	if err != nil {
		return nil, err
	}

	var ms []Migration
	for _, upPath := range upFiles {
		base := strings.TrimSuffix(strings.TrimPrefix(upPath, "migrations/"), ".up.sql")
		versionStr, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %q: want NNNNNN_name.up.sql", upPath)
		}
		version, err := strconv.Atoi(versionStr)
		if err != nil {
			return nil, fmt.Errorf("migration %q: bad version prefix: %w", upPath, err)
		}

		up, err := fs.ReadFile(fsys, upPath)
		if err != nil {
			return nil, err
		}
		downPath := "migrations/" + base + ".down.sql"
		down, err := fs.ReadFile(fsys, downPath)
		if err != nil {
			return nil, fmt.Errorf("migration %06d has no down script: %w", version, err)
		}

		ms = append(ms, Migration{
			Version: version,
			Name:    name,
			Up:      string(up),
			Down:    string(down),
		})
	}

	sort.Slice(ms, func(i, j int) bool { return ms[i].Version < ms[j].Version })
	for i := 1; i < len(ms); i++ {
		if ms[i].Version == ms[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %06d", ms[i].Version)
		}
	}
	return ms, nil
}

// GetMigrations returns all registered migrations in version order.
func GetMigrations() []Migration {
	return migrations
}

// GetMigrationByVersion returns the migration with the given version, or nil.
func GetMigrationByVersion(version int) *Migration {
	for i := range migrations {
		if migrations[i].Version == version {
			return &migrations[i]
		}
	}
	return nil
}
