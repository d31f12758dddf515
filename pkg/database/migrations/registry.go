package migrations

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

type migration struct {
	name string
	fn   func(*gorm.DB) error
}

var registry []migration

// Register adds a migration to the registry. Migrations run in
// registration order, so files should register in init.
func Register(name string, fn func(*gorm.DB) error) {
	registry = append(registry, migration{name: name, fn: fn})
}

// Run executes registered migrations sequentially.
func Run(db *gorm.DB, log *slog.Logger) error {
	if len(registry) == 0 {
		log.Info("no database migrations registered")
		return nil
	}

	for _, m := range registry {
		log.Info("running migration", slog.String("name", m.name))

		if err := m.fn(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}

	return nil
}
