// Package migrations applies the schema of every persistence adapter.
package migrations

import (
	"fmt"

	"gorm.io/gorm"

	catalogpg "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/persistence/postgres"
	grocerypg "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/persistence/postgres"
	orderpg "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/persistence/postgres"
	userpg "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/persistence/postgres"
)

type step struct {
	name    string
	migrate func(*gorm.DB) error
}

var steps = []step{
	{"users", userpg.Migrate},
	{"catalog", catalogpg.Migrate},
	{"orders", orderpg.Migrate},
	{"groceries", grocerypg.Migrate},
}

// Run migrates every bounded context in dependency order.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	for _, s := range steps {
		if err := s.migrate(db); err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
	}
	return nil
}
