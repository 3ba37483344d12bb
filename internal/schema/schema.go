// Package schema owns the table layout of the storefront database.
package schema

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/orders"
	"github.com/Skotchmaster/storefront/internal/users"
)

func Models() []any {
	return []any{
		&users.User{},
		&catalog.Category{},
		&catalog.Product{},
		&orders.Order{},
		&orders.OrderItem{},
	}
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
