package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/dbtest"
	"github.com/Skotchmaster/storefront/internal/orders"
	"github.com/Skotchmaster/storefront/internal/users"
)

func TestMigrate_Idempotent(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	for _, m := range []any{&users.User{}, &orders.Order{}, &orders.OrderItem{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&users.User{}, "Email"))
	assert.True(t, db.Migrator().HasColumn(&orders.Order{}, "Version"))
}
