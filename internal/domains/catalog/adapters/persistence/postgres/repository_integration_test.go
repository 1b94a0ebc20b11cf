//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rajeshrr07/EiliyaBill/internal/platform/database/dbtest"
)

func TestRepository_PostgresListNewestFirst(t *testing.T) {
	db := dbtest.StartPostgres(t)
	require.NoError(t, Migrate(db))
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, newProduct(t, "p-1", "owner-1", "Tea"))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = repo.Save(ctx, newProduct(t, "p-2", "owner-1", "Coffee"))
	require.NoError(t, err)

	list, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Coffee", list[0].Entity.Name)
	assert.Equal(t, "Tea", list[1].Entity.Name)
	assert.Equal(t, "19.99", list[0].Entity.Price.StringFixed(2))
}
