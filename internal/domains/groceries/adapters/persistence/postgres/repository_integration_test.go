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

func TestRepository_PostgresMonthRange(t *testing.T) {
	db := dbtest.StartPostgres(t)
	require.NoError(t, Migrate(db))
	repo := NewRepository(db)
	ctx := context.Background()

	lastOfJan := time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC)
	firstOfFeb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx,
		newEntry(t, "g-1", "owner-1", "Milk", "42.50", lastOfJan),
		newEntry(t, "g-2", "owner-1", "Rice", "120", firstOfFeb),
	))

	list, err := repo.ListByOwner(ctx, "owner-1", firstOfFeb, firstOfFeb.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "g-2", list[0].ID)
	assert.Equal(t, "120.00", list[0].Price.StringFixed(2))
}
