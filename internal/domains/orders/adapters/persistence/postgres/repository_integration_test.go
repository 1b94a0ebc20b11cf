//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/database/dbtest"
)

func TestRepository_PostgresCommitAndDelete(t *testing.T) {
	db := dbtest.StartPostgres(t)
	require.NoError(t, Migrate(db))
	repo := NewRepository(db)
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	committed, err := repo.Commit(ctx, newOrder(t, "o-1", "owner-1", at))
	require.NoError(t, err)
	assert.Equal(t, domain.CommitCommitted, committed.State)
	assert.True(t, decimal.RequireFromString("280").Equal(committed.Total))
	require.Len(t, committed.Lines, 2)

	list, err := repo.List(ctx, ports.ListFilter{OwnerID: "owner-1", From: at.Truncate(24 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, "owner-1", "o-1"))
	_, err = repo.GetByID(ctx, "o-1")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestIdempotencyStore_PostgresConflict(t *testing.T) {
	db := dbtest.StartPostgres(t)
	require.NoError(t, Migrate(db))
	store := NewIdempotencyStore(db)
	ctx := context.Background()

	_, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", OwnerID: "owner-1", RequestHash: "a", OrderID: "o-1"})
	require.NoError(t, err)
	_, err = store.Save(ctx, ports.IdempotencyRecord{Key: "k", OwnerID: "owner-1", RequestHash: "b", OrderID: "o-2"})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}
