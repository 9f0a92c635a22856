package listings

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(&models.Listing{}))
	return conn
}

func TestRepositoryRoundTripsCatalogOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	require.NoError(t, repo.Upsert(ctx, ReferenceCatalog()))

	got, err := repo.Listings(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReferenceCatalog(), got)
}

func TestRepositoryUpsertUpdatesExistingRows(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	require.NoError(t, repo.Upsert(ctx, ReferenceCatalog()))

	updated := ReferenceCatalog()[:2]
	updated[0], updated[1] = updated[1], updated[0]
	updated[1].Rating = 3.0
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Listings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, 3.0, got[1].Rating)
}

func TestRepositoryRejectsInvalidRows(t *testing.T) {
	ctx := context.Background()
	conn := openTestDB(t)
	repo := NewRepository(conn)

	require.NoError(t, conn.Create(&models.Listing{
		ID:                  "bad",
		Position:            1,
		Name:                "Broken",
		Rating:              9,
		DeliveryLowMinutes:  10,
		DeliveryHighMinutes: 20,
	}).Error)

	_, err := repo.Listings(ctx)
	assert.Error(t, err)

	bad := ReferenceCatalog()[:1]
	bad[0].Rating = -1
	assert.Error(t, repo.Upsert(ctx, bad))
}
