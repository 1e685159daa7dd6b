package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/excavacionesmoreno/quote-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.CatalogCategory{}, &models.CatalogItem{}))
	return conn
}

func TestRepositorySyncAndLoadRoundTrip(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Sync(ctx, Default()))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	want := Default()
	require.Len(t, loaded.Products(), len(want.Products()))
	for i, p := range loaded.Products() {
		expected := want.Products()[i]
		assert.Equal(t, expected.ID, p.ID, "order is preserved through position")
		assert.Equal(t, expected.Name, p.Name)
		assert.True(t, expected.Price.Equal(p.Price), "price for %s: %s != %s", p.ID, expected.Price, p.Price)
	}
	assert.Equal(t, want.CategorySummaries()[1].ProductCount, loaded.CategorySummaries()[1].ProductCount)
	cat, ok := loaded.Category("transportes")
	require.True(t, ok)
	assert.Equal(t, "Transportes y Retirada", cat.QuoteName)
}

func TestRepositorySyncIsIdempotentAndUpdatesPrices(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Sync(ctx, Default()))

	products := DefaultProducts()
	products[0].Price = decimal.RequireFromString("21.00")
	updated, err := New(DefaultCategories(), products)
	require.NoError(t, err)
	require.NoError(t, repo.Sync(ctx, updated))

	var count int64
	require.NoError(t, db.Model(&models.CatalogItem{}).Count(&count).Error)
	assert.EqualValues(t, 23, count)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	p, ok := loaded.Product(ctx, "arena-fina")
	require.True(t, ok)
	assert.Equal(t, "21.00", p.Price.StringFixed(2))
}

func TestRepositoryLoadRejectsOrphanItems(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.CatalogItem{ID: "huerfano", CategoryID: "aridos", Name: "Huérfano", Unit: "Tn", Price: decimal.NewFromInt(1)}).Error)

	_, err := NewRepository(db).Load(context.Background())
	assert.Error(t, err)
}
