package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/radixtech/quotehub/internal/catalog/domain"
	"github.com/radixtech/quotehub/internal/catalog/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestCatalog(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}))

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestCatalog(t)

	p, err := svc.Create(context.Background(), domain.UpsertRequest{
		Model: "HUB-1",
		Price: dec("79.99"),
		Stock: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCategory, p.Category)
	assert.Equal(t, "HUB-1", p.Description)
	assert.Equal(t, domain.StatusActive, p.Status)
}

func TestCreate_DuplicateModel(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.UpsertRequest{Model: "HUB-1", Price: dec("1")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.UpsertRequest{Model: "HUB-1", Price: dec("2")})
	assert.ErrorIs(t, err, domain.ErrModelExists)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.UpsertRequest{Model: "  ", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidModel)

	_, err = svc.Create(ctx, domain.UpsertRequest{Model: "X", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.Create(ctx, domain.UpsertRequest{Model: "X", Price: dec("1"), Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	_, err = svc.Create(ctx, domain.UpsertRequest{Model: "X", Price: dec("1"), Status: "Retired"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdate_PreservesImage(t *testing.T) {
	svc, db := newTestCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.UpsertRequest{Model: "HUB-1", Price: dec("10")})
	require.NoError(t, err)
	require.NoError(t, svc.SetImage(ctx, "HUB-1", "hub-1_123.png"))

	_, err = svc.Update(ctx, "HUB-1", domain.UpsertRequest{
		Description: "Updated hub",
		Price:       dec("12.50"),
		Stock:       9,
	})
	require.NoError(t, err)

	var p domain.Product
	require.NoError(t, db.First(&p, "model = ?", "HUB-1").Error)
	assert.Equal(t, "Updated hub", p.Description)
	assert.Equal(t, "12.50", p.Price.StringFixed(2))
	require.NotNil(t, p.ImageFilename)
	assert.Equal(t, "hub-1_123.png", *p.ImageFilename)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestCatalog(t)

	_, err := svc.Update(context.Background(), "GHOST", domain.UpsertRequest{Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListGrouped(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.UpsertRequest{Model: "HUB-1", Category: "Hubs", Price: dec("79.99")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.UpsertRequest{Model: "BULB-1", Category: "Lighting", Price: dec("9.5")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.UpsertRequest{Model: "BULB-2", Category: "Lighting", Price: dec("11")})
	require.NoError(t, err)
	require.NoError(t, svc.SetImage(ctx, "HUB-1", "hub.png"))

	grouped, err := svc.ListGrouped(ctx)
	require.NoError(t, err)

	require.Len(t, grouped, 2)
	assert.Len(t, grouped["Lighting"], 2)

	hubs := grouped["Hubs"]
	require.Len(t, hubs, 1)
	assert.Equal(t, "79.99", hubs[0].Price)
	require.NotNil(t, hubs[0].ImageURL)
	assert.Equal(t, "/uploads/hub.png", *hubs[0].ImageURL)
}

func TestSetStock(t *testing.T) {
	svc, db := newTestCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.UpsertRequest{Model: "HUB-1", Price: dec("10"), Stock: 1})
	require.NoError(t, err)

	require.NoError(t, svc.SetStock(ctx, "HUB-1", 25))

	var p domain.Product
	require.NoError(t, db.First(&p, "model = ?", "HUB-1").Error)
	assert.Equal(t, 25, p.Stock)

	assert.ErrorIs(t, svc.SetStock(ctx, "HUB-1", -1), domain.ErrInvalidStock)
	assert.ErrorIs(t, svc.SetStock(ctx, "GHOST", 5), domain.ErrNotFound)
}

func TestDeleteAndClear(t *testing.T) {
	svc, db := newTestCatalog(t)
	ctx := context.Background()

	for _, m := range []string{"A", "B", "C"} {
		_, err := svc.Create(ctx, domain.UpsertRequest{Model: m, Price: dec("1")})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, "A"))
	assert.ErrorIs(t, svc.Delete(ctx, "A"), domain.ErrNotFound)

	require.NoError(t, svc.Clear(ctx))
	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
