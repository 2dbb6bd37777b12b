package service

import (
	"testing"

	"github.com/templatehub/storefront/internal/constants"
	"github.com/templatehub/storefront/internal/models"
	"github.com/templatehub/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerProfile(t *testing.T) {
	f := setupServiceFixture(t)

	anonymous, err := f.customers.Profile("  ")
	require.NoError(t, err)
	assert.Nil(t, anonymous)

	fresh, err := f.customers.Profile("New@Example.com")
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, "new@example.com", fresh.Email)
	assert.Zero(t, fresh.PaidOrders)
	assert.False(t, fresh.IsVIP)

	require.NoError(t, f.db.Create(&models.Order{OrderNo: "TS-A", CustomerEmail: "new@example.com", Status: constants.OrderStatusPaid, Currency: "USD"}).Error)
	require.NoError(t, f.db.Create(&models.Order{OrderNo: "TS-B", CustomerEmail: "new@example.com", Status: constants.OrderStatusPendingPayment, Currency: "USD"}).Error)
	_, err = f.customers.SetVIP("new@example.com", true)
	require.NoError(t, err)

	known, err := f.customers.Profile("new@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), known.PaidOrders)
	assert.True(t, known.IsVIP)
}

func TestCustomerSetVIPUpserts(t *testing.T) {
	f := setupServiceFixture(t)

	_, err := f.customers.SetVIP("not-an-email", true)
	require.ErrorIs(t, err, ErrCustomerEmailInvalid)

	first, err := f.customers.SetVIP("vip@example.com", true)
	require.NoError(t, err)
	assert.True(t, first.IsVIP)
	second, err := f.customers.SetVIP("VIP@example.com", false)
	require.NoError(t, err)
	assert.False(t, second.IsVIP)

	list, total, err := f.customers.List(repository.CustomerListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "vip@example.com", list[0].Email)
}

func TestProductServiceCreate(t *testing.T) {
	f := setupServiceFixture(t)
	inactive := false

	product, err := f.products.Create(CreateProductInput{Slug: " Landing-Kit ", Title: "<b>Landing</b> kit", Category: "Landing", Price: models.MustMoney("29.999")})
	require.NoError(t, err)
	assert.Equal(t, "landing-kit", product.Slug)
	assert.Equal(t, "Landing kit", product.Title)
	assert.Equal(t, "landing", product.Category)
	assert.Equal(t, "30.00", product.Price.String())
	assert.True(t, product.IsActive)

	_, err = f.products.Create(CreateProductInput{Slug: "landing-kit", Price: models.MustMoney("1")})
	require.ErrorIs(t, err, ErrSlugExists)
	_, err = f.products.Create(CreateProductInput{Slug: "cheap", Price: models.MustMoney("-1")})
	require.ErrorIs(t, err, ErrProductPriceInvalid)
	_, err = f.products.Create(CreateProductInput{Slug: " ", Price: models.MustMoney("1")})
	require.ErrorIs(t, err, ErrInvalidSlug)

	_, err = f.products.Create(CreateProductInput{Slug: "hidden", Price: models.MustMoney("5"), IsActive: &inactive})
	require.NoError(t, err)
	_, err = f.products.GetPublicBySlug("hidden")
	require.ErrorIs(t, err, ErrProductNotFound)

	public, total, err := f.products.ListPublic("", "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "landing-kit", public[0].Slug)
}
