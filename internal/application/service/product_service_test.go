package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (*ProductService, *fakeProductRepo, *fakeProductGroupRepo) {
	productRepo := newFakeProductRepo()
	groupRepo := newFakeProductGroupRepo()
	return NewProductService(productRepo, groupRepo), productRepo, groupRepo
}

func planInput(name string) *ProductInput {
	return &ProductInput{
		Name:         name,
		MonthlyPrice: decimal.RequireFromString("9.99"),
		AnnualPrice:  decimal.RequireFromString("99.90"),
		Active:       true,
	}
}

func TestCreateProductSlugifiesName(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	product, err := svc.CreateProduct(context.Background(), planInput("Starter  Hosting!"))
	require.NoError(t, err)
	assert.Equal(t, "starter-hosting", product.Slug)
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	_, err := svc.CreateProduct(context.Background(), planInput("Starter Hosting"))
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), planInput("Starter Hosting"))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}

func TestCreateProductRejectsNegativePrices(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	input := planInput("Starter Hosting")
	input.MonthlyPrice = decimal.RequireFromString("-1")

	_, err := svc.CreateProduct(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))
}

func TestCreateProductUnknownGroup(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	input := planInput("Starter Hosting")
	missing := newFakeProductGroupRepo()
	group := &entity.ProductGroup{Name: "Shared", Slug: "shared"}
	require.NoError(t, missing.Create(context.Background(), group))
	input.GroupID = &group.ID

	_, err := svc.CreateProduct(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestGetProductBySlugHidesInactive(t *testing.T) {
	svc, productRepo, _ := newCatalogFixture()

	retired := &entity.Product{
		Name:         "Retired Plan",
		Slug:         "retired-plan",
		MonthlyPrice: decimal.RequireFromString("5"),
		Active:       false,
	}
	require.NoError(t, productRepo.Create(context.Background(), retired))

	_, err := svc.GetProductBySlug(context.Background(), "retired-plan")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestUpdateProductSlugCollision(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	first, err := svc.CreateProduct(context.Background(), planInput("Starter Hosting"))
	require.NoError(t, err)
	second, err := svc.CreateProduct(context.Background(), planInput("Business Hosting"))
	require.NoError(t, err)

	input := planInput("Business Hosting")
	input.Slug = first.Slug

	_, err = svc.UpdateProduct(context.Background(), second.ID, input)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}

func TestListCatalogFiltersByGroupSlug(t *testing.T) {
	svc, productRepo, groupRepo := newCatalogFixture()

	shared := &entity.ProductGroup{Name: "Shared", Slug: "shared"}
	require.NoError(t, groupRepo.Create(context.Background(), shared))

	inGroup := &entity.Product{
		Name:         "Shared Basic",
		Slug:         "shared-basic",
		GroupID:      &shared.ID,
		MonthlyPrice: decimal.RequireFromString("4.99"),
		Active:       true,
	}
	outside := &entity.Product{
		Name:         "VPS One",
		Slug:         "vps-one",
		MonthlyPrice: decimal.RequireFromString("19.99"),
		Active:       true,
	}
	require.NoError(t, productRepo.Create(context.Background(), inGroup))
	require.NoError(t, productRepo.Create(context.Background(), outside))

	products, err := svc.ListCatalog(context.Background(), "shared")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "shared-basic", products[0].Slug)

	_, err = svc.ListCatalog(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestCreateGroupSlugifiesAndRejectsDuplicates(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	group, err := svc.CreateGroup(context.Background(), &GroupInput{Name: "VPS Hosting"})
	require.NoError(t, err)
	assert.Equal(t, "vps-hosting", group.Slug)

	_, err = svc.CreateGroup(context.Background(), &GroupInput{Name: "VPS Hosting"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}
