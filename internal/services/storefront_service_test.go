package services

import (
	"testing"

	"farmstock_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAge(t *testing.T) {
	six := 6
	one := 1
	zero := 0
	assert.Equal(t, "6 months old", FormatAge(&six))
	assert.Equal(t, "1 months old", FormatAge(&one))
	assert.Equal(t, "N/A", FormatAge(nil))
	// Zero counts as absent, not "0 months old".
	assert.Equal(t, "N/A", FormatAge(&zero))
}

func TestAvailability(t *testing.T) {
	assert.Equal(t, "available", Availability(true))
	assert.Equal(t, "sold", Availability(false))
}

func TestProjectProduct(t *testing.T) {
	age := 6
	description := "Free-range layer hen"
	product := &models.Product{
		ID:          3,
		Name:        "Brown Layer Hen",
		Slug:        "brown-layer-hen",
		ProductType: models.ProductTypeLive,
		Description: &description,
		Price:       decimal.NewFromInt(45),
		IsActive:    true,
		Age:         &age,
		AnimalType:  &models.AnimalType{ID: 1, Name: "Poultry"},
		Images: []models.ProductImage{
			{ImageURL: "https://cdn.example.com/hen-1.jpg", IsPrimary: true},
			{ImageURL: "https://cdn.example.com/hen-2.jpg"},
		},
	}

	projection := ProjectProduct(product)
	assert.Equal(t, int64(3), projection.ID)
	assert.Equal(t, []string{"https://cdn.example.com/hen-1.jpg", "https://cdn.example.com/hen-2.jpg"}, projection.Images)
	assert.Equal(t, "Brown Layer Hen", projection.Name)
	assert.Equal(t, "Free-range layer hen", projection.Description)
	assert.True(t, decimal.NewFromInt(45).Equal(projection.Price))
	assert.Equal(t, "available", projection.Status)
	assert.Equal(t, "Poultry", projection.Category)
	assert.Equal(t, "Live Animal", projection.Type)
	assert.Equal(t, "6 months old", projection.Age)
}

func TestProjectProductInactiveIsSold(t *testing.T) {
	product := &models.Product{
		ID:          4,
		Name:        "Goat Meat Cuts",
		ProductType: models.ProductTypeMeat,
		Price:       decimal.NewFromInt(120),
		IsActive:    false,
		AnimalType:  &models.AnimalType{ID: 2, Name: "Goat"},
	}

	projection := ProjectProduct(product)
	assert.Equal(t, "sold", projection.Status)
	assert.Equal(t, "Meat", projection.Type)
	assert.Equal(t, "N/A", projection.Age)
	assert.Empty(t, projection.Images)
}

func TestGetCategoriesDedupesUnion(t *testing.T) {
	animalTypeRepo := newFakeAnimalTypeRepo()
	animalTypeRepo.add("Poultry", "poultry")
	animalTypeRepo.add("Goat", "goat")

	productRepo := newFakeProductRepo()
	// Many products sharing a type still contribute one label each.
	productRepo.distinctType = []string{models.ProductTypeEgg, models.ProductTypeMeat}

	service := NewStorefrontService(productRepo, animalTypeRepo)
	categories, err := service.GetCategories()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Poultry", "Goat", "Egg", "Meat"}, categories)
}

func TestGetCategoriesDropsDuplicateLabels(t *testing.T) {
	animalTypeRepo := newFakeAnimalTypeRepo()
	animalTypeRepo.add("Meat", "meat") // category name colliding with a type label

	productRepo := newFakeProductRepo()
	productRepo.distinctType = []string{models.ProductTypeMeat}

	service := NewStorefrontService(productRepo, animalTypeRepo)
	categories, err := service.GetCategories()
	require.NoError(t, err)
	assert.Equal(t, []string{"Meat"}, categories)
}

func TestListProductsReturnsOnlyActive(t *testing.T) {
	animalTypeRepo := newFakeAnimalTypeRepo()
	poultry := animalTypeRepo.add("Poultry", "poultry")

	productRepo := newFakeProductRepo()
	productRepo.products[1] = &models.Product{
		ID: 1, Name: "Active Hen", Slug: "active-hen", ProductType: models.ProductTypeLive,
		Price: decimal.NewFromInt(40), AnimalTypeID: poultry.ID, IsActive: true,
		AnimalType: &models.AnimalType{ID: poultry.ID, Name: "Poultry"},
	}
	productRepo.products[2] = &models.Product{
		ID: 2, Name: "Retired Hen", Slug: "retired-hen", ProductType: models.ProductTypeLive,
		Price: decimal.NewFromInt(10), AnimalTypeID: poultry.ID, IsActive: false,
		AnimalType: &models.AnimalType{ID: poultry.ID, Name: "Poultry"},
	}

	service := NewStorefrontService(productRepo, animalTypeRepo)
	products, totalCount, err := service.ListProducts(StorefrontFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, totalCount)
	require.Len(t, products, 1)
	assert.Equal(t, "Active Hen", products[0].Name)
	assert.Equal(t, "available", products[0].Status)
}

func TestListProductsUnknownCategory(t *testing.T) {
	service := NewStorefrontService(newFakeProductRepo(), newFakeAnimalTypeRepo())

	_, _, err := service.ListProducts(StorefrontFilters{AnimalTypeSlug: "unicorns"})
	assert.ErrorIs(t, err, ErrAnimalTypeNotFound)
}

func TestGetProductBySlugProjectsImages(t *testing.T) {
	animalTypeRepo := newFakeAnimalTypeRepo()
	poultry := animalTypeRepo.add("Poultry", "poultry")

	productRepo := newFakeProductRepo()
	productRepo.products[1] = &models.Product{
		ID: 1, Name: "Crate of Eggs", Slug: "crate-of-eggs", ProductType: models.ProductTypeEgg,
		Price: decimal.NewFromInt(15), AnimalTypeID: poultry.ID, IsActive: true,
		AnimalType: &models.AnimalType{ID: poultry.ID, Name: "Poultry"},
	}
	productRepo.images[1] = []models.ProductImage{{ID: 1, ProductID: 1, ImageURL: "https://cdn.example.com/eggs.jpg"}}

	service := NewStorefrontService(productRepo, animalTypeRepo)
	product, err := service.GetProductBySlug("crate-of-eggs")
	require.NoError(t, err)
	assert.Equal(t, "Egg", product.Type)
	assert.Equal(t, []string{"https://cdn.example.com/eggs.jpg"}, product.Images)

	images, err := service.GetProductImages("crate-of-eggs")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://cdn.example.com/eggs.jpg", images[0].Image)

	_, err = service.GetProductBySlug("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductBySlugInactiveNotFound(t *testing.T) {
	animalTypeRepo := newFakeAnimalTypeRepo()
	poultry := animalTypeRepo.add("Poultry", "poultry")

	productRepo := newFakeProductRepo()
	productRepo.products[1] = &models.Product{
		ID: 1, Name: "Retired Hen", Slug: "retired-hen", ProductType: models.ProductTypeLive,
		Price: decimal.NewFromInt(10), AnimalTypeID: poultry.ID, IsActive: false,
		AnimalType: &models.AnimalType{ID: poultry.ID, Name: "Poultry"},
	}

	// Inactive products are invisible to the public catalog, detail included.
	service := NewStorefrontService(productRepo, animalTypeRepo)
	_, err := service.GetProductBySlug("retired-hen")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = service.GetProductImages("retired-hen")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
