package services

import (
	"testing"

	"farmstock_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductServiceForTest(t *testing.T) (ProductService, *fakeProductRepo, *fakeSupplierRepo, *fakeInventoryRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	productRepo := newFakeProductRepo()
	supplierRepo := newFakeSupplierRepo()
	inventoryRepo := newFakeInventoryRepo()
	service := NewProductService(db, productRepo, supplierRepo, inventoryRepo)
	return service, productRepo, supplierRepo, inventoryRepo, mock
}

func TestCreateProductCreatesInventory(t *testing.T) {
	service, _, _, inventoryRepo, mock := newProductServiceForTest(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	product, err := service.CreateProduct(ProductRequest{
		Name:         "Fresh Goat Meat",
		ProductType:  models.ProductTypeMeat,
		Price:        decimal.NewFromInt(120),
		AnimalTypeID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh-goat-meat", product.Slug)
	assert.True(t, product.IsActive)

	// Exactly one inventory row, zeroed, with the default threshold.
	require.Len(t, inventoryRepo.inventories, 1)
	for _, inventory := range inventoryRepo.inventories {
		assert.Equal(t, product.ID, inventory.ProductID)
		assert.Equal(t, 0, inventory.Quantity)
		assert.Equal(t, 5, inventory.MinStockLevel)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductValidation(t *testing.T) {
	service, productRepo, _, inventoryRepo, _ := newProductServiceForTest(t)

	_, err := service.CreateProduct(ProductRequest{
		Name:         "Mystery Box",
		ProductType:  "BUNDLE",
		Price:        decimal.NewFromInt(10),
		AnimalTypeID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidProductType)

	_, err = service.CreateProduct(ProductRequest{
		Name:         "Negative Hen",
		ProductType:  models.ProductTypeLive,
		Price:        decimal.NewFromInt(-1),
		AnimalTypeID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	// Nothing persisted on rejection.
	assert.Empty(t, productRepo.products)
	assert.Empty(t, inventoryRepo.inventories)
}

func TestCreateProductDefaultsEggPack(t *testing.T) {
	service, productRepo, _, _, mock := newProductServiceForTest(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	product, err := service.CreateProduct(ProductRequest{
		Name:         "Crate of Eggs",
		ProductType:  models.ProductTypeEgg,
		Price:        decimal.NewFromInt(15),
		AnimalTypeID: 1,
		Egg:          &EggDetailsRequest{},
	})
	require.NoError(t, err)

	stored := productRepo.products[product.ID]
	require.NotNil(t, stored.Egg)
	require.NotNil(t, stored.Egg.QuantityPerPack)
	assert.Equal(t, 1, *stored.Egg.QuantityPerPack)
}

func TestUpdateProductReconcilesSuppliers(t *testing.T) {
	service, productRepo, supplierRepo, _, mock := newProductServiceForTest(t)

	productRepo.products[1] = &models.Product{
		ID: 1, Name: "Brown Layer Hen", Slug: "brown-layer-hen",
		ProductType: models.ProductTypeLive, Price: decimal.NewFromInt(45),
		AnimalTypeID: 1, IsActive: true,
	}
	supplierRepo.byProduct[1] = []models.Supplier{
		{ID: 1, Name: "Obi Farms"},
		{ID: 2, Name: "Enugu Hatchery"},
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := service.UpdateProduct(1, ProductRequest{
		Name:         "Brown Layer Hen",
		ProductType:  models.ProductTypeLive,
		Price:        decimal.NewFromInt(45),
		AnimalTypeID: 1,
		SupplierIDs:  []int64{2, 7},
	})
	require.NoError(t, err)

	// Link 1 dropped, link 7 added, link 2 kept untouched.
	assert.Equal(t, []supplierLink{{productID: 1, supplierID: 7}}, productRepo.addedLinks)
	assert.Equal(t, []supplierLink{{productID: 1, supplierID: 1}}, productRepo.removedLinks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductWithoutSupplierIDsKeepsLinks(t *testing.T) {
	service, productRepo, supplierRepo, _, mock := newProductServiceForTest(t)

	productRepo.products[1] = &models.Product{
		ID: 1, Name: "Brown Layer Hen", Slug: "brown-layer-hen",
		ProductType: models.ProductTypeLive, Price: decimal.NewFromInt(45),
		AnimalTypeID: 1, IsActive: true,
	}
	supplierRepo.byProduct[1] = []models.Supplier{{ID: 1, Name: "Obi Farms"}}

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := service.UpdateProduct(1, ProductRequest{
		Name:         "Brown Layer Hen",
		ProductType:  models.ProductTypeLive,
		Price:        decimal.NewFromInt(50),
		AnimalTypeID: 1,
	})
	require.NoError(t, err)

	assert.Empty(t, productRepo.addedLinks)
	assert.Empty(t, productRepo.removedLinks)
}

func TestUpdateProductNotFound(t *testing.T) {
	service, _, _, _, mock := newProductServiceForTest(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := service.UpdateProduct(99, ProductRequest{
		Name:         "Ghost Product",
		ProductType:  models.ProductTypeLive,
		Price:        decimal.NewFromInt(10),
		AnimalTypeID: 1,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = service.DeleteProduct(99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
