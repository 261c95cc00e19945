package services

import (
	"fmt"
	"time"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/repositories"
)

// In-memory repository fakes shared by the service tests.

type fakeInventoryRepo struct {
	inventories  map[int64]*models.Inventory
	transactions []models.InventoryTransaction
	nextID       int64
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{inventories: map[int64]*models.Inventory{}, nextID: 1}
}

func (f *fakeInventoryRepo) addInventory(productID int64, quantity, minStockLevel int) *models.Inventory {
	inventory := &models.Inventory{
		ID:            f.nextID,
		ProductID:     productID,
		Quantity:      quantity,
		MinStockLevel: minStockLevel,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.inventories[inventory.ID] = inventory
	f.nextID++
	return inventory
}

func (f *fakeInventoryRepo) EnsureForProduct(_ repositories.SQLExecutor, productID int64) (*models.Inventory, error) {
	for _, inventory := range f.inventories {
		if inventory.ProductID == productID {
			copied := *inventory
			return &copied, nil
		}
	}
	copied := *f.addInventory(productID, 0, 5)
	return &copied, nil
}

func (f *fakeInventoryRepo) GetByID(id int64) (*models.Inventory, error) {
	inventory, ok := f.inventories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *inventory
	return &copied, nil
}

func (f *fakeInventoryRepo) GetByProductID(productID int64) (*models.Inventory, error) {
	for _, inventory := range f.inventories {
		if inventory.ProductID == productID {
			copied := *inventory
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeInventoryRepo) GetAll(page, pageSize int) ([]models.Inventory, int, error) {
	inventories := []models.Inventory{}
	for _, inventory := range f.inventories {
		inventories = append(inventories, *inventory)
	}
	return inventories, len(inventories), nil
}

func (f *fakeInventoryRepo) UpdateSettings(_ repositories.SQLExecutor, id int64, minStockLevel int) error {
	inventory, ok := f.inventories[id]
	if !ok {
		return repositories.ErrNotFound
	}
	inventory.MinStockLevel = minStockLevel
	return nil
}

func (f *fakeInventoryRepo) ApplyQuantityDelta(_ repositories.SQLExecutor, inventoryID int64, delta int, restocked bool) (int, error) {
	inventory, ok := f.inventories[inventoryID]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	if inventory.Quantity+delta < 0 {
		return 0, fmt.Errorf("%w: adjustment of %d would drive inventory %d quantity negative",
			repositories.ErrCheckViolation, delta, inventoryID)
	}
	inventory.Quantity += delta
	if restocked {
		now := time.Now()
		inventory.LastRestockDate = &now
	}
	return inventory.Quantity, nil
}

func (f *fakeInventoryRepo) CreateTransaction(_ repositories.SQLExecutor, transaction *models.InventoryTransaction) (int64, error) {
	transaction.ID = int64(len(f.transactions) + 1)
	transaction.CreatedAt = time.Now()
	f.transactions = append(f.transactions, *transaction)
	return transaction.ID, nil
}

func (f *fakeInventoryRepo) GetTransactions(filters models.TransactionFilters) ([]models.InventoryTransaction, int, error) {
	transactions := []models.InventoryTransaction{}
	for _, transaction := range f.transactions {
		if filters.InventoryID != nil && transaction.InventoryID != *filters.InventoryID {
			continue
		}
		if filters.TransactionType != nil && *filters.TransactionType != "" && transaction.TransactionType != *filters.TransactionType {
			continue
		}
		transactions = append(transactions, transaction)
	}
	return transactions, len(transactions), nil
}

type fakeSupplierRepo struct {
	suppliers map[int64]*models.Supplier
	byProduct map[int64][]models.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{
		suppliers: map[int64]*models.Supplier{},
		byProduct: map[int64][]models.Supplier{},
	}
}

func (f *fakeSupplierRepo) Create(_ repositories.SQLExecutor, supplier *models.Supplier) (int64, error) {
	supplier.ID = int64(len(f.suppliers) + 1)
	f.suppliers[supplier.ID] = supplier
	return supplier.ID, nil
}

func (f *fakeSupplierRepo) GetByID(id int64) (*models.Supplier, error) {
	supplier, ok := f.suppliers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return supplier, nil
}

func (f *fakeSupplierRepo) GetAll(isActive *bool, page, pageSize int) ([]models.Supplier, int, error) {
	suppliers := []models.Supplier{}
	for _, supplier := range f.suppliers {
		if isActive != nil && supplier.IsActive != *isActive {
			continue
		}
		suppliers = append(suppliers, *supplier)
	}
	return suppliers, len(suppliers), nil
}

func (f *fakeSupplierRepo) GetByProductID(productID int64) ([]models.Supplier, error) {
	suppliers := f.byProduct[productID]
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	return suppliers, nil
}

func (f *fakeSupplierRepo) Update(_ repositories.SQLExecutor, supplier *models.Supplier) error {
	if _, ok := f.suppliers[supplier.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.suppliers[supplier.ID] = supplier
	return nil
}

func (f *fakeSupplierRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.suppliers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.suppliers, id)
	return nil
}

type supplierLink struct {
	productID  int64
	supplierID int64
}

type fakeProductRepo struct {
	products     map[int64]*models.Product
	images       map[int64][]models.ProductImage
	distinctType []string
	addedLinks   []supplierLink
	removedLinks []supplierLink
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*models.Product{}, images: map[int64][]models.ProductImage{}}
}

func (f *fakeProductRepo) Create(_ repositories.SQLExecutor, product *models.Product) (int64, error) {
	product.ID = int64(len(f.products) + 1)
	f.products[product.ID] = product
	return product.ID, nil
}

func (f *fakeProductRepo) GetByID(id int64) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *product
	copied.Images = f.images[id]
	return &copied, nil
}

func (f *fakeProductRepo) GetBySlug(slug string) (*models.Product, error) {
	for _, product := range f.products {
		if product.Slug == slug {
			copied := *product
			copied.Images = f.images[product.ID]
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeProductRepo) GetAll(filters models.ProductFilters) ([]models.Product, int, error) {
	products := []models.Product{}
	for _, product := range f.products {
		if filters.IsActive != nil && product.IsActive != *filters.IsActive {
			continue
		}
		if filters.ProductType != nil && *filters.ProductType != "" && product.ProductType != *filters.ProductType {
			continue
		}
		if filters.AnimalTypeID != nil && product.AnimalTypeID != *filters.AnimalTypeID {
			continue
		}
		products = append(products, *product)
	}
	return products, len(products), nil
}

func (f *fakeProductRepo) GetDistinctProductTypes() ([]string, error) {
	return f.distinctType, nil
}

func (f *fakeProductRepo) Update(_ repositories.SQLExecutor, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) AddSupplier(_ repositories.SQLExecutor, productID, supplierID int64) error {
	f.addedLinks = append(f.addedLinks, supplierLink{productID: productID, supplierID: supplierID})
	return nil
}

func (f *fakeProductRepo) RemoveSupplier(_ repositories.SQLExecutor, productID, supplierID int64) error {
	f.removedLinks = append(f.removedLinks, supplierLink{productID: productID, supplierID: supplierID})
	return nil
}

func (f *fakeProductRepo) AddImage(_ repositories.SQLExecutor, image *models.ProductImage) (int64, error) {
	image.ID = int64(len(f.images[image.ProductID]) + 1)
	f.images[image.ProductID] = append(f.images[image.ProductID], *image)
	return image.ID, nil
}

func (f *fakeProductRepo) GetImageByID(id int64) (*models.ProductImage, error) {
	return nil, repositories.ErrNotFound
}

func (f *fakeProductRepo) GetImagesByProductID(productID int64) ([]models.ProductImage, error) {
	images := f.images[productID]
	if images == nil {
		images = []models.ProductImage{}
	}
	return images, nil
}

func (f *fakeProductRepo) GetImagesByProductIDs(productIDs []int64) (map[int64][]models.ProductImage, error) {
	byProduct := map[int64][]models.ProductImage{}
	for _, productID := range productIDs {
		if images, ok := f.images[productID]; ok {
			byProduct[productID] = images
		}
	}
	return byProduct, nil
}

func (f *fakeProductRepo) GetAllImages(page, pageSize int) ([]models.ProductImage, int, error) {
	return []models.ProductImage{}, 0, nil
}

func (f *fakeProductRepo) DeleteImage(_ repositories.SQLExecutor, id int64) error {
	return nil
}

type fakeAnimalTypeRepo struct {
	animalTypes map[int64]*models.AnimalType
}

func newFakeAnimalTypeRepo() *fakeAnimalTypeRepo {
	return &fakeAnimalTypeRepo{animalTypes: map[int64]*models.AnimalType{}}
}

func (f *fakeAnimalTypeRepo) add(name, slug string) *models.AnimalType {
	animalType := &models.AnimalType{ID: int64(len(f.animalTypes) + 1), Name: name, Slug: slug}
	f.animalTypes[animalType.ID] = animalType
	return animalType
}

func (f *fakeAnimalTypeRepo) Create(_ repositories.SQLExecutor, animalType *models.AnimalType) (int64, error) {
	for _, existing := range f.animalTypes {
		if existing.Name == animalType.Name || existing.Slug == animalType.Slug {
			return 0, repositories.ErrDuplicateKey
		}
	}
	animalType.ID = int64(len(f.animalTypes) + 1)
	f.animalTypes[animalType.ID] = animalType
	return animalType.ID, nil
}

func (f *fakeAnimalTypeRepo) GetByID(id int64) (*models.AnimalType, error) {
	animalType, ok := f.animalTypes[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return animalType, nil
}

func (f *fakeAnimalTypeRepo) GetBySlug(slug string) (*models.AnimalType, error) {
	for _, animalType := range f.animalTypes {
		if animalType.Slug == slug {
			return animalType, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAnimalTypeRepo) GetAll(page, pageSize int) ([]models.AnimalType, int, error) {
	animalTypes := []models.AnimalType{}
	for _, animalType := range f.animalTypes {
		animalTypes = append(animalTypes, *animalType)
	}
	return animalTypes, len(animalTypes), nil
}

func (f *fakeAnimalTypeRepo) GetNames() ([]string, error) {
	names := []string{}
	for _, animalType := range f.animalTypes {
		names = append(names, animalType.Name)
	}
	return names, nil
}

func (f *fakeAnimalTypeRepo) Update(_ repositories.SQLExecutor, animalType *models.AnimalType) error {
	if _, ok := f.animalTypes[animalType.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.animalTypes[animalType.ID] = animalType
	return nil
}

func (f *fakeAnimalTypeRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.animalTypes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.animalTypes, id)
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
