package services

import (
	"database/sql"
	"errors"
	"fmt"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// Service-level errors for product operations.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductConflict      = errors.New("product with this slug already exists")
	ErrInvalidProductType   = errors.New("product type must be one of LIVE, MEAT, EGG")
	ErrInvalidPrice         = errors.New("price must not be negative")
	ErrProductImageNotFound = errors.New("product image not found")
	ErrSupplierLinkExists   = errors.New("supplier is already linked to this product")
)

// LiveDetailsRequest carries the LIVE variant fields of a product payload.
type LiveDetailsRequest struct {
	Gender *string          `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Weight *decimal.Decimal `json:"weight"`
	Breed  *string          `json:"breed" binding:"omitempty,max=255"`
}

// MeatDetailsRequest carries the MEAT variant fields of a product payload.
type MeatDetailsRequest struct {
	CutType       *string          `json:"cut_type" binding:"omitempty,max=255"`
	Packaging     *string          `json:"packaging" binding:"omitempty,max=255"`
	WeightPerUnit *decimal.Decimal `json:"weight_per_unit"`
	IsFrozen      bool             `json:"is_frozen"`
}

// EggDetailsRequest carries the EGG variant fields of a product payload.
type EggDetailsRequest struct {
	Size            *string `json:"size" binding:"omitempty,oneof=S M L XL"`
	Color           *string `json:"color" binding:"omitempty,max=100"`
	QuantityPerPack *int    `json:"quantity_per_pack" binding:"omitempty,gte=1"`
}

// ProductRequest is the DTO for creating or updating a product. The detail
// group matching ProductType is the meaningful one; others are stored as-is.
type ProductRequest struct {
	Name         string              `json:"name" binding:"required,max=255"`
	Slug         string              `json:"slug" binding:"max=255"`
	ProductType  string              `json:"product_type" binding:"required,oneof=LIVE MEAT EGG"`
	Description  *string             `json:"description"`
	Price        decimal.Decimal     `json:"price" binding:"required"`
	AnimalTypeID int64               `json:"animal_type_id" binding:"required,gt=0"`
	IsActive     *bool               `json:"is_active"`
	Age          *int                `json:"age" binding:"omitempty,gte=0"`
	Live         *LiveDetailsRequest `json:"live"`
	Meat         *MeatDetailsRequest `json:"meat"`
	Egg          *EggDetailsRequest  `json:"egg"`
	SupplierIDs  []int64             `json:"supplier_ids"` // on update, nil leaves links untouched
}

// AddProductImageRequest is the DTO for attaching an image to a product.
type AddProductImageRequest struct {
	ImageURL  string  `json:"image_url" binding:"required,max=1024"`
	AltText   *string `json:"alt_text" binding:"omitempty,max=255"`
	IsPrimary bool    `json:"is_primary"`
}

// ProductService defines the interface for product business logic.
type ProductService interface {
	CreateProduct(req ProductRequest) (*models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
	GetAllProducts(filters models.ProductFilters) ([]models.Product, int, error)
	UpdateProduct(id int64, req ProductRequest) (*models.Product, error)
	DeleteProduct(id int64) error

	AddSupplierToProduct(productID, supplierID int64) error
	RemoveSupplierFromProduct(productID, supplierID int64) error

	AddProductImage(productID int64, req AddProductImageRequest) (*models.ProductImage, error)
	GetProductImages(productID int64) ([]models.ProductImage, error)
	DeleteProductImage(imageID int64) error
}

type productService struct {
	db            *sql.DB
	productRepo   repositories.ProductRepository
	supplierRepo  repositories.SupplierRepository
	inventoryRepo repositories.InventoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(
	db *sql.DB,
	productRepo repositories.ProductRepository,
	supplierRepo repositories.SupplierRepository,
	inventoryRepo repositories.InventoryRepository,
) ProductService {
	return &productService{
		db:            db,
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		inventoryRepo: inventoryRepo,
	}
}

func productFromRequest(req ProductRequest) (*models.Product, error) {
	if !models.IsValidProductType(req.ProductType) {
		return nil, ErrInvalidProductType
	}
	if req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	slug, err := resolveSlug(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &models.Product{
		Name:         req.Name,
		Slug:         slug,
		ProductType:  req.ProductType,
		Description:  req.Description,
		Price:        req.Price,
		AnimalTypeID: req.AnimalTypeID,
		IsActive:     isActive,
		Age:          req.Age,
	}
	if req.Live != nil {
		product.Live = &models.LiveAnimalDetails{
			Gender: req.Live.Gender,
			Weight: req.Live.Weight,
			Breed:  req.Live.Breed,
		}
	}
	if req.Meat != nil {
		product.Meat = &models.MeatDetails{
			CutType:       req.Meat.CutType,
			Packaging:     req.Meat.Packaging,
			WeightPerUnit: req.Meat.WeightPerUnit,
			IsFrozen:      req.Meat.IsFrozen,
		}
	}
	if req.Egg != nil {
		quantityPerPack := 1
		if req.Egg.QuantityPerPack != nil {
			quantityPerPack = *req.Egg.QuantityPerPack
		}
		product.Egg = &models.EggDetails{
			Size:            req.Egg.Size,
			Color:           req.Egg.Color,
			QuantityPerPack: &quantityPerPack,
		}
	}
	return product, nil
}

// CreateProduct stores a new product, links the requested suppliers and
// creates its inventory row, all in one transaction. Every product has
// exactly one inventory row by the time it is queryable.
func (s *productService) CreateProduct(req ProductRequest) (*models.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.productRepo.Create(tx, product); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrProductConflict, err)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAnimalTypeNotFound
		}
		return nil, fmt.Errorf("creating product: %w", err)
	}

	for _, supplierID := range req.SupplierIDs {
		if err := s.productRepo.AddSupplier(tx, product.ID, supplierID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrSupplierNotFound
			}
			if errors.Is(err, repositories.ErrDuplicateKey) {
				continue
			}
			return nil, fmt.Errorf("linking supplier %d: %w", supplierID, err)
		}
	}

	if _, err := s.inventoryRepo.EnsureForProduct(tx, product.ID); err != nil {
		return nil, fmt.Errorf("creating inventory for product %d: %w", product.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return s.GetProductByID(product.ID)
}

func (s *productService) GetProductByID(id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("getting product %d: %w", id, err)
	}

	suppliers, err := s.supplierRepo.GetByProductID(id)
	if err != nil {
		return nil, fmt.Errorf("getting suppliers for product %d: %w", id, err)
	}
	product.Suppliers = suppliers
	return product, nil
}

func (s *productService) GetAllProducts(filters models.ProductFilters) ([]models.Product, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	if filters.ProductType != nil && *filters.ProductType != "" && !models.IsValidProductType(*filters.ProductType) {
		return nil, 0, ErrInvalidProductType
	}

	products, totalCount, err := s.productRepo.GetAll(filters)
	if err != nil {
		return nil, 0, err
	}

	// One batched image query instead of one per product.
	productIDs := make([]int64, 0, len(products))
	for i := range products {
		productIDs = append(productIDs, products[i].ID)
	}
	imagesByProduct, err := s.productRepo.GetImagesByProductIDs(productIDs)
	if err != nil {
		return nil, 0, err
	}
	for i := range products {
		images := imagesByProduct[products[i].ID]
		if images == nil {
			images = []models.ProductImage{}
		}
		products[i].Images = images
	}
	return products, totalCount, nil
}

// UpdateProduct replaces the product's fields and, when the payload carries
// supplier_ids, reconciles the supplier links to exactly that set in the
// same transaction. An absent supplier_ids leaves the links untouched.
func (s *productService) UpdateProduct(id int64, req ProductRequest) (*models.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	product.ID = id

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.productRepo.Update(tx, product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrProductConflict, err)
		}
		return nil, fmt.Errorf("updating product %d: %w", id, err)
	}

	if req.SupplierIDs != nil {
		if err := s.reconcileSuppliers(tx, id, req.SupplierIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return s.GetProductByID(id)
}

// reconcileSuppliers brings the product's supplier links to exactly the
// requested set: links outside it are removed, missing ones are added.
func (s *productService) reconcileSuppliers(tx repositories.SQLExecutor, productID int64, supplierIDs []int64) error {
	current, err := s.supplierRepo.GetByProductID(productID)
	if err != nil {
		return fmt.Errorf("getting suppliers for product %d: %w", productID, err)
	}

	linked := make(map[int64]bool, len(current))
	for _, supplier := range current {
		linked[supplier.ID] = true
	}
	requested := make(map[int64]bool, len(supplierIDs))
	for _, supplierID := range supplierIDs {
		requested[supplierID] = true
	}

	for _, supplier := range current {
		if requested[supplier.ID] {
			continue
		}
		if err := s.productRepo.RemoveSupplier(tx, productID, supplier.ID); err != nil {
			return fmt.Errorf("unlinking supplier %d from product %d: %w", supplier.ID, productID, err)
		}
	}
	for _, supplierID := range supplierIDs {
		if linked[supplierID] {
			continue
		}
		linked[supplierID] = true // repeated IDs in the payload link once
		if err := s.productRepo.AddSupplier(tx, productID, supplierID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrSupplierNotFound
			}
			return fmt.Errorf("linking supplier %d to product %d: %w", supplierID, productID, err)
		}
	}
	return nil
}

// DeleteProduct removes a product along with its images, supplier links,
// inventory row and transaction history.
func (s *productService) DeleteProduct(id int64) error {
	if err := s.productRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	return nil
}

func (s *productService) AddSupplierToProduct(productID, supplierID int64) error {
	if err := s.productRepo.AddSupplier(s.db, productID, supplierID); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return ErrSupplierLinkExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("linking supplier %d to product %d: %w", supplierID, productID, err)
	}
	return nil
}

func (s *productService) RemoveSupplierFromProduct(productID, supplierID int64) error {
	if err := s.productRepo.RemoveSupplier(s.db, productID, supplierID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("unlinking supplier %d from product %d: %w", supplierID, productID, err)
	}
	return nil
}

func (s *productService) AddProductImage(productID int64, req AddProductImageRequest) (*models.ProductImage, error) {
	image := &models.ProductImage{
		ProductID: productID,
		ImageURL:  req.ImageURL,
		AltText:   req.AltText,
		IsPrimary: req.IsPrimary,
	}
	if _, err := s.productRepo.AddImage(s.db, image); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("adding image to product %d: %w", productID, err)
	}
	return image, nil
}

func (s *productService) GetProductImages(productID int64) ([]models.ProductImage, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("getting product %d: %w", productID, err)
	}
	return s.productRepo.GetImagesByProductID(productID)
}

func (s *productService) DeleteProductImage(imageID int64) error {
	if err := s.productRepo.DeleteImage(s.db, imageID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductImageNotFound
		}
		return fmt.Errorf("deleting product image %d: %w", imageID, err)
	}
	return nil
}
