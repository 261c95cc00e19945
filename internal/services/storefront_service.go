package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/repositories"

	"github.com/shopspring/decimal"
)

// Availability labels surfaced by the public catalog. Derived from is_active
// only; stock quantity does not influence them, so an active product with
// zero stock still reads "available".
const (
	AvailabilityAvailable = "available"
	AvailabilitySold      = "sold"
)

// StorefrontProduct is the consumer-facing product projection.
type StorefrontProduct struct {
	ID          int64           `json:"id"`
	Images      []string        `json:"images"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Age         string          `json:"age"`
}

// StorefrontImage is the consumer-facing image projection.
type StorefrontImage struct {
	Image string `json:"image"`
}

// StorefrontFilters narrows the public product listing.
type StorefrontFilters struct {
	AnimalTypeSlug string
	ProductType    string
	Page           int
	PageSize       int
}

// StorefrontService defines the read-only public catalog projections.
type StorefrontService interface {
	ListProducts(filters StorefrontFilters) ([]StorefrontProduct, int, error)
	GetProductBySlug(slug string) (*StorefrontProduct, error)
	GetProductImages(slug string) ([]StorefrontImage, error)
	GetCategories() ([]string, error)
}

type storefrontService struct {
	productRepo    repositories.ProductRepository
	animalTypeRepo repositories.AnimalTypeRepository
}

// NewStorefrontService creates a new StorefrontService.
func NewStorefrontService(
	productRepo repositories.ProductRepository,
	animalTypeRepo repositories.AnimalTypeRepository,
) StorefrontService {
	return &storefrontService{productRepo: productRepo, animalTypeRepo: animalTypeRepo}
}

// FormatAge renders an age in months for display: "6 months old" when
// present, "N/A" when absent. A zero age counts as absent.
func FormatAge(age *int) string {
	if age == nil || *age == 0 {
		return "N/A"
	}
	return strconv.Itoa(*age) + " months old"
}

// Availability maps the active flag to its public label.
func Availability(isActive bool) string {
	if isActive {
		return AvailabilityAvailable
	}
	return AvailabilitySold
}

// ProjectProduct builds the public projection of a product. The category is
// the resolved animal type name and the type is the human-readable variant label.
func ProjectProduct(product *models.Product) StorefrontProduct {
	images := make([]string, 0, len(product.Images))
	for _, image := range product.Images {
		images = append(images, image.ImageURL)
	}

	description := ""
	if product.Description != nil {
		description = *product.Description
	}
	category := ""
	if product.AnimalType != nil {
		category = product.AnimalType.Name
	}

	return StorefrontProduct{
		ID:          product.ID,
		Images:      images,
		Name:        product.Name,
		Description: description,
		Price:       product.Price,
		Status:      Availability(product.IsActive),
		Category:    category,
		Type:        product.TypeLabel(),
		Age:         FormatAge(product.Age),
	}
}

// ListProducts returns active products only, projected for public consumption.
func (s *storefrontService) ListProducts(filters StorefrontFilters) ([]StorefrontProduct, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 20
	}

	isActive := true
	repoFilters := models.ProductFilters{
		IsActive: &isActive,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}
	if filters.ProductType != "" {
		if !models.IsValidProductType(filters.ProductType) {
			return nil, 0, ErrInvalidProductType
		}
		repoFilters.ProductType = &filters.ProductType
	}
	if filters.AnimalTypeSlug != "" {
		animalType, err := s.animalTypeRepo.GetBySlug(filters.AnimalTypeSlug)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, 0, ErrAnimalTypeNotFound
			}
			return nil, 0, fmt.Errorf("resolving category %q: %w", filters.AnimalTypeSlug, err)
		}
		repoFilters.AnimalTypeID = &animalType.ID
	}

	products, totalCount, err := s.productRepo.GetAll(repoFilters)
	if err != nil {
		return nil, 0, err
	}

	productIDs := make([]int64, 0, len(products))
	for i := range products {
		productIDs = append(productIDs, products[i].ID)
	}
	imagesByProduct, err := s.productRepo.GetImagesByProductIDs(productIDs)
	if err != nil {
		return nil, 0, err
	}

	projections := make([]StorefrontProduct, 0, len(products))
	for i := range products {
		products[i].Images = imagesByProduct[products[i].ID]
		projections = append(projections, ProjectProduct(&products[i]))
	}
	return projections, totalCount, nil
}

// getActiveBySlug resolves a slug to a product, treating inactive products
// as absent. The public catalog only ever exposes active products.
func (s *storefrontService) getActiveBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", slug, err)
	}
	if !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *storefrontService) GetProductBySlug(slug string) (*StorefrontProduct, error) {
	product, err := s.getActiveBySlug(slug)
	if err != nil {
		return nil, err
	}
	projection := ProjectProduct(product)
	return &projection, nil
}

func (s *storefrontService) GetProductImages(slug string) ([]StorefrontImage, error) {
	product, err := s.getActiveBySlug(slug)
	if err != nil {
		return nil, err
	}
	projections := make([]StorefrontImage, 0, len(product.Images))
	for _, image := range product.Images {
		projections = append(projections, StorefrontImage{Image: image.ImageURL})
	}
	return projections, nil
}

// GetCategories returns the deduplicated union of animal type names and the
// human-readable labels of the product types present in the catalog. The
// result is sorted for stable output, but callers must treat it as a set.
func (s *storefrontService) GetCategories() ([]string, error) {
	names, err := s.animalTypeRepo.GetNames()
	if err != nil {
		return nil, fmt.Errorf("getting animal type names: %w", err)
	}
	productTypes, err := s.productRepo.GetDistinctProductTypes()
	if err != nil {
		return nil, fmt.Errorf("getting product types: %w", err)
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			categories = append(categories, name)
		}
	}
	for _, productType := range productTypes {
		label := models.ProductTypeLabel(productType)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		categories = append(categories, label)
	}
	sort.Strings(categories)
	return categories, nil
}
