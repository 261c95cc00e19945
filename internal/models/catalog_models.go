package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product type tags. The tag selects which detail group is meaningful; the
// storage layer accepts all groups regardless of tag (no cross-field
// constraint), presentation dispatches on the tag only.
const (
	ProductTypeLive = "LIVE"
	ProductTypeMeat = "MEAT"
	ProductTypeEgg  = "EGG"
)

// ProductTypeLabel returns the human-readable label for a product type tag,
// or an empty string for an unknown tag.
func ProductTypeLabel(productType string) string {
	switch productType {
	case ProductTypeLive:
		return "Live Animal"
	case ProductTypeMeat:
		return "Meat"
	case ProductTypeEgg:
		return "Egg"
	default:
		return ""
	}
}

// IsValidProductType reports whether the tag is one of the closed variant set.
func IsValidProductType(productType string) bool {
	return ProductTypeLabel(productType) != ""
}

// AnimalType represents a species/category grouping for products
// (e.g., Poultry, Goat).
type AnimalType struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	Slug        string    `json:"slug" db:"slug"`
	Age         int       `json:"age" db:"age"` // typical age in months, a category-level attribute
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Supplier represents a supplier of animals and products.
type Supplier struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" binding:"required"`
	ContactPerson *string   `json:"contact_person,omitempty" db:"contact_person"`
	Email         *string   `json:"email,omitempty" db:"email"`
	Phone         string    `json:"phone" db:"phone"`
	Address       string    `json:"address" db:"address"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// LiveAnimalDetails is the LIVE variant field group.
type LiveAnimalDetails struct {
	Gender *string          `json:"gender,omitempty" db:"gender"` // MALE or FEMALE
	Weight *decimal.Decimal `json:"weight,omitempty" db:"weight"` // kg
	Breed  *string          `json:"breed,omitempty" db:"breed"`
}

// MeatDetails is the MEAT variant field group.
type MeatDetails struct {
	CutType       *string          `json:"cut_type,omitempty" db:"cut_type"`
	Packaging     *string          `json:"packaging,omitempty" db:"packaging"`
	WeightPerUnit *decimal.Decimal `json:"weight_per_unit,omitempty" db:"weight_per_unit"` // kg
	IsFrozen      bool             `json:"is_frozen" db:"is_frozen"`
}

// EggDetails is the EGG variant field group.
type EggDetails struct {
	Size            *string `json:"size,omitempty" db:"size"` // S, M, L, XL
	Color           *string `json:"color,omitempty" db:"color"`
	QuantityPerPack *int    `json:"quantity_per_pack,omitempty" db:"quantity_per_pack"`
}

// Product is a sellable item: a common header plus one of three variant
// detail groups selected by ProductType.
type Product struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name" binding:"required"`
	Slug         string          `json:"slug" db:"slug"`
	ProductType  string          `json:"product_type" db:"product_type" binding:"required"`
	Description  *string         `json:"description,omitempty" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	AnimalTypeID int64           `json:"animal_type_id" db:"animal_type_id" binding:"required"`
	IsActive     bool            `json:"is_active" db:"is_active"`
	Age          *int            `json:"age,omitempty" db:"age"` // months

	Live *LiveAnimalDetails `json:"live,omitempty"`
	Meat *MeatDetails       `json:"meat,omitempty"`
	Egg  *EggDetails        `json:"egg,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	AnimalType *AnimalType    `json:"animal_type,omitempty"` // joined category
	Suppliers  []Supplier     `json:"suppliers,omitempty"`
	Images     []ProductImage `json:"images,omitempty"`
}

// TypeLabel returns the human-readable label for the product's variant tag.
func (p *Product) TypeLabel() string {
	return ProductTypeLabel(p.ProductType)
}

// ActiveDetails returns the detail group selected by the variant tag. Groups
// outside the active one may still be populated from storage; callers that
// present a product dispatch through here instead of inspecting raw fields.
func (p *Product) ActiveDetails() interface{} {
	switch p.ProductType {
	case ProductTypeLive:
		return p.Live
	case ProductTypeMeat:
		return p.Meat
	case ProductTypeEgg:
		return p.Egg
	default:
		return nil
	}
}

// ProductFilters narrows product listings.
type ProductFilters struct {
	AnimalTypeID *int64
	ProductType  *string
	IsActive     *bool
	Page         int
	PageSize     int
}

// ProductImage is one stored image reference for a product. Nothing enforces
// a single primary image.
type ProductImage struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	ImageURL  string    `json:"image_url" db:"image_url" binding:"required"`
	AltText   *string   `json:"alt_text,omitempty" db:"alt_text"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
