package handlers

import (
	"errors"
	"net/http"

	"farmstock_backend/internal/services"
	"farmstock_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StorefrontHandler serves the public read-only catalog endpoints.
type StorefrontHandler struct {
	storefrontService services.StorefrontService
}

// NewStorefrontHandler creates a new StorefrontHandler.
func NewStorefrontHandler(storefrontService services.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefrontService: storefrontService}
}

// ListProducts handles GET /api/v1/shop/products
func (h *StorefrontHandler) ListProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filters := services.StorefrontFilters{
		AnimalTypeSlug: c.Query("category"),
		ProductType:    c.Query("type"),
		Page:           page,
		PageSize:       pageSize,
	}

	products, totalCount, err := h.storefrontService.ListProducts(filters)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAnimalTypeNotFound):
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Category not found",
			})
		case errors.Is(err, services.ErrInvalidProductType):
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeValidation, Message: err.Error(),
			})
		default:
			utils.LogError(err, "Failed to list storefront products")
			utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
				Code: utils.ErrCodeInternalServer, Message: "Failed to list products",
			})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        products,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetProduct handles GET /api/v1/shop/products/:slug
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	product, err := h.storefrontService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Product not found",
			})
			return
		}
		utils.LogError(err, "Failed to get storefront product")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get product",
		})
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetProductImages handles GET /api/v1/shop/products/:slug/images
func (h *StorefrontHandler) GetProductImages(c *gin.Context) {
	images, err := h.storefrontService.GetProductImages(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Product not found",
			})
			return
		}
		utils.LogError(err, "Failed to get storefront product images")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get product images",
		})
		return
	}
	c.JSON(http.StatusOK, images)
}

// GetCategories handles GET /api/v1/shop/categories
func (h *StorefrontHandler) GetCategories(c *gin.Context) {
	categories, err := h.storefrontService.GetCategories()
	if err != nil {
		utils.LogError(err, "Failed to get categories")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get categories",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
