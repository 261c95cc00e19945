package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"farmstock_backend/internal/models"
	"farmstock_backend/internal/services"
	"farmstock_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles HTTP requests for product management.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func respondProductError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
			Code: utils.ErrCodeNotFound, Message: "Product not found",
		})
	case errors.Is(err, services.ErrAnimalTypeNotFound):
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeValidation, Message: "Referenced animal type does not exist",
		})
	case errors.Is(err, services.ErrSupplierNotFound):
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeValidation, Message: "Referenced supplier does not exist",
		})
	case errors.Is(err, services.ErrProductConflict):
		utils.RespondWithError(c, http.StatusConflict, utils.APIError{
			Code: utils.ErrCodeConflict, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidProductType),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrInvalidSlug):
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeValidation, Message: err.Error(),
		})
	default:
		utils.LogError(err, action)
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: action,
		})
	}
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	product, err := h.productService.CreateProduct(req)
	if err != nil {
		respondProductError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid product ID",
		})
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		respondProductError(c, err, "Failed to get product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetAllProducts handles GET /api/v1/products
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filters := models.ProductFilters{Page: page, PageSize: pageSize}

	if animalTypeParam := c.Query("animal_type_id"); animalTypeParam != "" {
		animalTypeID, err := strconv.ParseInt(animalTypeParam, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeBadRequest, Message: "Invalid animal_type_id filter",
			})
			return
		}
		filters.AnimalTypeID = &animalTypeID
	}
	if productType := c.Query("product_type"); productType != "" {
		filters.ProductType = &productType
	}
	if activeParam := c.Query("is_active"); activeParam != "" {
		isActive, err := strconv.ParseBool(activeParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeBadRequest, Message: "Invalid is_active filter, expected true or false",
			})
			return
		}
		filters.IsActive = &isActive
	}

	products, totalCount, err := h.productService.GetAllProducts(filters)
	if err != nil {
		respondProductError(c, err, "Failed to get products")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        products,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid product ID",
		})
		return
	}

	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(id, req)
	if err != nil {
		respondProductError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid product ID",
		})
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		respondProductError(c, err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddSupplierToProduct handles POST /api/v1/products/:id/suppliers/:supplier_id
func (h *ProductHandler) AddSupplierToProduct(c *gin.Context) {
	productID, supplierID, ok := parseProductSupplierIDs(c)
	if !ok {
		return
	}

	if err := h.productService.AddSupplierToProduct(productID, supplierID); err != nil {
		if errors.Is(err, services.ErrSupplierLinkExists) {
			utils.RespondWithError(c, http.StatusConflict, utils.APIError{
				Code: utils.ErrCodeConflict, Message: "Supplier is already linked to this product",
			})
			return
		}
		respondProductError(c, err, "Failed to link supplier to product")
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveSupplierFromProduct handles DELETE /api/v1/products/:id/suppliers/:supplier_id
func (h *ProductHandler) RemoveSupplierFromProduct(c *gin.Context) {
	productID, supplierID, ok := parseProductSupplierIDs(c)
	if !ok {
		return
	}

	if err := h.productService.RemoveSupplierFromProduct(productID, supplierID); err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Supplier is not linked to this product",
			})
			return
		}
		respondProductError(c, err, "Failed to unlink supplier from product")
		return
	}
	c.Status(http.StatusNoContent)
}

func parseProductSupplierIDs(c *gin.Context) (int64, int64, bool) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid product ID",
		})
		return 0, 0, false
	}
	supplierID, err := strconv.ParseInt(c.Param("supplier_id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid supplier ID",
		})
		return 0, 0, false
	}
	return productID, supplierID, true
}

// AddProductImage handles POST /api/v1/products/:id/images
func (h *ProductHandler) AddProductImage(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid product ID",
		})
		return
	}

	var req services.AddProductImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	image, err := h.productService.AddProductImage(productID, req)
	if err != nil {
		respondProductError(c, err, "Failed to add product image")
		return
	}
	c.JSON(http.StatusCreated, image)
}

// GetProductImages handles GET /api/v1/products/:id/images
func (h *ProductHandler) GetProductImages(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid product ID",
		})
		return
	}

	images, err := h.productService.GetProductImages(productID)
	if err != nil {
		respondProductError(c, err, "Failed to get product images")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": images})
}

// DeleteProductImage handles DELETE /api/v1/product-images/:id
func (h *ProductHandler) DeleteProductImage(c *gin.Context) {
	imageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid image ID",
		})
		return
	}

	if err := h.productService.DeleteProductImage(imageID); err != nil {
		if errors.Is(err, services.ErrProductImageNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Product image not found",
			})
			return
		}
		respondProductError(c, err, "Failed to delete product image")
		return
	}
	c.Status(http.StatusNoContent)
}
