package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"farmstock_backend/internal/services"
	"farmstock_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SupplierHandler handles HTTP requests for supplier management.
type SupplierHandler struct {
	supplierService services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierService services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// CreateSupplier handles POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req services.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	supplier, err := h.supplierService.CreateSupplier(req)
	if err != nil {
		utils.LogError(err, "Failed to create supplier")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to create supplier",
		})
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// GetSupplier handles GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid supplier ID",
		})
		return
	}

	supplier, err := h.supplierService.GetSupplierByID(id)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Supplier not found",
			})
			return
		}
		utils.LogError(err, "Failed to get supplier")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get supplier",
		})
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// GetAllSuppliers handles GET /api/v1/suppliers
func (h *SupplierHandler) GetAllSuppliers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	var isActive *bool
	if activeParam := c.Query("is_active"); activeParam != "" {
		parsed, err := strconv.ParseBool(activeParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeBadRequest, Message: "Invalid is_active filter, expected true or false",
			})
			return
		}
		isActive = &parsed
	}

	suppliers, totalCount, err := h.supplierService.GetAllSuppliers(isActive, page, pageSize)
	if err != nil {
		utils.LogError(err, "Failed to get suppliers")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get suppliers",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        suppliers,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// UpdateSupplier handles PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid supplier ID",
		})
		return
	}

	var req services.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(id, req)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Supplier not found",
			})
			return
		}
		utils.LogError(err, "Failed to update supplier")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to update supplier",
		})
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid supplier ID",
		})
		return
	}

	if err := h.supplierService.DeleteSupplier(id); err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Supplier not found",
			})
			return
		}
		utils.LogError(err, "Failed to delete supplier")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to delete supplier",
		})
		return
	}
	c.Status(http.StatusNoContent)
}
