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

// InventoryHandler handles HTTP requests for the inventory ledger.
type InventoryHandler struct {
	inventoryService services.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GetInventory handles GET /api/v1/inventory/:id
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid inventory ID",
		})
		return
	}

	inventory, err := h.inventoryService.GetInventoryByID(id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Inventory not found",
			})
			return
		}
		utils.LogError(err, "Failed to get inventory")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get inventory",
		})
		return
	}
	c.JSON(http.StatusOK, inventory)
}

// GetInventoryByProduct handles GET /api/v1/products/:id/inventory
func (h *InventoryHandler) GetInventoryByProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid product ID",
		})
		return
	}

	inventory, err := h.inventoryService.GetInventoryByProductID(productID)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Inventory not found for this product",
			})
			return
		}
		utils.LogError(err, "Failed to get product inventory")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get product inventory",
		})
		return
	}
	c.JSON(http.StatusOK, inventory)
}

// GetAllInventories handles GET /api/v1/inventory
func (h *InventoryHandler) GetAllInventories(c *gin.Context) {
	page, pageSize := parsePagination(c)

	inventories, totalCount, err := h.inventoryService.GetAllInventories(page, pageSize)
	if err != nil {
		utils.LogError(err, "Failed to get inventories")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get inventories",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        inventories,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// UpdateInventorySettings handles PUT /api/v1/inventory/:id/settings
func (h *InventoryHandler) UpdateInventorySettings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid inventory ID",
		})
		return
	}

	var req services.UpdateInventorySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	inventory, err := h.inventoryService.UpdateInventorySettings(id, req)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Inventory not found",
			})
			return
		}
		utils.LogError(err, "Failed to update inventory settings")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to update inventory settings",
		})
		return
	}
	c.JSON(http.StatusOK, inventory)
}

// RecordTransaction handles POST /api/v1/inventory/:id/transactions
func (h *InventoryHandler) RecordTransaction(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid inventory ID",
		})
		return
	}
	h.recordTransaction(c, id, h.inventoryService.RecordTransaction)
}

// RecordTransactionForProduct handles POST /api/v1/products/:id/transactions
func (h *InventoryHandler) RecordTransactionForProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid product ID",
		})
		return
	}
	h.recordTransaction(c, productID, h.inventoryService.RecordTransactionForProduct)
}

func (h *InventoryHandler) recordTransaction(
	c *gin.Context,
	id int64,
	record func(int64, services.RecordTransactionRequest) (*models.InventoryTransaction, error),
) {
	var req services.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	transaction, err := record(id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInventoryNotFound):
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Inventory not found",
			})
		case errors.Is(err, services.ErrSupplierNotFound):
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeValidation, Message: "Referenced supplier does not exist",
			})
		case errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrInvalidTransactionType):
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeValidation, Message: err.Error(),
			})
		case errors.Is(err, services.ErrInsufficientStock):
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeInsufficientData, Message: "Transaction would drive stock quantity below zero",
			})
		default:
			utils.LogError(err, "Failed to record inventory transaction")
			utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
				Code: utils.ErrCodeInternalServer, Message: "Failed to record inventory transaction",
			})
		}
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// GetTransactions handles GET /api/v1/inventory-transactions
func (h *InventoryHandler) GetTransactions(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filters := models.TransactionFilters{Page: page, PageSize: pageSize}

	if inventoryParam := c.Query("inventory_id"); inventoryParam != "" {
		inventoryID, err := strconv.ParseInt(inventoryParam, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeBadRequest, Message: "Invalid inventory_id filter",
			})
			return
		}
		filters.InventoryID = &inventoryID
	}
	if transactionType := c.Query("transaction_type"); transactionType != "" {
		filters.TransactionType = &transactionType
	}
	if supplierParam := c.Query("supplier_id"); supplierParam != "" {
		supplierID, err := strconv.ParseInt(supplierParam, 10, 64)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeBadRequest, Message: "Invalid supplier_id filter",
			})
			return
		}
		filters.SupplierID = &supplierID
	}

	transactions, totalCount, err := h.inventoryService.GetTransactions(filters)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransactionType) {
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeValidation, Message: err.Error(),
			})
			return
		}
		utils.LogError(err, "Failed to get inventory transactions")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get inventory transactions",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        transactions,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}
