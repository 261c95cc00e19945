package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"farmstock_backend/internal/services"
	"farmstock_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AnimalTypeHandler handles HTTP requests for animal type management.
type AnimalTypeHandler struct {
	animalTypeService services.AnimalTypeService
}

// NewAnimalTypeHandler creates a new AnimalTypeHandler.
func NewAnimalTypeHandler(animalTypeService services.AnimalTypeService) *AnimalTypeHandler {
	return &AnimalTypeHandler{animalTypeService: animalTypeService}
}

// CreateAnimalType handles POST /api/v1/animal-types
func (h *AnimalTypeHandler) CreateAnimalType(c *gin.Context) {
	var req services.CreateAnimalTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	animalType, err := h.animalTypeService.CreateAnimalType(req)
	if err != nil {
		if errors.Is(err, services.ErrAnimalTypeConflict) {
			utils.RespondWithError(c, http.StatusConflict, utils.APIError{
				Code: utils.ErrCodeConflict, Message: err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrInvalidSlug) {
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeValidation, Message: err.Error(),
			})
			return
		}
		utils.LogError(err, "Failed to create animal type")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to create animal type",
		})
		return
	}
	c.JSON(http.StatusCreated, animalType)
}

// GetAnimalType handles GET /api/v1/animal-types/:id
func (h *AnimalTypeHandler) GetAnimalType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid animal type ID",
		})
		return
	}

	animalType, err := h.animalTypeService.GetAnimalTypeByID(id)
	if err != nil {
		if errors.Is(err, services.ErrAnimalTypeNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Animal type not found",
			})
			return
		}
		utils.LogError(err, "Failed to get animal type")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get animal type",
		})
		return
	}
	c.JSON(http.StatusOK, animalType)
}

// GetAllAnimalTypes handles GET /api/v1/animal-types
func (h *AnimalTypeHandler) GetAllAnimalTypes(c *gin.Context) {
	page, pageSize := parsePagination(c)

	animalTypes, totalCount, err := h.animalTypeService.GetAllAnimalTypes(page, pageSize)
	if err != nil {
		utils.LogError(err, "Failed to get animal types")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get animal types",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        animalTypes,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// UpdateAnimalType handles PUT /api/v1/animal-types/:id
func (h *AnimalTypeHandler) UpdateAnimalType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid animal type ID",
		})
		return
	}

	var req services.UpdateAnimalTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	animalType, err := h.animalTypeService.UpdateAnimalType(id, req)
	if err != nil {
		if errors.Is(err, services.ErrAnimalTypeNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Animal type not found",
			})
			return
		}
		if errors.Is(err, services.ErrAnimalTypeConflict) {
			utils.RespondWithError(c, http.StatusConflict, utils.APIError{
				Code: utils.ErrCodeConflict, Message: err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrInvalidSlug) {
			utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
				Code: utils.ErrCodeValidation, Message: err.Error(),
			})
			return
		}
		utils.LogError(err, "Failed to update animal type")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to update animal type",
		})
		return
	}
	c.JSON(http.StatusOK, animalType)
}

// DeleteAnimalType handles DELETE /api/v1/animal-types/:id
func (h *AnimalTypeHandler) DeleteAnimalType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.APIError{
			Code: utils.ErrCodeBadRequest, Message: "Invalid animal type ID",
		})
		return
	}

	if err := h.animalTypeService.DeleteAnimalType(id); err != nil {
		if errors.Is(err, services.ErrAnimalTypeNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "Animal type not found",
			})
			return
		}
		utils.LogError(err, "Failed to delete animal type")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to delete animal type",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// parsePagination reads the page/page_size query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
