package handlers

import (
	"errors"
	"net/http"

	"farmstock_backend/internal/services"
	"farmstock_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// IntakeHandler serves the public order request and contact message forms.
type IntakeHandler struct {
	intakeService services.IntakeService
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(intakeService services.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

// SubmitOrder handles POST /api/v1/orders
func (h *IntakeHandler) SubmitOrder(c *gin.Context) {
	var req services.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	if err := h.intakeService.SubmitOrder(req); err != nil {
		if errors.Is(err, services.ErrNotificationFailed) {
			utils.LogError(err, "Order notification delivery failed")
			utils.RespondWithError(c, http.StatusBadGateway, utils.APIError{
				Code: utils.ErrCodeExternalService, Message: "Your order could not be submitted, please try again later",
			})
			return
		}
		utils.LogError(err, "Failed to submit order")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to submit order",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order request submitted successfully"})
}

// SubmitContact handles POST /api/v1/contact
func (h *IntakeHandler) SubmitContact(c *gin.Context) {
	var req services.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	if err := h.intakeService.SubmitContact(req); err != nil {
		if errors.Is(err, services.ErrNotificationFailed) {
			utils.LogError(err, "Contact notification delivery failed")
			utils.RespondWithError(c, http.StatusBadGateway, utils.APIError{
				Code: utils.ErrCodeExternalService, Message: "Your message could not be submitted, please try again later",
			})
			return
		}
		utils.LogError(err, "Failed to submit contact message")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to submit contact message",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message submitted successfully"})
}
