package handlers

import (
	"errors"
	"net/http"

	"farmstock_backend/internal/services"
	"farmstock_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles administrative authentication requests.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			utils.RespondWithError(c, http.StatusConflict, utils.APIError{
				Code: utils.ErrCodeConflict, Message: "User with this username or email already exists",
			})
			return
		}
		utils.LogError(err, "Failed to register user")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to register user",
		})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithValidationError(c, err)
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, http.StatusUnauthorized, utils.APIError{
				Code: utils.ErrCodeUnauthorized, Message: "Invalid username or password",
			})
			return
		}
		utils.LogError(err, "Failed to log in user")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to log in",
		})
		return
	}
	c.JSON(http.StatusOK, response)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, utils.APIError{
				Code: utils.ErrCodeNotFound, Message: "User not found",
			})
			return
		}
		utils.LogError(err, "Failed to get current user")
		utils.RespondWithError(c, http.StatusInternalServerError, utils.APIError{
			Code: utils.ErrCodeInternalServer, Message: "Failed to get current user",
		})
		return
	}
	c.JSON(http.StatusOK, user)
}
