package utils

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// InitValidator makes field-level validation errors report the JSON payload
// key instead of the Go struct field name. Call once at startup.
func InitValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// APIError represents a standardized JSON error response.
type APIError struct {
	Code    string `json:"code"`              // Application-specific error code
	Message string `json:"message"`           // User-friendly error message
	Details string `json:"details,omitempty"` // Optional technical details
}

// Common API error codes.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeInsufficientData = "INSUFFICIENT_DATA"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeExternalService  = "EXTERNAL_SERVICE_ERROR"
)

// RespondWithError sends a standardized JSON error response.
func RespondWithError(c *gin.Context, statusCode int, apiErr APIError) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": apiErr})
}

// FieldError describes a single failed validation rule on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RespondWithValidationError maps a binding error to a 400 response. When the
// error is a validator.ValidationErrors, each failed field is reported
// individually under "fields"; otherwise the raw message goes into details.
func RespondWithValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  APIError{Code: ErrCodeValidation, Message: "Invalid request payload"},
			"fields": fields,
		})
		return
	}
	RespondWithError(c, http.StatusBadRequest, APIError{
		Code: ErrCodeValidation, Message: "Invalid request payload", Details: err.Error(),
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is below the allowed minimum (" + fe.Param() + ")"
	case "max":
		return "Value exceeds the allowed maximum (" + fe.Param() + ")"
	case "gt":
		return "Must be greater than " + fe.Param()
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		return "Failed validation rule: " + fe.Tag()
	}
}
