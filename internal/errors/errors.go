package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error sends a single-error response of the shape {"error": "<message>"}.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// ValidationFailed sends a 400 with the shape {"errors": ["field: message", ...]}.
func ValidationFailed(c *gin.Context, messages []string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": messages})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, reason string) {
	if reason == "" {
		reason = "authentication required"
	}
	Error(c, http.StatusUnauthorized, "Unauthorized: "+reason)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(c, http.StatusNotFound, message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Error(c, http.StatusBadRequest, message)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	Error(c, http.StatusConflict, message)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(c, http.StatusInternalServerError, message)
}

// BindError translates a request-binding failure. Field constraint violations
// become a 400 {"errors": [...]} list; anything else (malformed JSON, wrong
// types) becomes a 400 {"error": ...}.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		messages := make([]string, len(verrs))
		for i, fe := range verrs {
			messages[i] = fieldName(fe.Field()) + ": " + constraintMessage(fe)
		}
		ValidationFailed(c, messages)
		return
	}
	BadRequest(c, "Invalid request body")
}

func fieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
