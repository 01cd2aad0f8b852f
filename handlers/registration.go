package handlers

import (
	"errors"
	"net/http"
	"time"

	"gemtrade/models"
	"gemtrade/services/identity"
	"gemtrade/services/registration"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegistrationHandler exposes the registration endpoint.
type RegistrationHandler struct {
	Service registration.Service
}

// NewRegistrationHandler creates a RegistrationHandler.
func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{Service: svc}
}

// RegisterHandler handles POST /register. Validation failures return the
// full detail list; identity-provider failures map onto the error taxonomy
// without leaking internal detail.
func (h *RegistrationHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": []string{"request body is not valid JSON"},
		})
		return
	}

	result, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		var ve *registration.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": ve.Details})
			return
		}

		switch identity.KindOf(err) {
		case identity.KindAlreadyExists:
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		case identity.KindInvalidCredential:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password"})
		case identity.KindInvalidParameter:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parameter"})
		default:
			logger.Error("RegisterHandler: registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":              "User registered successfully. Please confirm your email.",
		"userId":               result.UserID,
		"email":                result.Email,
		"role":                 result.Role,
		"requiresConfirmation": result.RequiresConfirmation,
	})
}

// HelloHandler is a diagnostic echo.
func HelloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hi, I'm GemTrade",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
