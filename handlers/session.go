package handlers

import (
	"net/http"

	"gemtrade/models"
	"gemtrade/services/session"
	"gemtrade/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the session operations.
type SessionHandler struct {
	Service session.Service
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{Service: svc}
}

// writeOutcome maps a session outcome onto the HTTP response. Failed
// outcomes carry only the user-facing sentence.
func writeOutcome(c *gin.Context, out session.Outcome, failureStatus int) {
	if !out.Success {
		c.JSON(failureStatus, out)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SignUpHandler handles POST /api/session/signup.
func (h *SessionHandler) SignUpHandler(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	writeOutcome(c, h.Service.SignUp(c.Request.Context(), req), http.StatusBadRequest)
}

// SignInHandler handles POST /api/session/signin.
func (h *SessionHandler) SignInHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	writeOutcome(c, h.Service.SignIn(c.Request.Context(), req.Email, req.Password), http.StatusUnauthorized)
}

// SignOutHandler handles POST /api/session/signout.
func (h *SessionHandler) SignOutHandler(c *gin.Context) {
	token := c.GetString("token")
	writeOutcome(c, h.Service.SignOut(c.Request.Context(), token), http.StatusBadRequest)
}

// CurrentHandler handles GET /api/session/me.
func (h *SessionHandler) CurrentHandler(c *gin.Context) {
	email := c.GetString("email")
	writeOutcome(c, h.Service.Current(c.Request.Context(), email), http.StatusBadRequest)
}

// ConfirmHandler handles POST /api/session/confirm.
func (h *SessionHandler) ConfirmHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	writeOutcome(c, h.Service.Confirm(c.Request.Context(), req.Email, req.Code), http.StatusBadRequest)
}

// ResendCodeHandler handles POST /api/session/resend-code.
func (h *SessionHandler) ResendCodeHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	writeOutcome(c, h.Service.ResendCode(c.Request.Context(), req.Email), http.StatusBadRequest)
}

// ForgotPasswordHandler handles POST /api/session/forgot-password.
func (h *SessionHandler) ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	writeOutcome(c, h.Service.ForgotPassword(c.Request.Context(), req.Email), http.StatusBadRequest)
}

// ResetPasswordHandler handles POST /api/session/reset-password.
func (h *SessionHandler) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	writeOutcome(c, h.Service.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword), http.StatusBadRequest)
}

// UpdateProfileHandler handles PATCH /api/session/profile.
func (h *SessionHandler) UpdateProfileHandler(c *gin.Context) {
	var req session.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	email := c.GetString("email")
	writeOutcome(c, h.Service.UpdateAttributes(c.Request.Context(), email, req), http.StatusBadRequest)
}
