package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gemtrade/models"
	"gemtrade/services/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubSessionService struct {
	outcome   session.Outcome
	lastEmail string
}

func (s *stubSessionService) SignUp(ctx context.Context, req models.RegistrationRequest) session.Outcome {
	return s.outcome
}

func (s *stubSessionService) SignIn(ctx context.Context, email, password string) session.Outcome {
	s.lastEmail = email
	return s.outcome
}

func (s *stubSessionService) SignOut(ctx context.Context, token string) session.Outcome {
	return s.outcome
}

func (s *stubSessionService) Current(ctx context.Context, email string) session.Outcome {
	s.lastEmail = email
	return s.outcome
}

func (s *stubSessionService) Confirm(ctx context.Context, email, code string) session.Outcome {
	return s.outcome
}

func (s *stubSessionService) ResendCode(ctx context.Context, email string) session.Outcome {
	return s.outcome
}

func (s *stubSessionService) ForgotPassword(ctx context.Context, email string) session.Outcome {
	return s.outcome
}

func (s *stubSessionService) ResetPassword(ctx context.Context, email, code, newPassword string) session.Outcome {
	return s.outcome
}

func (s *stubSessionService) UpdateAttributes(ctx context.Context, email string, req session.UpdateRequest) session.Outcome {
	s.lastEmail = email
	return s.outcome
}

func TestSignInHandler_FailureIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubSessionService{outcome: session.Outcome{Success: false, Error: "Incorrect email or password."}}
	r := gin.New()
	r.POST("/signin", NewSessionHandler(svc).SignInHandler)

	w := postJSON(t, r, "/signin", gin.H{"email": "a@b.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect email or password.", decodeBody(t, w)["error"])
	assert.Equal(t, "a@b.com", svc.lastEmail)
}

func TestSignInHandler_SuccessCarriesTokenAndSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubSessionService{outcome: session.Outcome{
		Success: true,
		Token:   "signed-token",
		Session: &models.Session{ID: "uid-1", Email: "a@b.com", IsAuthenticated: true},
	}}
	r := gin.New()
	r.POST("/signin", NewSessionHandler(svc).SignInHandler)

	w := postJSON(t, r, "/signin", gin.H{"email": "a@b.com", "password": "Aa1!aaaa"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "signed-token", body["token"])
}

func TestSignInHandler_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubSessionService{}
	r := gin.New()
	r.POST("/signin", NewSessionHandler(svc).SignInHandler)

	w := postJSON(t, r, "/signin", gin.H{"email": "a@b.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastEmail)
}

func TestCurrentHandler_UsesEmailFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubSessionService{outcome: session.Outcome{
		Success: true,
		Session: &models.Session{Email: "a@b.com", IsAuthenticated: true},
	}}
	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		c.Set("email", "a@b.com")
		NewSessionHandler(svc).CurrentHandler(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@b.com", svc.lastEmail)
}

func TestConfirmHandler_FailurePassesSentenceThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubSessionService{outcome: session.Outcome{Success: false, Error: "The code is incorrect."}}
	r := gin.New()
	r.POST("/confirm", NewSessionHandler(svc).ConfirmHandler)

	w := postJSON(t, r, "/confirm", gin.H{"email": "a@b.com", "code": "WRONG1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "The code is incorrect.", decodeBody(t, w)["error"])
}
