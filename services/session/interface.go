package session

import (
	"context"
	"time"

	profileRepo "gemtrade/database/repository/profile"
	"gemtrade/models"
	"gemtrade/services/identity"
	"gemtrade/services/registration"
)

// Outcome is the typed result of every session operation. Operations never
// panic past their boundary; failures surface as Success=false with a
// user-readable Error sentence.
type Outcome struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message,omitempty"`
	Token   string                     `json:"token,omitempty"`
	Session *models.Session            `json:"session,omitempty"`
	Result  *models.RegistrationResult `json:"result,omitempty"`
	Error   string                     `json:"error,omitempty"`
}

// UpdateRequest carries the mutable profile attributes.
type UpdateRequest struct {
	FullName     string `json:"fullName,omitempty"`
	MobileNumber string `json:"mobileNumber,omitempty"`
}

// Service exposes the authentication operations. Session state is re-derived
// from the identity provider after every state-changing operation; nothing is
// cached here beyond one call round-trip.
type Service interface {
	SignUp(ctx context.Context, req models.RegistrationRequest) Outcome
	SignIn(ctx context.Context, email, password string) Outcome
	SignOut(ctx context.Context, token string) Outcome
	Current(ctx context.Context, email string) Outcome
	Confirm(ctx context.Context, email, code string) Outcome
	ResendCode(ctx context.Context, email string) Outcome
	ForgotPassword(ctx context.Context, email string) Outcome
	ResetPassword(ctx context.Context, email, code, newPassword string) Outcome
	UpdateAttributes(ctx context.Context, email string, req UpdateRequest) Outcome
}

const (
	sessionTokenTTL = 24 * time.Hour
	codeTTL         = 15 * time.Minute
)

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Identity     identity.Provider
	Registration registration.Service
	Profiles     profileRepo.ProfileRepository
	Codes        CodeStore
	Revoker      TokenRevoker
}
