package models

// Roles a user can register under.
const (
	RoleBuyer  = "Buyer"
	RoleSeller = "Seller"
)

// RegistrationRequest is the payload collected by the sign-up form. It lives
// for the duration of one request only.
type RegistrationRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"fullName"`
	MobileNumber string `json:"mobileNumber"`
	NICNumber    string `json:"nicNumber"`
	Role         string `json:"role"`

	// Optional identity-document image, transported as base64.
	DocumentImageBase64      string `json:"documentImageBase64,omitempty"`
	DocumentImageContentType string `json:"documentImageContentType,omitempty"`
}

// RegistrationResult is returned by the orchestrator on success.
type RegistrationResult struct {
	UserID               string `json:"userId"`
	Email                string `json:"email"`
	Role                 string `json:"role"`
	RequiresConfirmation bool   `json:"requiresConfirmation"`
}
