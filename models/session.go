package models

// Session is the client-visible authentication state, re-derived from the
// identity provider on every state check. It is never persisted here; the
// provider owns the source of truth.
type Session struct {
	ID              string `json:"id,omitempty"`
	Email           string `json:"email,omitempty"`
	Name            string `json:"name,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	NICNumber       string `json:"nicNumber,omitempty"`
	Role            string `json:"role,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}
