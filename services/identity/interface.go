package identity

import "context"

// Identity is the provider's view of a user account.
type Identity struct {
	ProviderID  string
	Email       string
	Name        string
	PhoneNumber string
	NICNumber   string
	Role        string
	Group       string
	Confirmed   bool
}

// Attributes carried alongside the credential when an identity is created.
type Attributes struct {
	UserID      string
	FullName    string
	PhoneNumber string
	NICNumber   string
	Role        string
}

// Provider wraps the managed identity service. Implementations translate the
// provider's own error identifiers into Kind values; callers branch on kinds
// only and never inspect provider error strings.
type Provider interface {
	// CreateIdentity creates the user record with a temporary credential and
	// returns the provider's reference for it.
	CreateIdentity(ctx context.Context, username, temporaryCredential string, attrs Attributes) (string, error)
	// SetPermanentCredential promotes or replaces the account credential.
	SetPermanentCredential(ctx context.Context, username, credential string) error
	// AddToGroup assigns the role-scoped membership tag.
	AddToGroup(ctx context.Context, username, group string) error
	// GetIdentity returns the current account state. This is the sole source
	// of truth for session state.
	GetIdentity(ctx context.Context, username string) (*Identity, error)
	// VerifyCredential checks a credential and returns the account on success.
	VerifyCredential(ctx context.Context, username, credential string) (*Identity, error)
	// MarkConfirmed records the account's email as confirmed.
	MarkConfirmed(ctx context.Context, username string) error
	// UpdateAttributes replaces the mutable profile attributes on the account.
	UpdateAttributes(ctx context.Context, username string, attrs Attributes) error
}
