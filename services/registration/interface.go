package registration

import (
	"context"

	profileRepo "gemtrade/database/repository/profile"
	"gemtrade/models"
	"gemtrade/services/identity"
	"gemtrade/services/storage"
)

// Service provisions a new user across the identity provider, the document
// store and the profile store.
type Service interface {
	Register(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationResult, error)
}

// Groups holds the identity-provider group names per role.
type Groups struct {
	Buyer  string
	Seller string
}

// ForRole returns the group name for a validated role.
func (g Groups) ForRole(role string) string {
	if role == models.RoleSeller {
		return g.Seller
	}
	return g.Buyer
}

// DefaultRegistrationService is the production implementation. Collaborators
// are injected so tests can substitute fakes.
type DefaultRegistrationService struct {
	Identity  identity.Provider
	Documents storage.DocumentStore
	Profiles  profileRepo.ProfileRepository
	Groups    Groups
}
