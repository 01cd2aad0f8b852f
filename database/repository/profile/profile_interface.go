package profileRepo

import (
	"context"

	"gemtrade/models"
)

// ProfileRepository defines methods for profile record access.
type ProfileRepository interface {
	// Upsert writes the full profile record keyed by its user ID as a single put.
	Upsert(ctx context.Context, profile *models.UserProfile) error
	// GetByID retrieves a profile by its user ID.
	GetByID(ctx context.Context, userID string) (*models.UserProfile, error)
	// GetByEmail retrieves a profile by email.
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	// ListByRole retrieves all profiles registered under the given role.
	ListByRole(ctx context.Context, role string) ([]models.UserProfile, error)
}
