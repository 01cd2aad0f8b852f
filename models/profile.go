package models

import "time"

// UserProfile is the profile record persisted at registration. UserID is
// assigned once and never changes; the record is upserted as a whole.
type UserProfile struct {
	UserID          string    `bson:"id" json:"userId"`
	Email           string    `bson:"email" json:"email"`
	FullName        string    `bson:"fullName" json:"fullName"`
	MobileNumber    string    `bson:"mobileNumber" json:"mobileNumber"`
	NICNumber       string    `bson:"nicNumber" json:"nicNumber"`
	Role            string    `bson:"role" json:"role"`
	DocumentLocator *string   `bson:"documentLocator,omitempty" json:"documentLocator,omitempty"`
	IdentityRef     string    `bson:"identityRef" json:"identityRef"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
}
