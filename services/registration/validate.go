package registration

import (
	"regexp"

	"gemtrade/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Loose international format: optional leading +, then digits, spaces,
	// hyphens and parentheses, at least 10 significant characters.
	mobilePattern = regexp.MustCompile(`^\+?[0-9()\s-]{10,}$`)
	// National ID format: 9 digits followed by an optional V or X.
	nicPattern = regexp.MustCompile(`^[0-9]{9}[VvXx]?$`)
)

// ValidateRequest checks the registration payload against the field rules
// and returns every violated rule in field order. An empty result means the
// payload is valid. No side effects.
func ValidateRequest(req models.RegistrationRequest) []string {
	var details []string

	if req.Email == "" {
		details = append(details, "email is required")
	} else if !emailPattern.MatchString(req.Email) {
		details = append(details, "email format is invalid")
	}

	if req.Password == "" {
		details = append(details, "password is required")
	} else if len(req.Password) < 8 {
		details = append(details, "password must be at least 8 characters")
	}

	if req.FullName == "" {
		details = append(details, "fullName is required")
	}

	if req.MobileNumber == "" {
		details = append(details, "mobileNumber is required")
	} else if !mobilePattern.MatchString(req.MobileNumber) {
		details = append(details, "mobileNumber format is invalid")
	}

	if req.NICNumber == "" {
		details = append(details, "nicNumber is required")
	} else if !nicPattern.MatchString(req.NICNumber) {
		details = append(details, "nicNumber must be 9 digits followed by an optional V or X")
	}

	if req.Role != models.RoleBuyer && req.Role != models.RoleSeller {
		details = append(details, "role must be either Buyer or Seller")
	}

	return details
}
