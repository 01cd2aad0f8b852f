package session

import (
	"errors"

	"gemtrade/services/identity"
)

// genericErrorMessage is the fallback for failures with no mapped sentence.
const genericErrorMessage = "An unexpected error occurred. Please try again."

// kindMessages is the fixed lookup table from identity error kinds to
// user-readable sentences.
var kindMessages = map[identity.Kind]string{
	identity.KindNotFound:          "No account was found for that email address.",
	identity.KindNotAuthorized:     "This account is not allowed to sign in.",
	identity.KindNotConfirmed:      "Your account is not confirmed yet. Please confirm your registration first.",
	identity.KindAlreadyExists:     "An account with this email already exists.",
	identity.KindInvalidCredential: "Incorrect email or password.",
	identity.KindInvalidParameter:  "One of the provided values is invalid.",
	identity.KindRateLimited:       "Too many attempts. Please try again later.",
}

// userMessage translates an internal error into the sentence shown to the
// user. Unmapped identity errors fall back to the provider's own message,
// everything else to the generic sentence.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrCodeNotFound):
		return "The code has expired. Please request a new one."
	case errors.Is(err, ErrCodeMismatch):
		return "The code is incorrect."
	}

	var ie *identity.Error
	if errors.As(err, &ie) {
		if msg, ok := kindMessages[ie.Kind]; ok {
			return msg
		}
		if ie.Message != "" {
			return ie.Message
		}
	}
	return genericErrorMessage
}
