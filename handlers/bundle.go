package handlers

import "gemtrade/services/session"

// HandlerBundle groups the assembled handlers for route registration.
type HandlerBundle struct {
	Registration *RegistrationHandler
	Session      *SessionHandler

	// Revoker backs the auth middleware's token revocation check.
	Revoker session.TokenRevoker
}
