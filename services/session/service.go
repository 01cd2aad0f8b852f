package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"gemtrade/models"
	"gemtrade/services/identity"
	"gemtrade/services/registration"
	"gemtrade/utils"

	"go.uber.org/zap"
)

func fail(msg string) Outcome {
	return Outcome{Success: false, Error: msg}
}

// safe runs an operation and converts panics into a failed Outcome so no
// operation ever throws past the service boundary.
func safe(op string, fn func() Outcome) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			utils.GetLogger().Error("session operation panicked", zap.String("op", op), zap.Any("panic", r))
			out = fail(genericErrorMessage)
		}
	}()
	return fn()
}

func sessionFromIdentity(id *identity.Identity) *models.Session {
	return &models.Session{
		ID:              id.ProviderID,
		Email:           id.Email,
		Name:            id.Name,
		PhoneNumber:     id.PhoneNumber,
		NICNumber:       id.NICNumber,
		Role:            id.Role,
		IsAuthenticated: true,
	}
}

// deliverCode hands a code off for delivery. Delivery goes out of band; the
// code is logged so operators can trace issuance.
func deliverCode(purpose, email, code string) {
	utils.GetLogger().Sugar().Infof("Issued %s code %s for %s (expires in %v)", purpose, code, email, codeTTL)
}

// SignUp runs the registration sequence and issues the initial confirmation
// code on success.
func (s *DefaultSessionService) SignUp(ctx context.Context, req models.RegistrationRequest) Outcome {
	return safe("signUp", func() Outcome {
		result, err := s.Registration.Register(ctx, req)
		if err != nil {
			var ve *registration.ValidationError
			if errors.As(err, &ve) {
				return fail(strings.Join(ve.Details, "; "))
			}
			return fail(userMessage(err))
		}

		code, err := s.Codes.Issue(ctx, PurposeConfirm, result.Email, codeTTL)
		if err != nil {
			utils.GetLogger().Error("SignUp: failed to issue confirmation code", zap.Error(err))
		} else {
			deliverCode(PurposeConfirm, result.Email, code)
		}

		return Outcome{
			Success: true,
			Message: "Registration received. Confirm your email to activate your account.",
			Result:  result,
		}
	})
}

// SignIn verifies the credential and mints a session token. Sign-in on an
// unconfirmed account is refused.
func (s *DefaultSessionService) SignIn(ctx context.Context, email, password string) Outcome {
	return safe("signIn", func() Outcome {
		id, err := s.Identity.VerifyCredential(ctx, email, password)
		if err != nil {
			return fail(userMessage(err))
		}
		if !id.Confirmed {
			return fail(kindMessages[identity.KindNotConfirmed])
		}

		token, err := utils.GenerateToken(id.ProviderID, id.Email, sessionTokenTTL)
		if err != nil {
			utils.GetLogger().Error("SignIn: failed to generate session token", zap.Error(err))
			return fail(genericErrorMessage)
		}

		return Outcome{Success: true, Token: token, Session: sessionFromIdentity(id)}
	})
}

// SignOut revokes the session token for its remaining lifetime. Signing out
// with an already-invalid token still resolves to the anonymous state.
func (s *DefaultSessionService) SignOut(ctx context.Context, token string) Outcome {
	return safe("signOut", func() Outcome {
		anonymous := &models.Session{IsAuthenticated: false}

		_, _, expiry, err := utils.TokenClaims(token)
		if err != nil {
			return Outcome{Success: true, Session: anonymous}
		}
		if err := s.Revoker.Revoke(ctx, utils.HashToken(token), time.Until(expiry)); err != nil {
			utils.GetLogger().Error("SignOut: failed to revoke token", zap.Error(err))
			return fail(genericErrorMessage)
		}
		return Outcome{Success: true, Session: anonymous}
	})
}

// Current re-derives the session state from the identity provider. An
// unknown account resolves to the anonymous state, not an error.
func (s *DefaultSessionService) Current(ctx context.Context, email string) Outcome {
	return safe("current", func() Outcome {
		id, err := s.Identity.GetIdentity(ctx, email)
		if err != nil {
			if identity.KindOf(err) == identity.KindNotFound {
				return Outcome{Success: true, Session: &models.Session{IsAuthenticated: false}}
			}
			return fail(userMessage(err))
		}
		return Outcome{Success: true, Session: sessionFromIdentity(id)}
	})
}

// Confirm consumes the confirmation code, marks the identity confirmed and
// activates the profile record.
func (s *DefaultSessionService) Confirm(ctx context.Context, email, code string) Outcome {
	return safe("confirm", func() Outcome {
		if err := s.Codes.Verify(ctx, PurposeConfirm, email, code); err != nil {
			return fail(userMessage(err))
		}
		if err := s.Identity.MarkConfirmed(ctx, email); err != nil {
			return fail(userMessage(err))
		}

		profile, err := s.Profiles.GetByEmail(ctx, email)
		if err != nil {
			utils.GetLogger().Error("Confirm: failed to load profile", zap.String("email", email), zap.Error(err))
		} else if profile != nil && !profile.IsActive {
			profile.IsActive = true
			if err := s.Profiles.Upsert(ctx, profile); err != nil {
				utils.GetLogger().Error("Confirm: failed to activate profile", zap.String("userId", profile.UserID), zap.Error(err))
			}
		}

		id, err := s.Identity.GetIdentity(ctx, email)
		if err != nil {
			return fail(userMessage(err))
		}
		return Outcome{Success: true, Message: "Your account is confirmed.", Session: sessionFromIdentity(id)}
	})
}

// ResendCode issues a fresh confirmation code for an unconfirmed account.
func (s *DefaultSessionService) ResendCode(ctx context.Context, email string) Outcome {
	return safe("resendCode", func() Outcome {
		id, err := s.Identity.GetIdentity(ctx, email)
		if err != nil {
			return fail(userMessage(err))
		}
		if id.Confirmed {
			return fail("This account is already confirmed.")
		}

		code, err := s.Codes.Issue(ctx, PurposeConfirm, email, codeTTL)
		if err != nil {
			utils.GetLogger().Error("ResendCode: failed to issue code", zap.Error(err))
			return fail(genericErrorMessage)
		}
		deliverCode(PurposeConfirm, email, code)
		return Outcome{Success: true, Message: "A new confirmation code has been sent."}
	})
}

// ForgotPassword issues a password reset code for an existing account.
func (s *DefaultSessionService) ForgotPassword(ctx context.Context, email string) Outcome {
	return safe("forgotPassword", func() Outcome {
		if _, err := s.Identity.GetIdentity(ctx, email); err != nil {
			return fail(userMessage(err))
		}

		code, err := s.Codes.Issue(ctx, PurposeReset, email, codeTTL)
		if err != nil {
			utils.GetLogger().Error("ForgotPassword: failed to issue code", zap.Error(err))
			return fail(genericErrorMessage)
		}
		deliverCode(PurposeReset, email, code)
		return Outcome{Success: true, Message: "A password reset code has been sent."}
	})
}

// ResetPassword consumes the reset code and replaces the credential.
func (s *DefaultSessionService) ResetPassword(ctx context.Context, email, code, newPassword string) Outcome {
	return safe("resetPassword", func() Outcome {
		if len(newPassword) < 8 {
			return fail("Password must be at least 8 characters.")
		}
		if err := s.Codes.Verify(ctx, PurposeReset, email, code); err != nil {
			return fail(userMessage(err))
		}
		if err := s.Identity.SetPermanentCredential(ctx, email, newPassword); err != nil {
			return fail(userMessage(err))
		}
		return Outcome{Success: true, Message: "Your password has been reset. You can now sign in."}
	})
}

// UpdateAttributes updates the mutable attributes on both the identity
// provider and the profile record, then returns the re-derived session.
func (s *DefaultSessionService) UpdateAttributes(ctx context.Context, email string, req UpdateRequest) Outcome {
	return safe("updateAttributes", func() Outcome {
		attrs := identity.Attributes{
			FullName:    req.FullName,
			PhoneNumber: req.MobileNumber,
		}
		if err := s.Identity.UpdateAttributes(ctx, email, attrs); err != nil {
			return fail(userMessage(err))
		}

		profile, err := s.Profiles.GetByEmail(ctx, email)
		if err != nil {
			utils.GetLogger().Error("UpdateAttributes: failed to load profile", zap.String("email", email), zap.Error(err))
		} else if profile != nil {
			if req.FullName != "" {
				profile.FullName = req.FullName
			}
			if req.MobileNumber != "" {
				profile.MobileNumber = req.MobileNumber
			}
			if err := s.Profiles.Upsert(ctx, profile); err != nil {
				utils.GetLogger().Error("UpdateAttributes: failed to update profile", zap.String("userId", profile.UserID), zap.Error(err))
			}
		}

		id, err := s.Identity.GetIdentity(ctx, email)
		if err != nil {
			return fail(userMessage(err))
		}
		return Outcome{Success: true, Message: "Profile updated.", Session: sessionFromIdentity(id)}
	})
}
