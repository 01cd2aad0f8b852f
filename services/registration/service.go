package registration

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"time"

	"gemtrade/models"
	"gemtrade/services/identity"
	"gemtrade/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register runs the provisioning sequence: validate, create the identity
// with a temporary credential, promote the credential, store the document
// image if one was supplied, persist the profile, assign the role group.
// Any step's failure short-circuits the rest; earlier steps are not rolled
// back, so a failed request can leave partial state behind. Retrying with
// the same email after the identity was created reports a conflict.
func (s *DefaultRegistrationService) Register(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationResult, error) {
	logger := utils.GetLogger()

	if details := ValidateRequest(req); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	var docBytes []byte
	if req.DocumentImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.DocumentImageBase64)
		if err != nil {
			return nil, &ValidationError{Details: []string{"documentImageBase64 is not valid base64"}}
		}
		docBytes = decoded
	}

	userID := uuid.New().String()

	tempCredential, err := generateTemporaryCredential()
	if err != nil {
		logger.Error("Register: failed to generate temporary credential", zap.Error(err))
		return nil, fmt.Errorf("failed to generate temporary credential: %w", err)
	}

	attrs := identity.Attributes{
		UserID:      userID,
		FullName:    req.FullName,
		PhoneNumber: req.MobileNumber,
		NICNumber:   req.NICNumber,
		Role:        req.Role,
	}
	identityRef, err := s.Identity.CreateIdentity(ctx, req.Email, tempCredential, attrs)
	if err != nil {
		logger.Error("Register: failed to create identity", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	// If this fails the identity stays on its temporary credential. Known
	// gap: there is no remediation here.
	if err := s.Identity.SetPermanentCredential(ctx, req.Email, req.Password); err != nil {
		logger.Error("Register: failed to set permanent credential", zap.String("userId", userID), zap.Error(err))
		return nil, err
	}

	var documentLocator *string
	if docBytes != nil {
		key := fmt.Sprintf("%s/nic-document-%d", userID, time.Now().UnixNano())
		locator, err := s.Documents.Put(ctx, key, docBytes, req.DocumentImageContentType)
		if err != nil {
			logger.Error("Register: failed to store identity document", zap.String("userId", userID), zap.Error(err))
			return nil, fmt.Errorf("failed to store identity document: %w", err)
		}
		documentLocator = &locator
	}

	now := time.Now()
	profile := models.UserProfile{
		UserID:          userID,
		Email:           req.Email,
		FullName:        req.FullName,
		MobileNumber:    req.MobileNumber,
		NICNumber:       req.NICNumber,
		Role:            req.Role,
		DocumentLocator: documentLocator,
		IdentityRef:     identityRef,
		CreatedAt:       now,
		UpdatedAt:       now,
		IsActive:        false,
	}
	if err := s.Profiles.Upsert(ctx, &profile); err != nil {
		logger.Error("Register: failed to persist profile", zap.String("userId", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}

	group := s.Groups.ForRole(req.Role)
	if err := s.Identity.AddToGroup(ctx, req.Email, group); err != nil {
		logger.Error("Register: failed to assign group", zap.String("userId", userID), zap.String("group", group), zap.Error(err))
		return nil, err
	}

	logger.Info("Register: user provisioned",
		zap.String("userId", userID),
		zap.String("role", req.Role),
		zap.Bool("hasDocument", documentLocator != nil))

	return &models.RegistrationResult{
		UserID:               userID,
		Email:                req.Email,
		Role:                 req.Role,
		RequiresConfirmation: true,
	}, nil
}

// generateTemporaryCredential returns a random credential used only for the
// window between identity creation and credential promotion.
func generateTemporaryCredential() (string, error) {
	raw := make([]byte, 15)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw), nil
}
