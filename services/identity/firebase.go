package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseProvider implements Provider using Firebase Auth. The admin SDK
// covers account management; credential verification goes through the
// Identity Toolkit REST API because the admin SDK cannot check passwords.
type FirebaseProvider struct {
	client    *auth.Client
	webAPIKey string
	http      *http.Client
}

// NewFirebaseProvider initializes the Firebase app and returns the provider.
func NewFirebaseProvider(ctx context.Context, credentialsFile, webAPIKey string) (*FirebaseProvider, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	return &FirebaseProvider{
		client:    client,
		webAPIKey: webAPIKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// CreateIdentity creates the account with a temporary credential and writes
// the profile attributes as custom claims.
func (p *FirebaseProvider) CreateIdentity(ctx context.Context, username, temporaryCredential string, attrs Attributes) (string, error) {
	if err := checkUsername(username); err != nil {
		return "", err
	}
	if err := checkCredential(temporaryCredential); err != nil {
		return "", err
	}

	params := (&auth.UserToCreate{}).
		UID(attrs.UserID).
		Email(username).
		Password(temporaryCredential).
		DisplayName(attrs.FullName).
		EmailVerified(false)

	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", classifyAdminError("create identity", err)
	}

	claims := map[string]interface{}{
		"userId":      attrs.UserID,
		"phoneNumber": attrs.PhoneNumber,
		"nicNumber":   attrs.NICNumber,
		"role":        attrs.Role,
	}
	if err := p.client.SetCustomUserClaims(ctx, record.UID, claims); err != nil {
		return "", classifyAdminError("set identity attributes", err)
	}
	return record.UID, nil
}

// SetPermanentCredential replaces the temporary credential with the user's own.
func (p *FirebaseProvider) SetPermanentCredential(ctx context.Context, username, credential string) error {
	if err := checkCredential(credential); err != nil {
		return err
	}
	record, err := p.client.GetUserByEmail(ctx, username)
	if err != nil {
		return classifyAdminError("look up identity", err)
	}
	params := (&auth.UserToUpdate{}).Password(credential)
	if _, err := p.client.UpdateUser(ctx, record.UID, params); err != nil {
		return classifyAdminError("set credential", err)
	}
	return nil
}

// AddToGroup merges the group membership into the account's custom claims.
func (p *FirebaseProvider) AddToGroup(ctx context.Context, username, group string) error {
	record, err := p.client.GetUserByEmail(ctx, username)
	if err != nil {
		return classifyAdminError("look up identity", err)
	}

	claims := map[string]interface{}{}
	for k, v := range record.CustomClaims {
		claims[k] = v
	}
	claims["group"] = group

	if err := p.client.SetCustomUserClaims(ctx, record.UID, claims); err != nil {
		return classifyAdminError("assign group", err)
	}
	return nil
}

// GetIdentity returns the provider's current view of the account.
func (p *FirebaseProvider) GetIdentity(ctx context.Context, username string) (*Identity, error) {
	record, err := p.client.GetUserByEmail(ctx, username)
	if err != nil {
		return nil, classifyAdminError("look up identity", err)
	}
	return identityFromRecord(record), nil
}

// VerifyCredential checks the credential against the Identity Toolkit REST
// API and returns the account state on success.
func (p *FirebaseProvider) VerifyCredential(ctx context.Context, username, credential string) (*Identity, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"email":             username,
		"password":          credential,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", signInEndpoint, p.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, NewError(KindUnknown, "identity provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, classifySignInError(body.Error.Message)
	}

	return p.GetIdentity(ctx, username)
}

// MarkConfirmed records the email as confirmed.
func (p *FirebaseProvider) MarkConfirmed(ctx context.Context, username string) error {
	record, err := p.client.GetUserByEmail(ctx, username)
	if err != nil {
		return classifyAdminError("look up identity", err)
	}
	params := (&auth.UserToUpdate{}).EmailVerified(true)
	if _, err := p.client.UpdateUser(ctx, record.UID, params); err != nil {
		return classifyAdminError("confirm identity", err)
	}
	return nil
}

// UpdateAttributes replaces the mutable profile attributes on the account.
func (p *FirebaseProvider) UpdateAttributes(ctx context.Context, username string, attrs Attributes) error {
	record, err := p.client.GetUserByEmail(ctx, username)
	if err != nil {
		return classifyAdminError("look up identity", err)
	}

	if attrs.FullName != "" {
		params := (&auth.UserToUpdate{}).DisplayName(attrs.FullName)
		if _, err := p.client.UpdateUser(ctx, record.UID, params); err != nil {
			return classifyAdminError("update identity", err)
		}
	}

	claims := map[string]interface{}{}
	for k, v := range record.CustomClaims {
		claims[k] = v
	}
	if attrs.PhoneNumber != "" {
		claims["phoneNumber"] = attrs.PhoneNumber
	}
	if attrs.NICNumber != "" {
		claims["nicNumber"] = attrs.NICNumber
	}
	if err := p.client.SetCustomUserClaims(ctx, record.UID, claims); err != nil {
		return classifyAdminError("update identity attributes", err)
	}
	return nil
}

func identityFromRecord(record *auth.UserRecord) *Identity {
	id := &Identity{
		ProviderID: record.UID,
		Email:      record.Email,
		Name:       record.DisplayName,
		Confirmed:  record.EmailVerified,
	}
	if v, ok := record.CustomClaims["phoneNumber"].(string); ok {
		id.PhoneNumber = v
	}
	if v, ok := record.CustomClaims["nicNumber"].(string); ok {
		id.NICNumber = v
	}
	if v, ok := record.CustomClaims["role"].(string); ok {
		id.Role = v
	}
	if v, ok := record.CustomClaims["group"].(string); ok {
		id.Group = v
	}
	return id
}

// checkUsername rejects obviously malformed usernames before the provider
// call, so malformed parameters classify deterministically.
func checkUsername(username string) error {
	if username == "" || !strings.Contains(username, "@") {
		return NewError(KindInvalidParameter, "username must be an email address", nil)
	}
	return nil
}

// checkCredential enforces the provider's minimum credential length.
func checkCredential(credential string) error {
	if len(credential) < 6 {
		return NewError(KindInvalidCredential, "credential rejected by identity provider", nil)
	}
	return nil
}

// classifyAdminError maps admin SDK failures onto the closed kind set.
func classifyAdminError(op string, err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err), auth.IsUIDAlreadyExists(err), auth.IsPhoneNumberAlreadyExists(err):
		return NewError(KindAlreadyExists, "identity already exists", err)
	case auth.IsUserNotFound(err):
		return NewError(KindNotFound, "identity not found", err)
	default:
		return NewError(KindUnknown, fmt.Sprintf("failed to %s", op), err)
	}
}

// classifySignInError maps Identity Toolkit error codes onto the closed kind
// set. The literal codes never leave this function.
func classifySignInError(code string) error {
	switch code {
	case "EMAIL_NOT_FOUND":
		return NewError(KindNotFound, "identity not found", nil)
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return NewError(KindInvalidCredential, "credential rejected by identity provider", nil)
	case "USER_DISABLED":
		return NewError(KindNotAuthorized, "identity is disabled", nil)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return NewError(KindRateLimited, "too many attempts", nil)
	default:
		msg := "sign-in failed"
		if code != "" {
			msg = fmt.Sprintf("sign-in failed (%s)", code)
		}
		return NewError(KindUnknown, msg, nil)
	}
}
