package registration

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"gemtrade/models"
	"gemtrade/services/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createCall struct {
	username string
	attrs    identity.Attributes
}

type fakeIdentity struct {
	createErr  error
	setCredErr error
	groupErr   error

	created     []createCall
	credentials map[string]string
	groups      map[string]string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		credentials: map[string]string{},
		groups:      map[string]string{},
	}
}

func (f *fakeIdentity) CreateIdentity(ctx context.Context, username, temporaryCredential string, attrs identity.Attributes) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, createCall{username: username, attrs: attrs})
	f.credentials[username] = temporaryCredential
	return "provider-" + attrs.UserID, nil
}

func (f *fakeIdentity) SetPermanentCredential(ctx context.Context, username, credential string) error {
	if f.setCredErr != nil {
		return f.setCredErr
	}
	f.credentials[username] = credential
	return nil
}

func (f *fakeIdentity) AddToGroup(ctx context.Context, username, group string) error {
	if f.groupErr != nil {
		return f.groupErr
	}
	f.groups[username] = group
	return nil
}

func (f *fakeIdentity) GetIdentity(ctx context.Context, username string) (*identity.Identity, error) {
	return nil, identity.NewError(identity.KindNotFound, "identity not found", nil)
}

func (f *fakeIdentity) VerifyCredential(ctx context.Context, username, credential string) (*identity.Identity, error) {
	return nil, identity.NewError(identity.KindNotFound, "identity not found", nil)
}

func (f *fakeIdentity) MarkConfirmed(ctx context.Context, username string) error { return nil }

func (f *fakeIdentity) UpdateAttributes(ctx context.Context, username string, attrs identity.Attributes) error {
	return nil
}

type putCall struct {
	key         string
	data        []byte
	contentType string
}

type fakeDocumentStore struct {
	putErr error
	puts   []putCall
}

func (f *fakeDocumentStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.puts = append(f.puts, putCall{key: key, data: data, contentType: contentType})
	return "doc/" + key, nil
}

func (f *fakeDocumentStore) Delete(ctx context.Context, locator string) error { return nil }

func (f *fakeDocumentStore) DownloadURL(ctx context.Context, locator string, expires time.Duration) (string, error) {
	return "https://example.com/" + locator, nil
}

type fakeProfileRepo struct {
	upsertErr error
	profiles  map[string]*models.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.UserProfile{}}
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, profile *models.UserProfile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	copied := *profile
	f.profiles[profile.UserID] = &copied
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) ListByRole(ctx context.Context, role string) ([]models.UserProfile, error) {
	var out []models.UserProfile
	for _, p := range f.profiles {
		if p.Role == role {
			out = append(out, *p)
		}
	}
	return out, nil
}

func newService(id *fakeIdentity, docs *fakeDocumentStore, profiles *fakeProfileRepo) *DefaultRegistrationService {
	return &DefaultRegistrationService{
		Identity:  id,
		Documents: docs,
		Profiles:  profiles,
		Groups:    Groups{Buyer: "buyers", Seller: "sellers"},
	}
}

func TestRegister_SuccessWithoutImage(t *testing.T) {
	id := newFakeIdentity()
	docs := &fakeDocumentStore{}
	profiles := newFakeProfileRepo()
	svc := newService(id, docs, profiles)

	result, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", result.Email)
	assert.Equal(t, models.RoleBuyer, result.Role)
	assert.True(t, result.RequiresConfirmation)
	assert.NotEqual(t, result.Email, result.UserID)
	_, parseErr := uuid.Parse(result.UserID)
	assert.NoError(t, parseErr, "userId should be a generated uuid")

	// Credential was promoted from the temporary one to the user's own.
	assert.Equal(t, "Aa1!aaaa", id.credentials["a@b.com"])

	// No image supplied: no document-store call, nil locator on the profile.
	assert.Empty(t, docs.puts)
	profile := profiles.profiles[result.UserID]
	require.NotNil(t, profile)
	assert.Nil(t, profile.DocumentLocator)
	assert.Equal(t, "provider-"+result.UserID, profile.IdentityRef)
	assert.False(t, profile.IsActive)
}

func TestRegister_SuccessWithImage(t *testing.T) {
	id := newFakeIdentity()
	docs := &fakeDocumentStore{}
	profiles := newFakeProfileRepo()
	svc := newService(id, docs, profiles)

	req := validRequest()
	req.DocumentImageBase64 = base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))
	req.DocumentImageContentType = "image/jpeg"

	result, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, docs.puts, 1)
	put := docs.puts[0]
	assert.True(t, strings.HasPrefix(put.key, result.UserID+"/nic-document-"))
	assert.Equal(t, []byte("fake-image-bytes"), put.data)
	assert.Equal(t, "image/jpeg", put.contentType)

	profile := profiles.profiles[result.UserID]
	require.NotNil(t, profile)
	require.NotNil(t, profile.DocumentLocator)
	assert.Equal(t, "doc/"+put.key, *profile.DocumentLocator)
}

func TestRegister_ValidationFailureMakesNoExternalCalls(t *testing.T) {
	id := newFakeIdentity()
	docs := &fakeDocumentStore{}
	profiles := newFakeProfileRepo()
	svc := newService(id, docs, profiles)

	req := validRequest()
	req.NICNumber = "12345"

	_, err := svc.Register(context.Background(), req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Details, "nicNumber must be 9 digits followed by an optional V or X")

	assert.Empty(t, id.created)
	assert.Empty(t, docs.puts)
	assert.Empty(t, profiles.profiles)
}

func TestRegister_InvalidBase64IsAClientError(t *testing.T) {
	id := newFakeIdentity()
	svc := newService(id, &fakeDocumentStore{}, newFakeProfileRepo())

	req := validRequest()
	req.DocumentImageBase64 = "not:::base64"

	_, err := svc.Register(context.Background(), req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, id.created)
}

func TestRegister_DuplicateIdentityShortCircuits(t *testing.T) {
	id := newFakeIdentity()
	id.createErr = identity.NewError(identity.KindAlreadyExists, "identity already exists", nil)
	docs := &fakeDocumentStore{}
	profiles := newFakeProfileRepo()
	svc := newService(id, docs, profiles)

	req := validRequest()
	req.DocumentImageBase64 = base64.StdEncoding.EncodeToString([]byte("img"))

	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, identity.KindAlreadyExists, identity.KindOf(err))

	// Conflict on the create step: no document-store or profile-store calls.
	assert.Empty(t, docs.puts)
	assert.Empty(t, profiles.profiles)
}

func TestRegister_GroupFollowsRole(t *testing.T) {
	for role, group := range map[string]string{
		models.RoleBuyer:  "buyers",
		models.RoleSeller: "sellers",
	} {
		id := newFakeIdentity()
		svc := newService(id, &fakeDocumentStore{}, newFakeProfileRepo())

		req := validRequest()
		req.Role = role

		_, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, group, id.groups["a@b.com"], "role %s", role)
	}
}

func TestRegister_CredentialPromotionFailureShortCircuits(t *testing.T) {
	id := newFakeIdentity()
	id.setCredErr = identity.NewError(identity.KindInvalidCredential, "credential rejected by identity provider", nil)
	docs := &fakeDocumentStore{}
	profiles := newFakeProfileRepo()
	svc := newService(id, docs, profiles)

	_, err := svc.Register(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, identity.KindInvalidCredential, identity.KindOf(err))

	// The identity record was already created and stays behind.
	assert.Len(t, id.created, 1)
	assert.Empty(t, docs.puts)
	assert.Empty(t, profiles.profiles)
}

func TestRegister_GroupAssignmentFailureLeavesProfile(t *testing.T) {
	id := newFakeIdentity()
	id.groupErr = identity.NewError(identity.KindUnknown, "failed to assign group", nil)
	profiles := newFakeProfileRepo()
	svc := newService(id, &fakeDocumentStore{}, profiles)

	_, err := svc.Register(context.Background(), validRequest())
	require.Error(t, err)

	// No rollback: the profile written in the previous step persists.
	assert.Len(t, profiles.profiles, 1)
}
