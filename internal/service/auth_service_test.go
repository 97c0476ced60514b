package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burkhanovich/article-site/internal/models"
	appErrors "github.com/Burkhanovich/article-site/pkg/errors"
)

type authRepoStub struct {
	users map[string]*models.User
}

func (m *authRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func newAuthFixture() *AuthService {
	repo := &authRepoStub{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "rev@example.org", Role: models.RoleReviewer, Active: true},
		"u2": {ID: "u2", Email: "gone@example.org", Role: models.RoleAuthor, Active: false},
	}}
	return NewAuthService(repo, nil, AuthConfig{AccessTokenSecret: "secret", AccessTokenExpiry: time.Hour, Issuer: "article-site"})
}

func TestAuthServiceIssueAndValidate(t *testing.T) {
	svc := newAuthFixture()

	token, expiresAt, err := svc.IssueToken(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleReviewer, claims.Role)
}

func TestAuthServiceIssueTokenErrors(t *testing.T) {
	svc := newAuthFixture()

	_, _, err := svc.IssueToken(context.Background(), "missing")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, _, err = svc.IssueToken(context.Background(), "u2")
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestAuthServiceRejectsForeignTokens(t *testing.T) {
	svc := newAuthFixture()

	other := NewAuthService(&authRepoStub{users: map[string]*models.User{
		"u1": {ID: "u1", Active: true},
	}}, nil, AuthConfig{AccessTokenSecret: "another", Issuer: "article-site"})
	token, _, err := other.IssueToken(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &models.JWTClaims{UserID: "u1"})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(raw)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceExpiredToken(t *testing.T) {
	svc := newAuthFixture()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.IssueToken(context.Background(), "u1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}
