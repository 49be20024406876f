package auth_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time_manager/internal/auth"
	"time_manager/internal/domain"
	"time_manager/internal/repository"
	"time_manager/internal/service"
	"time_manager/internal/testutil"
)

func newSessions(t *testing.T) *auth.Sessions {
	t.Helper()
	repos := repository.NewSet(testutil.NewDB(t))
	_, err := service.NewUsers(repos).Register(context.Background(), service.UserInput{
		Name: "Ana", Username: "ana", Password: "secret123", Role: domain.RoleAdmin,
	})
	require.NoError(t, err)
	return auth.NewSessions(repos.Users, "test-secret", nil, false)
}

func TestLoginAndValidate(t *testing.T) {
	sessions := newSessions(t)
	ctx := context.Background()

	token, claims, err := sessions.Login(ctx, "ANA", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	validated, err := sessions.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, validated.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	sessions := newSessions(t)

	token, claims, err := sessions.Login(context.Background(), "ana", "wrong")
	require.Error(t, err)
	assert.Equal(t, service.KindAuth, service.KindOf(err))
	assert.Equal(t, auth.MsgBadCredential, err.Error())
	assert.Empty(t, token)
	assert.Nil(t, claims)
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	sessions := newSessions(t)

	_, _, err := sessions.Login(context.Background(), "nobody", "secret123")
	require.Error(t, err)
	assert.Equal(t, auth.MsgBadCredential, err.Error())
}

func TestLoginRequiresFields(t *testing.T) {
	sessions := newSessions(t)

	_, _, err := sessions.Login(context.Background(), "", "secret123")
	assert.Equal(t, service.KindValidation, service.KindOf(err))
}

func TestValidateRejectsBadTokens(t *testing.T) {
	sessions := newSessions(t)
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := sessions.Validate(ctx, token)
		assert.Equal(t, service.KindAuth, service.KindOf(err), "token %q", token)
	}

	other := auth.NewSessions(nil, "other-secret", nil, false)
	token, _, err := newSessions(t).Login(ctx, "ana", "secret123")
	require.NoError(t, err)
	_, err = other.Validate(ctx, token)
	assert.Equal(t, service.KindAuth, service.KindOf(err))
}

func TestCookieAttributes(t *testing.T) {
	cookie := auth.NewSessions(nil, "s", nil, true).Cookie("tok")
	assert.Equal(t, auth.CookieName, cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	cleared := auth.NewSessions(nil, "s", nil, false).ClearCookie()
	assert.Negative(t, cleared.MaxAge)
	assert.False(t, cleared.Secure)
}

func TestAuthorize(t *testing.T) {
	assert.True(t, auth.Authorize([]string{"admin", "user"}, "user"))
	assert.True(t, auth.Authorize([]string{"admin"}, "admin"))
	assert.False(t, auth.Authorize([]string{"admin"}, "user"))
	assert.False(t, auth.Authorize([]string{"admin"}, ""))
	assert.False(t, auth.Authorize(nil, "admin"))
}

func TestLoginUnknownUserWithPlaceholderPassword(t *testing.T) {
	sessions := newSessions(t)

	_, _, err := sessions.Login(context.Background(), "nobody", "unknown-user")
	require.Error(t, err)
	assert.Equal(t, service.KindAuth, service.KindOf(err))
	assert.Equal(t, auth.MsgBadCredential, err.Error())
}
