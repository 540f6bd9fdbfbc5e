package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterLoginValidate(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	resp, env := doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": "a@x.com", "password": "Abcdef1!"})
	require.Equal(t, http.StatusOK, resp.Code)
	require.True(t, env.Success)

	resp, env = doRequest(t, router, http.MethodPost, "/users/login", "", map[string]string{"email": "a@x.com", "password": "Abcdef1!"})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEmpty(t, env.Token)

	resp, env = doRequest(t, router, http.MethodGet, "/users/validate", env.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "a@x.com", env.Email)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	resp, _ := doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": "  A@X.Com ", "password": "Abcdef1!"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp, env := doRequest(t, router, http.MethodPost, "/users/login", "", map[string]string{"email": "a@x.com", "password": "Abcdef1!"})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEmpty(t, env.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	resp, _ := doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": "a@x.com", "password": "Abcdef1!"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp, env := doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": "a@x.com", "password": "Abcdef1!"})
	require.Equal(t, http.StatusConflict, resp.Code)
	require.False(t, env.Success)
}

func TestRegisterValidation(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	// Empty field wins before format validation.
	resp, env := doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": "", "password": "Abcdef1!"})
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	require.Equal(t, "email cannot be empty", env.Error["email"])

	resp, env = doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": "not-an-email", "password": "Abcdef1!"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, env.Error, "email")

	resp, env = doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": "a@x.com", "password": "weak"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
	require.Contains(t, env.Error, "password")
}

func TestLoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	resp, _ := doRequest(t, router, http.MethodPost, "/users/register", "", map[string]string{"email": "a@x.com", "password": "Abcdef1!"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp, wrongPassword := doRequest(t, router, http.MethodPost, "/users/login", "", map[string]string{"email": "a@x.com", "password": "Wrong1!aa"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp, unknownEmail := doRequest(t, router, http.MethodPost, "/users/login", "", map[string]string{"email": "b@x.com", "password": "Abcdef1!"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	require.Equal(t, wrongPassword.Message, unknownEmail.Message)
}

func TestValidateRequiresToken(t *testing.T) {
	router, cleanup := setupRouter(t)
	defer cleanup()

	resp, _ := doRequest(t, router, http.MethodGet, "/users/validate", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp, _ = doRequest(t, router, http.MethodGet, "/users/validate", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
