package langserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthra-lang/asthrac/internal/compile"
	"github.com/asthra-lang/asthrac/internal/langserver"
)

func signToken(t *testing.T, secret []byte) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss": "asthrac",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(secret)
	require.NoError(t, err)
	return s
}

func newTestServer(secret []byte) *langserver.Server {
	s := langserver.NewServer(secret, compile.Options{})
	s.UnauthDelay = time.Millisecond
	return s
}

func TestCompileEndpointRejectsMissingAuth(t *testing.T) {
	secret := []byte("test-secret-aaaaaaaaaaaaaaaaaaaa")
	srv := httptest.NewServer(newTestServer(secret).Router())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/compile", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCompileEndpointRejectsBadToken(t *testing.T) {
	secret := []byte("test-secret-aaaaaaaaaaaaaaaaaaaa")
	srv := httptest.NewServer(newTestServer(secret).Router())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/compile", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCompileEndpointReturnsCleanResult(t *testing.T) {
	secret := []byte("test-secret-aaaaaaaaaaaaaaaaaaaa")
	srv := httptest.NewServer(newTestServer(secret).Router())
	defer srv.Close()

	body := `{"files":[{"path":"main.asthra","content":"package main;\n\npub fn main(none) -> void {\n\treturn;\n}\n"}]}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/compile", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded struct {
		Session     string          `json:"session"`
		Diagnostics json.RawMessage `json:"diagnostics"`
		ModuleBuilt bool            `json:"module_built"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.NotEmpty(t, decoded.Session)
	assert.True(t, decoded.ModuleBuilt)
}

func TestCompileEndpointRejectsEmptyFileList(t *testing.T) {
	secret := []byte("test-secret-aaaaaaaaaaaaaaaaaaaa")
	srv := httptest.NewServer(newTestServer(secret).Router())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/compile", bytes.NewBufferString(`{"files":[]}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
