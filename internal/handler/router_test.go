package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/brainbreak/brainbreak-api/internal/auth"
	"github.com/brainbreak/brainbreak-api/internal/config"
)

type testEnv struct {
	server  *httptest.Server
	jwtAuth auth.JWTAuthenticator
	authUC  *AuthUsecaseMock
	roomUC  *RoomUsecaseMock
	statsUC *StatsUsecaseMock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		jwtAuth: auth.NewJWTAuthenticator("test-secret", "brainbreak-test", time.Hour),
		authUC:  new(AuthUsecaseMock),
		roomUC:  new(RoomUsecaseMock),
		statsUC: new(StatsUsecaseMock),
	}

	cfg := &config.Config{Environment: "test"}
	logger := zerolog.Nop()
	router := NewRouter(cfg, &logger, env.jwtAuth, env.authUC, env.roomUC, env.statsUC)

	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	token, err := e.jwtAuth.IssueToken("user-1", email)
	require.NoError(t, err)
	return token
}

// request performs an HTTP call against the test server and decodes the JSON
// response body into out (when non-nil).
func (e *testEnv) request(t *testing.T, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/health", "", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
