package server

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/enable/internal/contract"
	"github.com/iudanet/enable/internal/crypto/sign"
	"github.com/iudanet/enable/internal/server/jwt"
	"github.com/iudanet/enable/internal/server/middleware"
	"github.com/iudanet/enable/internal/state/memory"
	"github.com/iudanet/enable/pkg/api"
)

const testSecret = "4f3edf983ac636a65a842ce7c78d9aa706d3b113bce9c46f30d7d21715b23b1d"

type testServer struct {
	*httptest.Server
	token string
}

func newTestServer(t *testing.T, jwtSecret string, signRate int) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens := jwt.NewService(jwtSecret, time.Minute)
	limiter := middleware.NewRateLimiter(signRate, time.Minute, logger)
	t.Cleanup(limiter.Stop)

	handler := NewRouter(Options{
		Logger:   logger,
		Contract: contract.New(memory.New(), sign.Secp256k1{}, logger),
		Tokens:   tokens,
		Limiter:  limiter,
		Version:  "test",
		Scheme:   sign.Secp256k1Name,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ts := &testServer{Server: srv}
	if tokens.Enabled() {
		token, _, err := tokens.GenerateToken("ops")
		require.NoError(t, err)
		ts.token = token
	}
	return ts
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t, "jwt-secret", 10)

	resp := srv.do(t, http.MethodPost, "/api/v1/users", srv.token, api.AddUserRequest{
		UserID:     "alice",
		PrivateKey: testSecret,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	resp = srv.do(t, http.MethodPost, "/api/v1/logins", srv.token, api.AddLoginRequest{UserID: "alice", Code: "42"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/v1/sign", "", api.SignRequest{Code: "42", Message: "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	signed := decode[api.SignResponse](t, resp)
	assert.Equal(t, sign.Secp256k1Name, signed.Scheme)

	signature, err := hex.DecodeString(signed.Signature)
	require.NoError(t, err)
	publicKey, err := hex.DecodeString(signed.PublicKey)
	require.NoError(t, err)
	assert.True(t, sign.Secp256k1{}.Verify(publicKey, []byte("hello"), signature))

	resp = srv.do(t, http.MethodPost, "/api/v1/sign", "", api.SignRequest{Code: "42", Message: "hello"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, api.CodeCodeAlreadyUsed, decode[api.ErrorResponse](t, resp).Code)
}

func TestRouter_ErrorKinds(t *testing.T) {
	srv := newTestServer(t, "jwt-secret", 10)

	resp := srv.do(t, http.MethodPost, "/api/v1/logins", srv.token, api.AddLoginRequest{UserID: "ghost", Code: "1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, api.CodeUserNotFound, decode[api.ErrorResponse](t, resp).Code)

	resp = srv.do(t, http.MethodPost, "/api/v1/sign", "", api.SignRequest{Code: "1", Message: "m"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, api.CodeCodeNotFound, decode[api.ErrorResponse](t, resp).Code)

	// Короткий ключ принимается при регистрации и отклоняется при подписи
	resp = srv.do(t, http.MethodPost, "/api/v1/users", srv.token, api.AddUserRequest{UserID: "bob", PrivateKey: "0102"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = srv.do(t, http.MethodPost, "/api/v1/logins", srv.token, api.AddLoginRequest{UserID: "bob", Code: "2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/v1/sign", "", api.SignRequest{Code: "2", Message: "m"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, api.CodeMalformedKeyMaterial, decode[api.ErrorResponse](t, resp).Code)
}

func TestRouter_EmptyKeyFailsAtRedemption(t *testing.T) {
	srv := newTestServer(t, "jwt-secret", 10)

	resp := srv.do(t, http.MethodPost, "/api/v1/users", srv.token, api.AddUserRequest{UserID: "alice", PrivateKey: ""})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = srv.do(t, http.MethodPost, "/api/v1/logins", srv.token, api.AddLoginRequest{UserID: "alice", Code: "7"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Повторная попытка снова дает 422: challenge не погашен
	for range 2 {
		resp = srv.do(t, http.MethodPost, "/api/v1/sign", "", api.SignRequest{Code: "7", Message: "m"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, api.CodeMalformedKeyMaterial, decode[api.ErrorResponse](t, resp).Code)
	}
}

func TestRouter_OperatorAuth(t *testing.T) {
	srv := newTestServer(t, "jwt-secret", 10)
	body := api.AddUserRequest{UserID: "alice", PrivateKey: testSecret}

	resp := srv.do(t, http.MethodPost, "/api/v1/users", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/v1/users", "invalid", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = srv.do(t, http.MethodPost, "/api/v1/logins", "", api.AddLoginRequest{UserID: "alice", Code: "1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Sign и health доступны без токена
	resp = srv.do(t, http.MethodPost, "/api/v1/sign", "", api.SignRequest{Code: "1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = srv.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_OpenWithoutSecret(t *testing.T) {
	srv := newTestServer(t, "", 10)

	resp := srv.do(t, http.MethodPost, "/api/v1/users", "", api.AddUserRequest{UserID: "alice", PrivateKey: testSecret})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_SignRateLimited(t *testing.T) {
	srv := newTestServer(t, "", 2)

	for i := 0; i < 2; i++ {
		resp := srv.do(t, http.MethodPost, "/api/v1/sign", "", api.SignRequest{Code: "1"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	resp := srv.do(t, http.MethodPost, "/api/v1/sign", "", api.SignRequest{Code: "1"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, api.CodeRateLimited, decode[api.ErrorResponse](t, resp).Code)

	// Остальные маршруты лимитом не затронуты
	resp = srv.do(t, http.MethodPost, "/api/v1/users", "", api.AddUserRequest{UserID: "alice", PrivateKey: testSecret})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, "", 1)

	resp := srv.do(t, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, api.HealthResponse{Status: "ok", Version: "test", Scheme: sign.Secp256k1Name}, decode[api.HealthResponse](t, resp))
}

func TestRouter_MethodAndPath(t *testing.T) {
	srv := newTestServer(t, "", 1)

	resp := srv.do(t, http.MethodGet, "/api/v1/sign", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp = srv.do(t, http.MethodGet, "/api/v1/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
