package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func generateKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemKey)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

// serve runs Auth in front of a handler that echoes the resolved caller
func serve(cfg AuthConfig, headers map[string]string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/whoami", Auth(cfg), func(c *gin.Context) {
		caller, ok := CallerID(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, caller.String())
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_JWT(t *testing.T) {
	key, publicKey := generateKeyPair(t)
	cfg := AuthConfig{JWTPublicKey: publicKey}

	t.Run("subject becomes caller", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{
			Subject:   "alice.near",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		w := serve(cfg, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice.near", w.Body.String())
	})

	t.Run("eth-implicit subject is normalized", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{
			Subject: "0x52908400098527886E0F7030069857D2E4169EE7",
		})
		w := serve(cfg, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0x52908400098527886e0f7030069857d2e4169ee7", w.Body.String())
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{
			Subject:   "alice.near",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		w := serve(cfg, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing subject", func(t *testing.T) {
		token := signToken(t, key, jwt.RegisteredClaims{})
		w := serve(cfg, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("signed by another key", func(t *testing.T) {
		other, _ := generateKeyPair(t)
		token := signToken(t, other, jwt.RegisteredClaims{Subject: "alice.near"})
		w := serve(cfg, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuth_APIKey(t *testing.T) {
	cfg := AuthConfig{APIKeys: []string{"key1"}}

	tests := []struct {
		name    string
		headers map[string]string
		status  int
		caller  string
	}{
		{
			name:    "valid key with account",
			headers: map[string]string{"Authorization": "ApiKey key1", ACCOUNT_ID_HEADER: "market.near"},
			status:  http.StatusOK,
			caller:  "market.near",
		},
		{
			name:    "valid key without account",
			headers: map[string]string{"Authorization": "ApiKey key1"},
			status:  http.StatusUnauthorized,
		},
		{
			name:    "unknown key",
			headers: map[string]string{"Authorization": "ApiKey key2", ACCOUNT_ID_HEADER: "market.near"},
			status:  http.StatusUnauthorized,
		},
		{
			name:    "missing header",
			headers: map[string]string{},
			status:  http.StatusUnauthorized,
		},
		{
			name:    "unsupported scheme",
			headers: map[string]string{"Authorization": "Basic abc"},
			status:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(cfg, tt.headers)
			assert.Equal(t, tt.status, w.Code)
			if tt.caller != "" {
				assert.Equal(t, tt.caller, w.Body.String())
			}
		})
	}
}

func TestCallerID_NotAuthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CallerID(c)
	assert.False(t, ok)

	c.Set(CALLER_ID_KEY, domain.AccountID(""))
	_, ok = CallerID(c)
	assert.False(t, ok)
}

func TestLogger_RequestID(t *testing.T) {
	router := gin.New()
	router.Use(Logger())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(REQUEST_ID_HEADER))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(REQUEST_ID_HEADER, "req-1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(REQUEST_ID_HEADER))
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"internal_error","message":"Internal server error"}`, w.Body.String())
}
