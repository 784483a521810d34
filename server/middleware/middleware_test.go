package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/logger"
	"github.com/kbukum/simplemovies/server/middleware"
	"github.com/kbukum/simplemovies/session"
	"github.com/kbukum/simplemovies/session/sessiontest"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func decodeError(t *testing.T, body []byte) apperrors.ErrorBody {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error
}

func TestAuth(t *testing.T) {
	verifier := sessiontest.VerifierFunc(func(token string) (*session.Claims, error) {
		switch token {
		case "good":
			return &session.Claims{
				RegisteredClaims: gojwt.RegisteredClaims{Subject: "u1"},
				Username:         "alice",
			}, nil
		case "old":
			return nil, apperrors.TokenExpired()
		default:
			return nil, apperrors.InvalidToken()
		}
	})

	r := newEngine(middleware.Auth(verifier))
	r.GET("/me", func(c *gin.Context) {
		claims, ok := session.ClaimsFrom(c.Request.Context())
		require.True(t, ok)
		c.String(http.StatusOK, claims.Subject+":"+c.GetString(middleware.ContextKeyUsername))
	})

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantErr  apperrors.ErrorCode
		wantBody string
	}{
		{"valid token", "Bearer good", http.StatusOK, "", "u1:alice"},
		{"lowercase scheme", "bearer good", http.StatusOK, "", "u1:alice"},
		{"missing header", "", http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, ""},
		{"expired", "Bearer old", http.StatusUnauthorized, apperrors.ErrCodeTokenExpired, ""},
		{"invalid", "Bearer nope", http.StatusUnauthorized, apperrors.ErrCodeInvalidToken, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, w.Body.Bytes()).Code)
				return
			}
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newEngine(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	t.Run("generates", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(middleware.HeaderRequestID)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(middleware.HeaderRequestID))
	})
}

func TestRecovery(t *testing.T) {
	r := newEngine(middleware.Recovery(logger.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperrors.ErrCodeInternal, decodeError(t, w.Body.Bytes()).Code)
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(middleware.BodySizeLimit(8))
	r.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("short")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("much too long for the limit")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		AllowedOrigins: []string{"https://app.example"},
		AllowedMethods: []string{"GET", "POST"},
	}
	r := newEngine(middleware.CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
