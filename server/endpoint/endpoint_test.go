package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/simplemovies/observability"
)

type staticChecker observability.Health

func (s staticChecker) CheckHealth(context.Context) observability.Health {
	return observability.Health(s)
}

func serve(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []observability.HealthChecker
		wantCode   int
		wantStatus observability.HealthStatus
	}{
		{"no checkers", nil, http.StatusOK, observability.HealthStatusUp},
		{
			"degraded stays 200",
			[]observability.HealthChecker{
				staticChecker{Name: "omdb", Status: observability.HealthStatusDegraded},
			},
			http.StatusOK, observability.HealthStatusDegraded,
		},
		{
			"down is 503",
			[]observability.HealthChecker{
				staticChecker{Name: "omdb", Status: observability.HealthStatusUp},
				staticChecker{Name: "redis", Status: observability.HealthStatusDown},
			},
			http.StatusServiceUnavailable, observability.HealthStatusDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, Health("simplemovies", tt.checkers...))
			assert.Equal(t, tt.wantCode, w.Code)

			var body observability.ServiceHealth
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "simplemovies", body.Service)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Len(t, body.Components, len(tt.checkers))
		})
	}
}

func TestInfo(t *testing.T) {
	w := serve(t, Info("simplemovies"))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "simplemovies", body["service"])
	assert.Equal(t, "dev", body["version"])
	assert.Contains(t, body, "uptime")
}
