package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/AndyMuloki/zen-spa/internal/config"
	"github.com/AndyMuloki/zen-spa/internal/flash"
	adminHandler "github.com/AndyMuloki/zen-spa/internal/handler/admin"
	authHandler "github.com/AndyMuloki/zen-spa/internal/handler/auth"
	bookingHandler "github.com/AndyMuloki/zen-spa/internal/handler/booking"
	catalogHandler "github.com/AndyMuloki/zen-spa/internal/handler/catalog"
	"github.com/AndyMuloki/zen-spa/internal/handler/health"
	promHandler "github.com/AndyMuloki/zen-spa/internal/handler/prometheus"
	"github.com/AndyMuloki/zen-spa/internal/middleware"
	"github.com/AndyMuloki/zen-spa/internal/repository/memory"
	"github.com/AndyMuloki/zen-spa/internal/router"
	"github.com/AndyMuloki/zen-spa/internal/seed"
	adminService "github.com/AndyMuloki/zen-spa/internal/service/admin"
	authService "github.com/AndyMuloki/zen-spa/internal/service/auth"
	"github.com/AndyMuloki/zen-spa/internal/service/availability"
	bookingService "github.com/AndyMuloki/zen-spa/internal/service/booking"
	catalogService "github.com/AndyMuloki/zen-spa/internal/service/catalog"
	"github.com/AndyMuloki/zen-spa/pkg/auth"
	"github.com/AndyMuloki/zen-spa/pkg/logger"
	"github.com/AndyMuloki/zen-spa/pkg/metrics"
	"github.com/AndyMuloki/zen-spa/pkg/security"
	"github.com/AndyMuloki/zen-spa/pkg/validator"
)

const (
	adminUser     = "admin"
	adminPassword = "admin123"
)

// APIResponse represents the API response structure
type APIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// TestResponse wraps the API response for testing
type TestResponse struct {
	Code int
	APIResponse
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

// Decode unmarshals the data member into v.
func (r TestResponse) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v))
}

func (r TestResponse) FieldError(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// testServer runs the full HTTP stack over a seeded in-memory store.
type testServer struct {
	*httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T, rateLimit bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := memory.NewStore()
	_, err := seed.Run(ctx, store)
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry, "spa")
	validate := validator.New()
	schedule := availability.NewSchedule(config.DefaultSlots, nil)

	catalogSvc := catalogService.NewService(store, validate, catalogService.Config{CacheTTL: time.Minute, CleanupInterval: time.Minute}, logger.Nop())
	bookingSvc := bookingService.NewService(store.Bookings, store.Outbox, flash.NewMemoryStore(time.Minute, time.Minute),
		schedule, validate, bookingService.Rules{}, m, logger.Nop())

	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(adminPassword)
	require.NoError(t, err)
	authSvc := authService.NewService(authService.Credentials{Username: adminUser, PasswordHash: hash},
		hasher, auth.NewJWTService("test-secret", time.Hour), logger.Nop())

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		router.Handlers{
			Catalog: catalogHandler.NewHandler(catalogSvc),
			Booking: bookingHandler.NewHandler(bookingSvc, availability.NewService(store.Bookings, schedule), m),
			Auth:    authHandler.NewHandler(authSvc, validate, false),
			Admin:   adminHandler.NewHandler(adminService.NewGateway(catalogSvc, bookingSvc)),
			Health:  health.NewHandler(map[string]health.Check{"store": store.Health.Ping}),
			Metrics: promHandler.New(registry, m),
		},
		router.Config{
			RateLimitEnabled: rateLimit,
			RateLimit:        rate.Limit(1),
			RateBurst:        2,
			RequestTimeout:   5 * time.Second,
			CORSConfig:       middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := httptest.NewServer(r.Engine())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{Server: srv, client: &http.Client{Jar: jar, Timeout: 5 * time.Second}}
}

func (s *testServer) makeRequest(t *testing.T, method, path string, body interface{}) TestResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := TestResponse{Code: resp.StatusCode}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.APIResponse), string(raw))
	}
	return out
}

func (s *testServer) login(t *testing.T) {
	t.Helper()
	resp := s.makeRequest(t, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": adminUser,
		"password": adminPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Message)
}

func bookingBody(therapistID int64, date, at string) map[string]interface{} {
	return map[string]interface{}{
		"firstName":   "Jane",
		"lastName":    "Doe",
		"email":       "jane@example.com",
		"phone":       "+1 555 123 4567",
		"serviceId":   1,
		"therapistId": therapistID,
		"date":        date,
		"time":        at,
		"notes":       "First visit",
	}
}
