package router_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyMuloki/zen-spa/internal/model"
)

func TestAdminRequiresLogin(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.makeRequest(t, http.MethodGet, "/api/v1/admin/bookings", nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "Forbidden: Admins only", resp.Message)

	resp = s.makeRequest(t, http.MethodPost, "/api/v1/admin/services", map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusForbidden, resp.Code)

	var status model.SessionStatus
	s.makeRequest(t, http.MethodGet, "/api/v1/admin/session", nil).Decode(t, &status)
	assert.False(t, status.IsAdmin)
}

func TestAdminLogin(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.makeRequest(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"username": adminUser, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Invalid credentials", resp.Message)

	resp = s.makeRequest(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"username": adminUser})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Required", resp.FieldError("password"))

	s.login(t)

	var status model.SessionStatus
	s.makeRequest(t, http.MethodGet, "/api/v1/admin/session", nil).Decode(t, &status)
	assert.True(t, status.IsAdmin)

	resp = s.makeRequest(t, http.MethodPost, "/api/v1/admin/logout", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Logout successful", resp.Message)

	s.makeRequest(t, http.MethodGet, "/api/v1/admin/session", nil).Decode(t, &status)
	assert.False(t, status.IsAdmin)
	assert.Equal(t, http.StatusForbidden, s.makeRequest(t, http.MethodGet, "/api/v1/admin/bookings", nil).Code)
}

func TestAdminServiceCRUD(t *testing.T) {
	s := newTestServer(t, false)
	s.login(t)

	resp := s.makeRequest(t, http.MethodPost, "/api/v1/admin/services", map[string]interface{}{
		"name":        "Reflexology",
		"description": "Foot pressure points",
		"price":       60,
		"duration":    45,
		"image":       "https://example.com/reflexology.jpg",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Message)
	var created model.Service
	resp.Decode(t, &created)
	assert.Equal(t, int64(7), created.ID)

	resp = s.makeRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/services/%d", created.ID), map[string]interface{}{"price": 70})
	require.Equal(t, http.StatusOK, resp.Code)
	var updated model.Service
	resp.Decode(t, &updated)
	assert.Equal(t, 70, updated.Price)
	assert.Equal(t, "Reflexology", updated.Name)

	// Public reads see the change.
	var public model.Service
	s.makeRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/services/%d", created.ID), nil).Decode(t, &public)
	assert.Equal(t, 70, public.Price)

	resp = s.makeRequest(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/services/%d", created.ID), nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = s.makeRequest(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/services/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = s.makeRequest(t, http.MethodPut, "/api/v1/admin/services/999", map[string]interface{}{"price": 70})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = s.makeRequest(t, http.MethodPost, "/api/v1/admin/services", map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NotEmpty(t, resp.Errors)
}

func TestAdminBookings(t *testing.T) {
	s := newTestServer(t, false)

	for _, date := range []string{"2024-06-01", "2024-06-02"} {
		resp := s.makeRequest(t, http.MethodPost, "/api/v1/bookings", bookingBody(1, date, "9:00 AM"))
		require.Equal(t, http.StatusCreated, resp.Code)
	}
	s.login(t)

	var bookings []model.Booking
	s.makeRequest(t, http.MethodGet, "/api/v1/admin/bookings", nil).Decode(t, &bookings)
	assert.Len(t, bookings, 2)

	s.makeRequest(t, http.MethodGet, "/api/v1/admin/bookings?date=2024-06-02", nil).Decode(t, &bookings)
	require.Len(t, bookings, 1)
	id := bookings[0].ID

	var booking model.Booking
	s.makeRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/bookings/%d", id), nil).Decode(t, &booking)
	assert.Equal(t, "Jane", booking.FirstName)

	assert.Equal(t, http.StatusNoContent, s.makeRequest(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/bookings/%d", id), nil).Code)
	assert.Equal(t, http.StatusNotFound, s.makeRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/admin/bookings/%d", id), nil).Code)

	// The freed slot can be booked again.
	resp := s.makeRequest(t, http.MethodPost, "/api/v1/bookings", bookingBody(1, "2024-06-02", "9:00 AM"))
	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, false)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp, err := s.client.Get(s.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	s.makeRequest(t, http.MethodGet, "/api/v1/services", nil)

	resp, err := s.client.Get(s.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
