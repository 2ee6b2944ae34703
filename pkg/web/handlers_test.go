package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taxidesk/config"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/models"
	"taxidesk/pkg/notify"
	"taxidesk/service"
	"taxidesk/storage"
	"taxidesk/storage/memory"
)

func newTestRouter(t *testing.T) (*memory.Store, *gin.Engine) {
	t.Helper()
	stg := memory.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, stg.Admin().Ensure(context.Background(), "admin", string(hash)))

	cfg := config.Config{JWTSecret: "test-secret", WhatsAppNumber: "919876543210"}
	log := logger.New("test")
	svc := service.New(stg, nil, cfg, log)
	return stg, NewServer(svc, notify.New(cfg, log), log).Router()
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["token"]
}

func TestSubmitBookingEndpoint(t *testing.T) {
	_, router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/bookings", "", map[string]interface{}{
		"customer_name": "Anita Rao",
		"phone":         "+919812345678",
		"pickup":        "MG Road",
		"drop":          "Airport",
		"vehicle_type":  "Sedan",
		"date_time":     "garbage",
		"privacy_mode":  true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Booking      models.Booking `json:"booking"`
		WhatsAppLink string         `json:"whatsapp_link"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.BookingStatusPending, resp.Booking.Status)
	assert.Contains(t, resp.WhatsAppLink, "https://wa.me/919876543210")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	_, router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPut, "/api/bookings/1/status", "", map[string]string{"status": "Confirmed"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingStatusFlow(t *testing.T) {
	_, router := newTestRouter(t)
	token := adminToken(t, router)

	w := doJSON(router, http.MethodPost, "/api/bookings", "", map[string]interface{}{
		"customer_name": "Anita Rao",
		"phone":         "+919812345678",
		"pickup":        "MG Road",
		"drop":          "Airport",
		"vehicle_type":  "SUV",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/bookings/%d/status", created.Booking.ID)
	w = doJSON(router, http.MethodPut, path, token, map[string]string{"status": "Confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPut, path, token, map[string]string{"status": "Teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/api/bookings/9999/status", token, map[string]string{"status": "Cancelled"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleBanEndpoint(t *testing.T) {
	stg, router := newTestRouter(t)
	token := adminToken(t, router)
	id := stg.SeedDriver(models.Driver{Name: "Ramesh Kumar", Phone: "+911", IsActive: true})

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/api/drivers/%d/toggle-ban", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// banned drivers drop off the public listing
	w = doJSON(router, http.MethodGet, "/api/drivers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var drivers []models.Driver
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drivers))
	assert.Empty(t, drivers)
}

func TestFileComplaintEndpointBansAtThreshold(t *testing.T) {
	stg, router := newTestRouter(t)
	id := stg.SeedDriver(models.Driver{Name: "Ramesh Kumar", Phone: "+911", IsActive: true, ComplaintCount: 2})

	w := doJSON(router, http.MethodPost, "/api/complaints", "", map[string]interface{}{
		"driver_id":   id,
		"reason_type": "Rude behavior",
		"details":     "Shouted at customer",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Complaint    models.Complaint `json:"complaint"`
		DriverBanned bool             `json:"driver_banned"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Rude behavior: Shouted at customer", resp.Complaint.Reason)
	assert.True(t, resp.DriverBanned)
}

// unreachableVehicles stands in for a backend that is down.
type unreachableVehicles struct{}

func (unreachableVehicles) GetAll(ctx context.Context) ([]*models.Vehicle, error) {
	return nil, errors.New("dial tcp 127.0.0.1:5432: connection refused")
}

type brokenVehicleStore struct {
	storage.IStorage
}

func (b brokenVehicleStore) Vehicle() storage.IVehicleStorage {
	return unreachableVehicles{}
}

func TestListingSurfacesStorageFailureAs503(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	log := logger.New("test")
	svc := service.New(brokenVehicleStore{memory.New()}, nil, cfg, log)
	router := NewServer(svc, notify.New(cfg, log), log).Router()

	w := doJSON(router, http.MethodGet, "/api/vehicles", "", nil)
	// a dead backend must not read as an empty catalog
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "storage unavailable")
}

func TestAgreementEndpointUnknownPhone(t *testing.T) {
	_, router := newTestRouter(t)
	w := doJSON(router, http.MethodPost, "/api/drivers/agreement", "", map[string]string{"phone": "+910000000000"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
