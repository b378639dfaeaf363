package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rideshare/internal/domain"
	"rideshare/internal/handler"
	"rideshare/internal/middleware"
	"rideshare/internal/repository/memory"
	"rideshare/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const callerHeader = "X-Caller-Principal"

func newTestRouter() *gin.Engine {
	logger := zap.NewNop()
	drivers := memory.NewDriverStore()

	return NewRouter(RouterDeps{
		RiderHandler:   handler.NewRiderHandler(service.NewRiderService(memory.NewRiderStore(), nil, logger)),
		DriverHandler:  handler.NewDriverHandler(service.NewDriverService(drivers, nil, logger)),
		RideHandler:    handler.NewRideHandler(service.NewRideService(memory.NewRideStore(), drivers, nil, logger)),
		ProfileHandler: handler.NewProfileHandler(service.NewProfileService(memory.NewProfileStore(), logger)),
		Caller:         middleware.CallerConfig{Header: callerHeader},
		Logger:         logger,
	})
}

func do(t *testing.T, router http.Handler, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	if w := do(t, router, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/metrics", nil); w.Code != http.StatusOK {
		t.Errorf("metrics: expected 200, got %d", w.Code)
	}
}

func TestRouter_RideRequestScenario(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	w := do(t, router, http.MethodPost, "/v1/rides/request", handler.RequestRideRequest{Rider: domain.Rider{Name: "A"}, Pickup: "X", Dropoff: "Y", Timestamp: "t"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with no drivers, got %d: %s", w.Code, w.Body.String())
	}

	if w := do(t, router, http.MethodPost, "/v1/riders", domain.Rider{Name: "A", Address: "ra"}); w.Code != http.StatusCreated {
		t.Fatalf("register rider: expected 201, got %d", w.Code)
	}
	if w := do(t, router, http.MethodPost, "/v1/drivers", map[string]any{"name": "B", "currentstatus": "Active", "address": "db"}); w.Code != http.StatusCreated {
		t.Fatalf("register driver: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodPost, "/v1/rides/request", handler.RequestRideRequest{Rider: domain.Rider{Name: "A"}, Pickup: "X", Dropoff: "Y", Timestamp: "t"})
	if w.Code != http.StatusCreated {
		t.Fatalf("request ride: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	ride := decode[domain.Ride](t, w)
	if ride.Driver.Name != "B" || ride.Rider.Name != "A" || ride.Status != domain.RideStatusActive {
		t.Errorf("unexpected ride %+v", ride)
	}

	// Request-flow rides have an empty ride id, which must still be addressable.
	w = do(t, router, http.MethodPatch, "/v1/rides/fields/driverfeedback?rideid=", handler.FieldValueRequest{Value: "smooth"})
	if w.Code != http.StatusOK || decode[handler.UpdatedResponse](t, w).Updated != 1 {
		t.Fatalf("update ride field: got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/v1/rides/find?field=driverfeedback&value=smooth", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("find ride: expected 200, got %d", w.Code)
	}
	if got := decode[domain.Ride](t, w); got.DriverFeedback != "smooth" {
		t.Errorf("expected feedback smooth, got %q", got.DriverFeedback)
	}
}

func TestRouter_SearchAndFind(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	do(t, router, http.MethodPost, "/v1/drivers", domain.Driver{Name: "Kelsey", Contact: "1234567890", Address: "addr1"})
	do(t, router, http.MethodPost, "/v1/drivers", domain.Driver{Name: "Sam", Contact: "1234567890", Address: "addr2"})

	w := do(t, router, http.MethodGet, "/v1/drivers/search?field=contact&value=1234567890", nil)
	if got := decode[[]domain.Driver](t, w); len(got) != 2 {
		t.Errorf("expected 2 matches, got %d", len(got))
	}

	w = do(t, router, http.MethodGet, "/v1/drivers/search?field=name&value=nobody", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Errorf("expected empty array, got %d %s", w.Code, w.Body.String())
	}

	if w := do(t, router, http.MethodGet, "/v1/drivers/find?field=name&value=nobody", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for no match, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/v1/drivers/find?field=height&value=1", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/v1/drivers/find?field=name", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing value, got %d", w.Code)
	}
}

func TestRouter_DriverUpdates(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	do(t, router, http.MethodPost, "/v1/drivers", domain.Driver{Name: "Kelsey", Address: "addr1"})

	w := do(t, router, http.MethodPut, "/v1/drivers/rating?name=Kelsey", map[string]any{"rating": 4.5})
	if w.Code != http.StatusOK || decode[handler.UpdatedResponse](t, w).Updated != 1 {
		t.Fatalf("update rating: got %d: %s", w.Code, w.Body.String())
	}
	if w := do(t, router, http.MethodPut, "/v1/drivers/rating?name=Kelsey", map[string]any{}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without rating, got %d", w.Code)
	}

	if w := do(t, router, http.MethodPut, "/v1/drivers/status?name=Kelsey", map[string]any{"status": "Sleeping"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", w.Code)
	}
	if w := do(t, router, http.MethodPut, "/v1/drivers/status?name=Kelsey", map[string]any{"status": "Active"}); w.Code != http.StatusOK {
		t.Errorf("expected 200 for status update, got %d", w.Code)
	}

	if w := do(t, router, http.MethodPatch, "/v1/drivers/fields/rating?name=Kelsey", handler.FieldValueRequest{Value: "abc"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unparsable rating, got %d", w.Code)
	}

	w = do(t, router, http.MethodGet, "/v1/drivers/find?field=rating&value=4.5", nil)
	got := decode[domain.Driver](t, w)
	if got.CurrentStatus != domain.CurrentStatusActive || got.Rating != 4.5 {
		t.Errorf("expected active driver rated 4.5, got %+v", got)
	}

	w = do(t, router, http.MethodPut, "/v1/drivers/replace?address=addr1", domain.Driver{Name: "Kelsey2", Address: "addr1"})
	if w.Code != http.StatusOK {
		t.Fatalf("replace: expected 200, got %d", w.Code)
	}
	all := decode[[]domain.Driver](t, do(t, router, http.MethodGet, "/v1/drivers", nil))
	if len(all) != 1 || all[0].Name != "Kelsey2" {
		t.Errorf("expected only Kelsey2 after replace, got %+v", all)
	}
}

func TestRouter_RideSnapshotFieldsAreReadOnly(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	do(t, router, http.MethodPost, "/v1/rides", domain.Ride{RideID: "r1"})

	if w := do(t, router, http.MethodPatch, "/v1/rides/fields/driver?rideid=r1", handler.FieldValueRequest{Value: "x"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for read-only field, got %d", w.Code)
	}
	if w := do(t, router, http.MethodPut, "/v1/rides/driver?rideid=r1", domain.Driver{Name: "D"}); w.Code != http.StatusOK {
		t.Errorf("expected 200 for driver swap, got %d", w.Code)
	}

	w := do(t, router, http.MethodGet, "/v1/rides/find?field=driver&value=D", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected ride by driver name, got %d", w.Code)
	}

	w = do(t, router, http.MethodDelete, "/v1/rides?rideid=r1", nil)
	if !decode[handler.RemovedResponse](t, w).Removed {
		t.Error("expected ride r1 removed")
	}
	if w := do(t, router, http.MethodDelete, "/v1/rides", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without rideid, got %d", w.Code)
	}
}

func TestRouter_RiderFieldRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter()
	do(t, router, http.MethodPost, "/v1/riders", domain.Rider{Name: "A", Email: "a@x", Address: "ra"})

	if w := do(t, router, http.MethodDelete, "/v1/riders/fields/email?address=ra", nil); w.Code != http.StatusOK {
		t.Fatalf("clear field: expected 200, got %d", w.Code)
	}
	rider := decode[domain.Rider](t, do(t, router, http.MethodGet, "/v1/riders/find?field=address&value=ra", nil))
	if rider.Email != "" {
		t.Errorf("expected email cleared, got %q", rider.Email)
	}

	w := do(t, router, http.MethodDelete, "/v1/riders?address=ra", nil)
	if !decode[handler.RemovedResponse](t, w).Removed {
		t.Error("expected rider removed")
	}
	if got := decode[[]domain.Rider](t, do(t, router, http.MethodGet, "/v1/riders", nil)); len(got) != 0 {
		t.Errorf("expected no riders, got %+v", got)
	}
}

func TestRouter_Profiles(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	if w := do(t, router, http.MethodGet, "/v1/profiles/self", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without caller, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/v1/profiles/self", nil, callerHeader, "p1"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 before any profile, got %d", w.Code)
	}

	profile := domain.Profile{Name: "alice", Description: "rider", Keywords: []string{"a"}}
	if w := do(t, router, http.MethodPut, "/v1/profiles", profile, callerHeader, "p1"); w.Code != http.StatusOK {
		t.Fatalf("update profile: expected 200, got %d", w.Code)
	}

	w := do(t, router, http.MethodGet, "/v1/profiles?name=alice", nil)
	if got := decode[domain.Profile](t, w); got.Description != "rider" {
		t.Errorf("expected profile by name, got %+v", got)
	}
	w = do(t, router, http.MethodGet, "/v1/profiles/self", nil, callerHeader, "p1")
	if got := decode[domain.Profile](t, w); got.Name != "alice" {
		t.Errorf("expected own profile, got %+v", got)
	}
}
