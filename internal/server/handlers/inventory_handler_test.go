package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbaye/vsphere-inventory/internal/domain/models"
	"github.com/mbaye/vsphere-inventory/internal/server/handlers"
	"github.com/mbaye/vsphere-inventory/internal/server/router"
)

type fakeCollector struct {
	snapshot   *models.InventorySnapshot
	collectErr error
	latestErr  error
}

func (f *fakeCollector) Collect(ctx context.Context) (*models.InventorySnapshot, error) {
	if f.collectErr != nil {
		return nil, f.collectErr
	}
	return f.snapshot, nil
}

func (f *fakeCollector) Latest(ctx context.Context) (*models.InventorySnapshot, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.snapshot, nil
}

func newTestRouter(collector *fakeCollector) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewInventoryHandler(collector, nil)
	return router.New(handler, nil)
}

func testSnapshot() *models.InventorySnapshot {
	return &models.InventorySnapshot{
		Source:         "vcenter.example.com",
		CollectedAt:    time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		VMCount:        1,
		HostCount:      2,
		DatastoreCount: 1,
		VirtualMachines: []models.VirtualMachineAsset{
			{Name: "web-01", PowerState: "poweredOn", GuestIP: "10.20.30.40"},
		},
		Hosts: []models.HostAsset{
			{Name: "esxi-01.example.com"},
			{Name: "esxi-02.example.com"},
		},
		Datastores: []models.DatastoreAsset{
			{Name: "datastore1", Type: "VMFS"},
		},
	}
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestLatest(t *testing.T) {
	engine := newTestRouter(&fakeCollector{snapshot: testSnapshot()})

	rec := doRequest(t, engine, http.MethodGet, "/inventory")
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot models.InventorySnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, "vcenter.example.com", snapshot.Source)
	assert.Equal(t, 1, snapshot.VMCount)
}

func TestLatestNoneCollected(t *testing.T) {
	engine := newTestRouter(&fakeCollector{})

	rec := doRequest(t, engine, http.MethodGet, "/inventory")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no inventory collected yet")
}

func TestLatestStoreError(t *testing.T) {
	engine := newTestRouter(&fakeCollector{latestErr: errors.New("mongo down")})

	rec := doRequest(t, engine, http.MethodGet, "/inventory")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVirtualMachines(t *testing.T) {
	engine := newTestRouter(&fakeCollector{snapshot: testSnapshot()})

	rec := doRequest(t, engine, http.MethodGet, "/inventory/vms")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Source          string                       `json:"source"`
		VirtualMachines []models.VirtualMachineAsset `json:"virtual_machines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "vcenter.example.com", body.Source)
	require.Len(t, body.VirtualMachines, 1)
	assert.Equal(t, "web-01", body.VirtualMachines[0].Name)
}

func TestHostsAndDatastores(t *testing.T) {
	engine := newTestRouter(&fakeCollector{snapshot: testSnapshot()})

	rec := doRequest(t, engine, http.MethodGet, "/inventory/hosts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "esxi-01.example.com")

	rec = doRequest(t, engine, http.MethodGet, "/inventory/datastores")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "datastore1")
}

func TestRefresh(t *testing.T) {
	engine := newTestRouter(&fakeCollector{snapshot: testSnapshot()})

	rec := doRequest(t, engine, http.MethodPost, "/inventory/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["vms"])
	assert.Equal(t, float64(2), body["hosts"])
}

func TestRefreshFailure(t *testing.T) {
	engine := newTestRouter(&fakeCollector{collectErr: errors.New("vcenter unreachable")})

	rec := doRequest(t, engine, http.MethodPost, "/inventory/refresh")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthz(t *testing.T) {
	engine := newTestRouter(&fakeCollector{})

	rec := doRequest(t, engine, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
