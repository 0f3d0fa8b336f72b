package request

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ekovaleva/procurement-assist/internal/types/request"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRequestRouter() (chi.Router, *fakeRepo) {
	repo := newFakeRepo()
	h := NewHandler(newTestService(repo))
	r := chi.NewRouter()
	r.Post("/api/requests", h.CreateRequest)
	r.Get("/api/requests", h.ListRequests)
	r.Get("/api/requests/{id}", h.GetRequest)
	r.Patch("/api/requests/{id}/status", h.UpdateStatus)
	return r, repo
}

const validBody = `{
	"requestor_name": "Alice Smith",
	"title": "Office laptops",
	"vendor_name": "TechSupply GmbH",
	"vat_id": "DE123456789",
	"commodity_group_id": "002",
	"department": "IT",
	"order_lines": [
		{"description": "Laptop", "unit_price": 10, "amount": 3, "unit": "pcs", "total_price": 30}
	],
	"total_cost": 30
}`

func TestHandlerCreateRequest(t *testing.T) {
	router, _ := setupRequestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created request.Request
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "REQ-0001", created.ID)
	assert.Equal(t, request.StatusOpen, created.Status)
}

func TestHandlerCreateRequestValidationError(t *testing.T) {
	router, _ := setupRequestRouter()

	body := strings.Replace(validBody, `"Alice Smith"`, `""`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandlerCreateRequestBadJSON(t *testing.T) {
	router, _ := setupRequestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(`{"title":`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGetRequestNotFound(t *testing.T) {
	router, _ := setupRequestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/requests/REQ-0042", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerGetRequestIncludesHistory(t *testing.T) {
	router, _ := setupRequestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(validBody)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/requests/REQ-0001", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got request.Request
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.StatusHistory, 1)
	assert.Equal(t, request.StatusOpen, got.StatusHistory[0].Status)
}

func TestHandlerListRequestsEmpty(t *testing.T) {
	router, _ := setupRequestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/requests", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHandlerUpdateStatus(t *testing.T) {
	router, _ := setupRequestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(validBody)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/requests/REQ-0001/status",
		strings.NewReader(`{"status":"In Progress"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got request.Request
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, request.StatusInProgress, got.Status)
	assert.Len(t, got.StatusHistory, 2)
}

func TestHandlerUpdateStatusInvalid(t *testing.T) {
	router, _ := setupRequestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/requests", strings.NewReader(validBody)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/requests/REQ-0001/status",
		strings.NewReader(`{"status":"Cancelled"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandlerUpdateStatusNotFound(t *testing.T) {
	router, _ := setupRequestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/requests/REQ-0042/status",
		strings.NewReader(`{"status":"Closed"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
