package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lyvest/lyvest-backend/api/controllers"
	cartsvc "github.com/lyvest/lyvest-backend/internal/cart"
	favoritessvc "github.com/lyvest/lyvest-backend/internal/favorites"
	sizingsvc "github.com/lyvest/lyvest-backend/internal/sizing"
	"github.com/lyvest/lyvest-backend/pkg/config"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	return NewRouter(Params{
		Config:   &config.Config{App: config.AppConfig{Env: "test"}},
		Cart:     cartsvc.NewService(ctx, cartsvc.ServiceParams{}),
		Favorite: favoritessvc.NewService(ctx, favoritessvc.ServiceParams{}),
		Sizing:   sizingsvc.NewAdvisor(sizingsvc.AdvisorParams{}),
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "live", envelope["data"].(map[string]any)["status"])
}

func TestHealthReadySkipsAbsentDependencies(t *testing.T) {
	t.Parallel()

	router := NewRouter(Params{
		Config:      &config.Config{App: config.AppConfig{Env: "test"}},
		ReadyChecks: map[string]controllers.Pinger{"db": nil},
	})
	rec, envelope := doJSON(t, router, http.MethodGet, "/health/ready", "")
	require.Equal(t, http.StatusOK, rec.Code)
	checks := envelope["data"].(map[string]any)["checks"].(map[string]any)
	require.Equal(t, "skipped", checks["db"])
}

func TestCartAddAndFetch(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/cart",
		`{"id":"p1","name":"Renda Bralette","price":"59.90","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	totals := envelope["data"].(map[string]any)["totals"].(map[string]any)
	require.Equal(t, float64(2), totals["count"])

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := envelope["data"].(map[string]any)["items"].([]any)
	require.Len(t, items, 1)
}

func TestCartCouponRoundTrip(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	doJSON(t, router, http.MethodPost, "/api/v1/cart",
		`{"id":"p1","name":"Conjunto Luxo","price":"100","quantity":1}`)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/cart/coupon", `{"code":"BEMVINDA10"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].(map[string]any)
	require.Equal(t, true, data["applied"])
	require.Equal(t, "90", data["totals"].(map[string]any)["total"])

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/v1/cart/coupon", `{"code":"NOPE"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data = envelope["data"].(map[string]any)
	require.Equal(t, false, data["applied"])
}

func TestCouponRequiresCode(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/cart/coupon", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavoriteToggleRoundTrip(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodPut, "/api/v1/favorites/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, envelope["data"].(map[string]any)["favorited"])

	rec, envelope = doJSON(t, router, http.MethodPut, "/api/v1/favorites/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, envelope["data"].(map[string]any)["favorited"])
}

func TestFavoritesSyncRequiresSessionUser(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/favorites/sync", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSizingRecommendation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/sizing/recommendation",
		`{"heightCm":165,"weightKg":58,"bustType":"medium","hipType":"medium","fitPreference":"comfortable"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := envelope["data"].(map[string]any)
	require.Equal(t, "M", data["size"])
	require.InDelta(t, 0.92, data["confidence"].(float64), 1e-9)
	require.Equal(t, "G", data["alternativeSize"])
}

func TestSizingRecommendationValidatesBody(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/sizing/recommendation",
		`{"heightCm":300,"weightKg":58,"bustType":"medium","hipType":"medium","fitPreference":"comfortable"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSizingReferences(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/v1/sizing/references",
		`{"heightCm":165,"weightKg":58,"bustType":"medium","hipType":"medium","fitPreference":"snug"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	refs := envelope["data"].(map[string]any)["references"].([]any)
	require.Len(t, refs, 3)
	require.Equal(t, "Camila", refs[0].(map[string]any)["name"])
}
