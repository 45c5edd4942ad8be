package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/spicy-pepper-shop/api/docs"
	"github.com/angelmondragon/spicy-pepper-shop/internal/accounts"
	"github.com/angelmondragon/spicy-pepper-shop/internal/admin"
	"github.com/angelmondragon/spicy-pepper-shop/internal/orders"
	"github.com/angelmondragon/spicy-pepper-shop/internal/products"
	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/config"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/metrics"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/types"
)

func newTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	cfg := &config.Config{
		App:     config.AppConfig{Env: "dev", PublicURL: "http://localhost:3333"},
		Admin:   config.AdminConfig{Name: "admin", Password: "admin"},
		Metrics: config.MetricsConfig{Enabled: true},
	}
	reg := prometheus.NewRegistry()
	shop := metrics.NewShopMetrics(reg)

	st := store.New()
	orderService, err := orders.NewService(orders.ServiceParams{Store: st, Logger: logg, Recorder: shop})
	if err != nil {
		t.Fatalf("orders service: %v", err)
	}
	adminService := admin.NewService(admin.ServiceParams{
		Store:    st,
		Admin:    admin.Credentials{Name: cfg.Admin.Name, Password: cfg.Admin.Password},
		Logger:   logg,
		Recorder: shop,
	})

	return NewRouter(
		cfg,
		logg,
		metrics.NewHTTPMetrics(reg),
		reg,
		accounts.NewService(st, logg),
		products.NewService(st, logg),
		orderService,
		adminService,
	), st
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dest); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestLoginScenarios(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, name := range []string{"Chili Lover", "chili lover"} {
		rec := do(t, h, http.MethodPost, "/api/login", `{"name":"`+name+`","password":"pepper123"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", name, rec.Code)
		}
		var body struct {
			Account map[string]any `json:"account"`
		}
		decode(t, rec, &body)
		if body.Account["name"] != "Chili Lover" {
			t.Fatalf("unexpected account %v", body.Account)
		}
		if _, ok := body.Account["password"]; ok {
			t.Fatalf("password leaked")
		}
	}
}

func TestAccountRoundTripHidesPassword(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/accounts", `{"name":"Round Trip","email":"rt@example.com","password":"hunter2"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/accounts", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") || strings.Contains(rec.Body.String(), "hunter2") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}
	var list []map[string]any
	decode(t, rec, &list)
	if len(list) != 5 {
		t.Fatalf("expected 5 accounts, got %d", len(list))
	}
}

func TestOrderPlacementScenario(t *testing.T) {
	h, st := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/orders", `{"accountId":"1","items":[{"productId":"10","qty":2}]}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var order map[string]any
	decode(t, rec, &order)
	if order["total"] != float64(9) {
		t.Fatalf("expected total 9, got %v", order["total"])
	}
	if p, _ := st.Snapshot().FindProduct("10"); p.Stock != 23 {
		t.Fatalf("expected stock 23, got %d", p.Stock)
	}

	rec = do(t, h, http.MethodGet, "/api/orders?accountId=1", "", nil)
	var list []map[string]any
	decode(t, rec, &list)
	if len(list) != 1 || list[0]["accountName"] != "Chili Lover" {
		t.Fatalf("unexpected orders %v", list)
	}
}

func TestOrderBoundaryLeavesStoreUntouched(t *testing.T) {
	h, st := newTestRouter(t)
	before := st.Snapshot()

	rec := do(t, h, http.MethodPost, "/api/orders", `{"accountId":"1","items":[{"productId":"10","qty":1},{"productId":"12","qty":41}]}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	after := st.Snapshot()
	for _, p := range before.Products {
		got, _ := after.FindProduct(p.ID)
		if got.Stock != p.Stock {
			t.Fatalf("stock of %s changed from %d to %d", p.ID, p.Stock, got.Stock)
		}
	}
	if len(after.Orders) != 0 || after.NextID != before.NextID {
		t.Fatalf("order state changed")
	}
}

func TestResetWrongPasswordKeepsState(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodDelete, "/api/products/10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/reset", `{"name":"admin","password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/products", "", nil)
	var list []map[string]any
	decode(t, rec, &list)
	if len(list) != 5 {
		t.Fatalf("expected the earlier delete to survive, got %d products", len(list))
	}
}

func TestResetIsIdempotent(t *testing.T) {
	h, _ := newTestRouter(t)
	headers := map[string]string{"x-admin-name": "ADMIN", "x-admin-password": "admin"}

	do(t, h, http.MethodPost, "/api/accounts", `{"name":"a","email":"b","password":"c"}`, nil)
	do(t, h, http.MethodPost, "/api/orders", `{"accountId":"2","items":[{"productId":"11","qty":3}]}`, nil)

	var snapshots []string
	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/api/reset", "", headers)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body struct {
			Status string `json:"status"`
			State  struct {
				NextID   int              `json:"nextId"`
				Accounts []map[string]any `json:"accounts"`
				Products []map[string]any `json:"products"`
				Orders   []map[string]any `json:"orders"`
			} `json:"state"`
		}
		decode(t, rec, &body)
		if body.Status != "reset" || body.State.NextID != store.SeedBaseID ||
			len(body.State.Accounts) != 4 || len(body.State.Products) != 6 || len(body.State.Orders) != 0 {
			t.Fatalf("unexpected reset state %+v", body)
		}
		rec = do(t, h, http.MethodGet, "/api/products", "", nil)
		snapshots = append(snapshots, rec.Body.String())
	}
	if snapshots[0] != snapshots[1] {
		t.Fatalf("reset is not deterministic")
	}
}

func TestResetHidesPasswords(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/reset", `{"name":"admin","password":"admin"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"password"`) || strings.Contains(rec.Body.String(), "spicelord") {
		t.Fatalf("reset body leaks passwords: %s", rec.Body.String())
	}
	var body struct {
		State struct {
			Accounts []map[string]any `json:"accounts"`
		} `json:"state"`
	}
	decode(t, rec, &body)
	if len(body.State.Accounts) != 4 || body.State.Accounts[3]["name"] != "admin" {
		t.Fatalf("unexpected accounts %+v", body.State.Accounts)
	}
}

func TestDeleteUnknownProduct(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodDelete, "/api/products/does-not-exist", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body types.ErrorBody
	decode(t, rec, &body)
	if body.Error == "" {
		t.Fatalf("expected error body")
	}

	rec = do(t, h, http.MethodGet, "/api/products", "", nil)
	var list []map[string]any
	decode(t, rec, &list)
	if len(list) != 6 {
		t.Fatalf("catalog changed: %d products", len(list))
	}
}

func TestPreflightAndCORS(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodOptions, "/api/orders", "", nil)
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header on 404")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)
	do(t, h, http.MethodPost, "/api/orders", `{"accountId":"1","items":[{"productId":"10","qty":1}]}`, nil)

	rec := do(t, h, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, want := range []string{"orders_created_total 1", "http_requests_total"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestDocumentMatchesRoutes(t *testing.T) {
	h, _ := newTestRouter(t)
	mux, ok := h.(chi.Routes)
	if !ok {
		t.Fatalf("router does not expose its routes")
	}

	var served []string
	err := chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if strings.HasPrefix(route, "/api/") {
			served = append(served, method+" "+strings.TrimSuffix(route, "/"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk routes: %v", err)
	}

	var documented []string
	for _, route := range docs.NewDocument("").Routes() {
		documented = append(documented, route.Method+" "+route.Path)
	}

	sort.Strings(served)
	sort.Strings(documented)
	if strings.Join(served, "\n") != strings.Join(documented, "\n") {
		t.Fatalf("document and router disagree\nserved:\n%s\ndocumented:\n%s", strings.Join(served, "\n"), strings.Join(documented, "\n"))
	}
}

func TestDocsRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/openapi.json", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Spicy Pepper Shop API") {
		t.Fatalf("unexpected openapi response %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api-docs", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "swagger-ui") {
		t.Fatalf("unexpected docs response %d", rec.Code)
	}
}
