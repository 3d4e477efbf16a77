package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akarpov/oilpulse/internal/domain/dto"
	"github.com/akarpov/oilpulse/internal/domain/models"
	"github.com/akarpov/oilpulse/internal/service"
)

type mockSnapshotService struct {
	items      []models.Snapshot
	total      int
	codes      []string
	products   []models.Product
	err        error
	lastFilter models.SnapshotFilter
}

func (m *mockSnapshotService) ListSnapshots(_ context.Context, f models.SnapshotFilter) ([]models.Snapshot, int, error) {
	m.lastFilter = f
	return m.items, m.total, m.err
}
func (m *mockSnapshotService) ListInstrumentCodes(context.Context) ([]string, error) {
	return m.codes, m.err
}
func (m *mockSnapshotService) CreateProduct(_ context.Context, name string) (models.Product, error) {
	if m.err != nil {
		return models.Product{}, m.err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Product{}, service.ErrEmptyProductName
	}
	return models.Product{ID: 1, Name: name}, nil
}
func (m *mockSnapshotService) ListProducts(context.Context) ([]models.Product, error) {
	return m.products, m.err
}

var _ service.SnapshotService = (*mockSnapshotService)(nil)

func setupRouterWithMock(s service.SnapshotService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/snapshots", h.ListSnapshots)
	v1.GET("/snapshots/codes", h.ListInstrumentCodes)
	v1.GET("/products", h.ListProducts)
	v1.POST("/products", h.CreateProduct)
	return r
}

func TestListSnapshots_TableDriven(t *testing.T) {
	d := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	sample := models.Snapshot{
		ID:             1,
		InstrumentCode: "CODE",
		InstrumentName: "Бензин, база",
		Date:           d,
		Product:        "Бензин",
	}

	cases := []struct {
		name   string
		svc    *mockSnapshotService
		query  string
		status int
		assert func(t *testing.T, svc *mockSnapshotService, body []byte)
	}{
		{
			name:   "bad date_from",
			svc:    &mockSnapshotService{},
			query:  "/api/v1/snapshots?date_from=29.08.2025",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad date_to",
			svc:    &mockSnapshotService{},
			query:  "/api/v1/snapshots?date_to=2025/08/29",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad price bound",
			svc:    &mockSnapshotService{},
			query:  "/api/v1/snapshots?price_from=abc",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad page",
			svc:    &mockSnapshotService{},
			query:  "/api/v1/snapshots?page=0",
			status: http.StatusBadRequest,
		},
		{
			name:   "empty result is 200 with empty items",
			svc:    &mockSnapshotService{},
			query:  "/api/v1/snapshots?product=ничего",
			status: http.StatusOK,
			assert: func(t *testing.T, _ *mockSnapshotService, body []byte) {
				var resp dto.SnapshotListResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if resp.Items == nil || len(resp.Items) != 0 || resp.Total != 0 {
					t.Fatalf("unexpected %+v", resp)
				}
			},
		},
		{
			name:   "filters reach the service",
			svc:    &mockSnapshotService{items: []models.Snapshot{sample}, total: 120},
			query:  "/api/v1/snapshots?date_from=2025-08-01&date_to=2025-08-31&instrument_code=A&instrument_code=B&product=Бензин&price_from=100&price_to=2000&sort=market_price&dir=asc&page=3",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockSnapshotService, body []byte) {
				f := svc.lastFilter
				if f.DateFrom == nil || f.DateTo == nil || f.PriceFrom == nil || f.PriceTo == nil {
					t.Fatalf("bounds not parsed: %+v", f)
				}
				if len(f.InstrumentCodes) != 2 || f.InstrumentCodes[0] != "A" {
					t.Fatalf("codes not parsed: %+v", f.InstrumentCodes)
				}
				if f.Product != "Бензин" || f.SortLabel != "market_price" || f.Descending {
					t.Fatalf("filter wrong: %+v", f)
				}
				if f.Limit != 50 || f.Offset != 100 {
					t.Fatalf("page window wrong: limit=%d offset=%d", f.Limit, f.Offset)
				}

				var resp dto.SnapshotListResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if resp.Total != 120 || resp.Page != 3 || resp.PageSize != 50 || len(resp.Items) != 1 {
					t.Fatalf("unexpected %+v", resp)
				}
				if resp.Items[0].Date != "2025-08-29" || resp.Items[0].Product != "Бензин" {
					t.Fatalf("unexpected item %+v", resp.Items[0])
				}
				if resp.Items[0].MarketPrice != nil {
					t.Fatalf("null market price must render as null")
				}
			},
		},
		{
			name:   "service error",
			svc:    &mockSnapshotService{err: errors.New("db down")},
			query:  "/api/v1/snapshots",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.status, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestListInstrumentCodes(t *testing.T) {
	r := setupRouterWithMock(&mockSnapshotService{codes: []string{"A", "B"}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/snapshots/codes", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp["codes"]) != 2 {
		t.Fatalf("unexpected %+v", resp)
	}
}

func TestCreateProduct_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		svc    *mockSnapshotService
		status int
	}{
		{name: "created", body: `{"name":"Нефть"}`, svc: &mockSnapshotService{}, status: http.StatusCreated},
		{name: "missing name", body: `{}`, svc: &mockSnapshotService{}, status: http.StatusBadRequest},
		{name: "blank name", body: `{"name":"   "}`, svc: &mockSnapshotService{}, status: http.StatusBadRequest},
		{name: "invalid json", body: `{`, svc: &mockSnapshotService{}, status: http.StatusBadRequest},
		{name: "service error", body: `{"name":"Нефть"}`, svc: &mockSnapshotService{err: errors.New("db down")}, status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.status, w.Body.String())
			}
		})
	}
}

func TestListProducts(t *testing.T) {
	r := setupRouterWithMock(&mockSnapshotService{products: []models.Product{{ID: 1, Name: "Нефть"}}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp []dto.ProductResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp) != 1 || resp[0].Name != "Нефть" {
		t.Fatalf("unexpected %+v", resp)
	}
}
