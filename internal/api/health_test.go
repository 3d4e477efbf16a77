package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthEndpoints(t *testing.T) {
	cases := []struct {
		name       string
		ping       func() error
		path       string
		wantStatus int
	}{
		{name: "healthz always ok", ping: nil, path: "/healthz", wantStatus: http.StatusOK},
		{name: "readyz ok when db pings", ping: func() error { return nil }, path: "/readyz", wantStatus: http.StatusOK},
		{name: "readyz degraded when db down", ping: func() error { return errors.New("down") }, path: "/readyz", wantStatus: http.StatusServiceUnavailable},
		{name: "readyz ok with nil ping", ping: nil, path: "/readyz", wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			NewHealthHandler(tc.ping).Register(r)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.wantStatus {
				t.Fatalf("status=%d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}
