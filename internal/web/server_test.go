package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/facegate/facegate/internal/detect"
	"github.com/facegate/facegate/internal/store"
	"github.com/facegate/facegate/internal/store/mock"
	"github.com/facegate/facegate/internal/web/handlers"
)

type noopPipeline struct{}

func (noopPipeline) Preprocess(data []byte) ([]float32, error) {
	return nil, &detect.Error{Kind: detect.KindValidation, Message: "cannot decode image"}
}

func (noopPipeline) Inspect(data []byte) (*detect.Report, error) {
	return &detect.Report{}, &detect.Error{Kind: detect.KindValidation, Message: "cannot decode image"}
}

func (noopPipeline) Config() detect.Config {
	return detect.DefaultConfig()
}

type noopEmbedder struct{}

func (noopEmbedder) Infer(ctx context.Context, tensor []float32, size int) ([]float32, error) {
	return nil, nil
}

func newTestServer() *Server {
	faces := handlers.NewFacesHandler(noopPipeline{}, noopEmbedder{}, mock.NewMockStore(), store.NewIdentifyIndex(), 0.6)
	return NewServer("localhost:0", faces)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"Health", http.MethodGet, "/api/v1/health", http.StatusOK},
		{"EnrollWithoutBody", http.MethodPost, "/api/v1/enroll", http.StatusBadRequest},
		{"VerifyWithoutBody", http.MethodPost, "/api/v1/verify", http.StatusBadRequest},
		{"IdentifyWithoutBody", http.MethodPost, "/api/v1/identify", http.StatusBadRequest},
		{"InspectWithoutBody", http.MethodPost, "/api/v1/inspect", http.StatusBadRequest},
		{"DeleteUnknownSubject", http.MethodDelete, "/api/v1/subjects/ghost", http.StatusNotFound},
		{"Stats", http.MethodGet, "/api/v1/stats", http.StatusOK},
		{"UnknownRoute", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
		{"WrongMethod", http.MethodGet, "/api/v1/enroll", http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/enroll", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("expected allowed methods header on preflight")
	}
}
