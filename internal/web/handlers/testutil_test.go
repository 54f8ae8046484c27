package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/facegate/facegate/internal/detect"
	"github.com/facegate/facegate/internal/store"
	"github.com/facegate/facegate/internal/store/mock"
)

// stubPipeline stands in for the detection pipeline so handler tests can
// exercise both acceptance and every rejection kind without crafting real
// face images.
type stubPipeline struct {
	tensor  []float32
	report  *detect.Report
	err     error
	inspErr error
}

func (s *stubPipeline) Preprocess(data []byte) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tensor, nil
}

func (s *stubPipeline) Inspect(data []byte) (*detect.Report, error) {
	return s.report, s.inspErr
}

func (s *stubPipeline) Config() detect.Config {
	return detect.DefaultConfig()
}

// stubEmbedder returns a fixed embedding instead of calling the model server.
type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Infer(ctx context.Context, tensor []float32, size int) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

// axisVector builds a 64-dim unit vector pointing along the given axis.
// 64 is the smallest dimension the stored-embedding validator accepts.
func axisVector(axis int) []float32 {
	v := make([]float32, 64)
	v[axis] = 1
	return v
}

// newHandler wires a faces handler from stubs with a fresh mock store and
// an empty index.
func newHandler(pipeline Preprocessor, embedder Embedder, threshold float64) (*FacesHandler, *mock.MockStore, *store.IdentifyIndex) {
	st := mock.NewMockStore()
	index := store.NewIdentifyIndex()
	h := NewFacesHandler(pipeline, embedder, st, index, threshold)
	return h, st, index
}

// newUploadRequest builds a multipart request with the given form fields and,
// unless withImage is false, a small image file part.
func newUploadRequest(t *testing.T, path string, fields map[string]string, withImage bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if withImage {
		part, err := mw.CreateFormFile("image", "probe.jpg")
		if err != nil {
			t.Fatalf("failed to create image part: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write image part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// decodeBody unmarshals a JSON response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
}
