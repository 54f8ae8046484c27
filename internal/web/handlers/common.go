package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/facegate/facegate/internal/detect"
)

// maxUploadBytes caps multipart form parsing. The pipeline enforces its own
// byte ceiling on the image itself; this only bounds the request body.
const maxUploadBytes = 12 << 20

// errInvalidRequestBody is a shared error message for invalid request bodies.
const errInvalidRequestBody = "invalid request body"

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondPipelineError maps a face pipeline failure to an HTTP response.
// Gate and locator rejections describe the submitted image, not a server
// fault, so they come back as 422 with the rejection kind attached.
func respondPipelineError(w http.ResponseWriter, err error) {
	if kind := detect.ErrKind(err); kind != "" {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": err.Error(),
			"kind":  string(kind),
		})
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// readImageUpload extracts the uploaded image bytes from a multipart form.
// Returns an empty message on success, an error message for the client otherwise.
func readImageUpload(r *http.Request) ([]byte, string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, "failed to parse multipart form"
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, "image file is required"
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "failed to read image file"
	}
	return data, ""
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
