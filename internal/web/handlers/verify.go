package handlers

import (
	"net/http"
	"strconv"

	"github.com/facegate/facegate/internal/embedding"
)

// VerifyResponse is the outcome of a 1:1 comparison.
type VerifyResponse struct {
	SubjectID  string  `json:"subject_id"`
	Similarity float64 `json:"similarity"`
	IsMatch    bool    `json:"is_match"`
	Threshold  float64 `json:"threshold"`
}

// Verify compares an uploaded face against a subject's stored embedding.
// The request is a multipart form with a subject_id field, an image file
// and an optional threshold override.
func (h *FacesHandler) Verify(w http.ResponseWriter, r *http.Request) {
	image, errMsg := readImageUpload(r)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	subjectID := r.FormValue("subject_id")
	if subjectID == "" {
		respondError(w, http.StatusBadRequest, "subject_id is required")
		return
	}

	threshold := h.threshold
	if s := r.FormValue("threshold"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f > 1 {
			respondError(w, http.StatusBadRequest, "threshold must be a number between 0 and 1")
			return
		}
		threshold = f
	}

	stored, err := h.store.Get(r.Context(), subjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load stored embedding")
		return
	}
	if stored == nil {
		respondError(w, http.StatusNotFound, "subject is not enrolled")
		return
	}
	// Stored vectors passed through external storage are re-validated on
	// the way back in.
	vals, err := embedding.ParseStored(stored.Embedding)
	if err == nil {
		err = embedding.ValidateStored(vals)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "stored embedding is corrupt")
		return
	}

	probe, err := h.embed(r.Context(), image)
	if err != nil {
		respondPipelineError(w, err)
		return
	}

	result, err := embedding.Compare(probe, vals, threshold)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, VerifyResponse{
		SubjectID:  subjectID,
		Similarity: result.Similarity,
		IsMatch:    result.IsMatch,
		Threshold:  result.Threshold,
	})
}
