package handlers

import (
	"net/http"
	"strconv"

	"github.com/facegate/facegate/internal/store"
)

const (
	defaultIdentifyLimit = 5
	maxIdentifyLimit     = 20
)

// IdentifyMatch is the best candidate above the match threshold.
type IdentifyMatch struct {
	SubjectID  string  `json:"subject_id"`
	Similarity float64 `json:"similarity"`
}

// IdentifyResponse lists the nearest enrolled subjects for a probe image.
// Match is only set when the best candidate clears the threshold.
type IdentifyResponse struct {
	Match      *IdentifyMatch    `json:"match,omitempty"`
	Candidates []store.Candidate `json:"candidates"`
	Threshold  float64           `json:"threshold"`
}

// Identify searches the enrolled subjects for the face in the uploaded image.
// The request is a multipart form with an image file and an optional limit.
func (h *FacesHandler) Identify(w http.ResponseWriter, r *http.Request) {
	image, errMsg := readImageUpload(r)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	limit := defaultIdentifyLimit
	if s := r.FormValue("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxIdentifyLimit {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 20")
			return
		}
		limit = n
	}

	probe, err := h.embed(r.Context(), image)
	if err != nil {
		respondPipelineError(w, err)
		return
	}

	candidates, err := h.index.Search(probe, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "similarity search failed")
		return
	}
	if candidates == nil {
		candidates = []store.Candidate{}
	}

	resp := IdentifyResponse{
		Candidates: candidates,
		Threshold:  h.threshold,
	}
	if len(candidates) > 0 && candidates[0].Similarity >= h.threshold {
		resp.Match = &IdentifyMatch{
			SubjectID:  candidates[0].SubjectID,
			Similarity: candidates[0].Similarity,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
