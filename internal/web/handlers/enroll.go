package handlers

import (
	"net/http"
	"time"

	"github.com/facegate/facegate/internal/store"
)

// embeddingModel is recorded with every stored embedding so vectors from a
// retrained model can be told apart later.
const embeddingModel = "facenet-512"

// EnrollResponse describes a completed enrollment.
type EnrollResponse struct {
	SubjectID string `json:"subject_id"`
	Dim       int    `json:"dim"`
}

// Enroll registers a subject's face. The request is a multipart form with a
// subject_id field and an image file. Re-enrolling an existing subject
// replaces the stored embedding.
func (h *FacesHandler) Enroll(w http.ResponseWriter, r *http.Request) {
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

	emb, err := h.embed(r.Context(), image)
	if err != nil {
		respondPipelineError(w, err)
		return
	}

	stored := store.StoredEmbedding{
		SubjectID: subjectID,
		Embedding: emb,
		Model:     embeddingModel,
		Dim:       len(emb),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.Save(r.Context(), stored); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store embedding")
		return
	}
	h.index.Add(subjectID, emb)

	respondJSON(w, http.StatusCreated, EnrollResponse{
		SubjectID: subjectID,
		Dim:       len(emb),
	})
}
