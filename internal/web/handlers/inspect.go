package handlers

import (
	"net/http"

	"github.com/facegate/facegate/internal/detect"
)

// InspectResponse reports how far an image made it through the pipeline.
// On rejection Kind and Reason describe the failing stage; the report keeps
// the measurements taken up to that point.
type InspectResponse struct {
	Accepted bool           `json:"accepted"`
	Kind     string         `json:"kind,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Report   *detect.Report `json:"report"`
}

// Inspect runs the full pipeline on the uploaded image and returns the
// collected measurements. A rejected image still gets a 200 response; the
// rejection is part of the report, not a request failure.
func (h *FacesHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	image, errMsg := readImageUpload(r)
	if errMsg != "" {
		respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	report, err := h.pipeline.Inspect(image)
	resp := InspectResponse{
		Accepted: err == nil,
		Report:   report,
	}
	if err != nil {
		if kind := detect.ErrKind(err); kind != "" {
			resp.Kind = string(kind)
		}
		resp.Reason = err.Error()
	}

	respondJSON(w, http.StatusOK, resp)
}
