package httpadapter

import (
	"net/http"

	"trxclicker/internal/core/domain"
)

func (h *Handler) handleStartDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Drafts.Start(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, draftResponse{Draft: d})
}

func (h *Handler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Drafts.Get(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDraftResponse(d, nil))
}

// handleDraftInput feeds one reply to the caller's draft. The response
// always carries the draft as it stands after the input, so a client can
// render the next prompt even when the input was rejected.
func (h *Handler) handleDraftInput(w http.ResponseWriter, r *http.Request) {
	var req draftInputRequest
	if !h.decode(w, r, &req) {
		return
	}
	d, c, err := h.svc.Drafts.Input(r.Context(), callerID(r), req.Input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if c != nil {
		status = http.StatusCreated
	}
	writeJSON(w, status, newDraftResponse(d, c))
}

func newDraftResponse(d *domain.Draft, c *domain.Campaign) draftResponse {
	resp := draftResponse{Draft: d}
	if d != nil && d.State == domain.DraftConfirm {
		resp.Slots = d.Slots()
	}
	if c != nil {
		cr := toCampaignResponse(c)
		resp.Campaign = &cr
	}
	return resp
}
