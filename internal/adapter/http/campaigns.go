package httpadapter

import (
	"net/http"

	"trxclicker/internal/core/domain"
	"trxclicker/internal/core/port"
)

// handleCreateCampaign reserves the budget and files a pending campaign in
// one call. Insufficient balance yields 409 and nothing is created.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.svc.Campaigns.Create(r.Context(), port.CreateCampaignReq{
		OwnerID:  callerID(r),
		TaskType: domain.TaskType(req.TaskType),
		Target:   req.Target,
		CPC:      req.CPC,
		Budget:   req.Budget,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCampaignResponse(c))
}

func (h *Handler) handleMyCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Campaigns.ListMine(r.Context(), callerID(r), limitParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toCampaignResponse))
}

// handleActiveCampaigns lists approved campaigns, i.e. the task list shown
// to earners.
func (h *Handler) handleActiveCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Campaigns.ListActive(r.Context(), limitParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toCampaignResponse))
}
