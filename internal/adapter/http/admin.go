package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"trxclicker/internal/core/domain"
)

// handleDecision approves or rejects the entity named by {kind} and {id}.
// A repeated decision answers 200 {"status":"already_decided"} and changes
// nothing.
func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if !h.decode(w, r, &req) {
		return
	}
	kind := domain.EntityKind(chi.URLParam(r, "kind"))
	res, err := h.svc.Admin.Decide(r.Context(), callerID(r), kind, chi.URLParam(r, "id"), domain.Decision(req.Decision))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if res.AlreadyDecided {
		writeJSON(w, http.StatusOK, statusResponse{Status: "already_decided"})
		return
	}
	writeJSON(w, http.StatusOK, decisionResponse{
		Kind:     string(res.Kind),
		ID:       res.ID,
		Decision: string(res.Decision),
		Status:   string(res.Status),
	})
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Admin.ListPending(r.Context(), callerID(r), limitParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPendingResponse(items))
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Admin.ListUsers(r.Context(), callerID(r), limitParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(users, toUserResponse))
}

func (h *Handler) handleUnattributedDeposits(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Deposits.ListUnattributed(r.Context(), callerID(r), limitParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toDepositResponse))
}
