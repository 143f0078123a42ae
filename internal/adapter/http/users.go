package httpadapter

import (
	"net/http"
)

// handleRegister creates the caller's account. Registering again is not an
// error: the existing user is returned with created=false and the referral
// token, if any, is only honoured once.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.Users.Register(r.Context(), callerID(r), req.Ref)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, registerResponse{
		User:             toUserResponse(res.User),
		Created:          res.Created,
		ReferralCredited: res.ReferralCredited,
	})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Users.GetUser(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (h *Handler) handleApplyReferral(w http.ResponseWriter, r *http.Request) {
	var req referralRequest
	if !h.decode(w, r, &req) {
		return
	}
	credited, err := h.svc.Users.ApplyReferral(r.Context(), callerID(r), req.ReferrerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"credited": credited})
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.Ledger.Balances(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}
