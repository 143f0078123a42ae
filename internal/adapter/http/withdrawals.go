package httpadapter

import (
	"net/http"

	"trxclicker/internal/core/port"
)

func (h *Handler) handleRequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req withdrawalRequest
	if !h.decode(w, r, &req) {
		return
	}
	wd, err := h.svc.Withdrawals.Request(r.Context(), port.WithdrawalReq{
		UserID:   callerID(r),
		Currency: req.Currency,
		Amount:   req.Amount,
		Address:  req.Address,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWithdrawalResponse(wd))
}

func (h *Handler) handleMyWithdrawals(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Withdrawals.ListMine(r.Context(), callerID(r), limitParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toWithdrawalResponse))
}
