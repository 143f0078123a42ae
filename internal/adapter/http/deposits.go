package httpadapter

import (
	"net/http"

	"trxclicker/internal/core/port"
)

// handleDeclareDeposit records the caller's claim of a transfer for manual
// review. Declarations never credit the balance.
func (h *Handler) handleDeclareDeposit(w http.ResponseWriter, r *http.Request) {
	var req declareDepositRequest
	if !h.decode(w, r, &req) {
		return
	}
	d, err := h.svc.Deposits.Declare(r.Context(), port.DeclareDepositReq{
		UserID:   callerID(r),
		Currency: req.Currency,
		Amount:   req.Amount,
		TxID:     req.TxID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDepositResponse(d))
}

func (h *Handler) handleMyDeposits(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Deposits.ListMine(r.Context(), callerID(r), limitParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(list, toDepositResponse))
}
