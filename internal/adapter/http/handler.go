package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"trxclicker/internal/core/port"
)

// Services groups the usecases the HTTP adapter exposes.
type Services struct {
	Users       port.UserUseCase
	Ledger      port.LedgerUseCase
	Campaigns   port.CampaignUseCase
	Drafts      port.DraftUseCase
	Withdrawals port.WithdrawalUseCase
	Deposits    port.DepositUseCase
	Admin       port.AdminUseCase
}

// Ops holds the unauthenticated operational endpoints. Nil handlers are not
// mounted.
type Ops struct {
	Metrics http.Handler
	Health  http.Handler
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: every /api/v1 route requires a bearer token identifying the caller.
type Handler struct {
	svc      Services
	auth     *TokenVerifier
	validate *validator.Validate
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc Services, auth *TokenVerifier, ops Ops, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, auth: auth, validate: validator.New(), logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	if ops.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", ops.Metrics)
	}
	if ops.Health != nil {
		r.Method(http.MethodGet, "/healthz", ops.Health)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.authenticate)

		r.Post("/users", h.handleRegister)
		r.Get("/me", h.handleMe)
		r.Post("/referrals", h.handleApplyReferral)
		r.Get("/balances", h.handleBalances)

		r.Post("/campaigns", h.handleCreateCampaign)
		r.Get("/campaigns", h.handleMyCampaigns)
		r.Get("/tasks", h.handleActiveCampaigns)

		r.Post("/campaign-draft", h.handleStartDraft)
		r.Get("/campaign-draft", h.handleGetDraft)
		r.Post("/campaign-draft/input", h.handleDraftInput)

		r.Post("/withdrawals", h.handleRequestWithdrawal)
		r.Get("/withdrawals", h.handleMyWithdrawals)

		r.Post("/deposits", h.handleDeclareDeposit)
		r.Get("/deposits", h.handleMyDeposits)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/pending", h.handleListPending)
			r.Get("/users", h.handleListUsers)
			r.Get("/deposits/unattributed", h.handleUnattributedDeposits)
			r.Post("/{kind}/{id}/decision", h.handleDecision)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
