package withdrawal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/paymentmethod"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
	"github.com/ebuka-odih/site-bk-sub001/internal/middleware"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	entry, err := h.svc.Create(r.Context(), userID, req, audit.MetaFromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, entry)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, paymentmethod.ErrNotFound):
		response.NotFound(w, "payment method not found")
	case errors.Is(err, paymentmethod.ErrDisabled):
		response.UnprocessableEntity(w, "payment method is disabled")
	case errors.Is(err, paymentmethod.ErrBelowMinimum):
		response.UnprocessableEntity(w, "amount is below the method minimum")
	case errors.Is(err, paymentmethod.ErrAboveMaximum):
		response.UnprocessableEntity(w, "amount is above the method maximum")
	case errors.Is(err, wallet.ErrNotFound):
		response.NotFound(w, "wallet not found")
	case errors.Is(err, wallet.ErrNotActive):
		response.Forbidden(w, "wallet is not active")
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.UnprocessableEntity(w, "insufficient funds")
	default:
		response.InternalError(w)
	}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/", h.Create)
	return r
}
