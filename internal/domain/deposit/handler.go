package deposit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/authcode"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/paymentmethod"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/wallet"
	"github.com/ebuka-odih/site-bk-sub001/internal/middleware"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/validator"
)

type Handler struct {
	svc      *Service
	currency string
}

func NewHandler(svc *Service, currency string) *Handler {
	return &Handler{svc: svc, currency: currency}
}

func (h *Handler) ViaCode(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req CodeDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	entry, err := h.svc.ViaCode(r.Context(), userID, req, h.currency, audit.MetaFromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, entry)
}

func (h *Handler) ViaMethod(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req MethodDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	entry, err := h.svc.ViaMethod(r.Context(), userID, req, h.currency, audit.MetaFromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, entry)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authcode.ErrCodeNotFound):
		response.NotFound(w, "authorization code not found")
	case errors.Is(err, authcode.ErrCodeExpired):
		response.UnprocessableEntity(w, "authorization code has expired")
	case errors.Is(err, authcode.ErrCodeAlreadyUsed):
		response.Conflict(w, "authorization code already used")
	case errors.Is(err, authcode.ErrCodeTypeMismatch):
		response.UnprocessableEntity(w, "code cannot authorize this operation")
	case errors.Is(err, authcode.ErrCodeAmountMismatch):
		response.UnprocessableEntity(w, "amount does not match the code")
	case errors.Is(err, wallet.ErrInvalidAmount):
		response.BadRequest(w, "amount must be positive")
	case errors.Is(err, wallet.ErrNotActive):
		response.Forbidden(w, "wallet is not active")
	case errors.Is(err, paymentmethod.ErrNotFound):
		response.NotFound(w, "payment method not found")
	case errors.Is(err, paymentmethod.ErrDisabled):
		response.UnprocessableEntity(w, "payment method is disabled")
	case errors.Is(err, paymentmethod.ErrBelowMinimum):
		response.UnprocessableEntity(w, "amount is below the method minimum")
	case errors.Is(err, paymentmethod.ErrAboveMaximum):
		response.UnprocessableEntity(w, "amount is above the method maximum")
	case errors.Is(err, paymentmethod.ErrReferenceRequired):
		response.BadRequest(w, "payment reference is required for this method")
	default:
		response.InternalError(w)
	}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/", h.ViaMethod)
	r.Post("/code", h.ViaCode)
	return r
}
