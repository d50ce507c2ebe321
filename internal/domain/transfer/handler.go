package transfer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/authcode"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/user"
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

func (h *Handler) Internal(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req InternalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	entry, err := h.svc.Internal(r.Context(), userID, req, audit.MetaFromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, entry)
}

func (h *Handler) Wire(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req WireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	entry, err := h.svc.Wire(r.Context(), userID, req, audit.MetaFromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, entry)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrLocked):
		response.Forbidden(w, "account is locked")
	case errors.Is(err, user.ErrPinNotSet):
		response.UnprocessableEntity(w, "transaction PIN is not set")
	case errors.Is(err, user.ErrPinMismatch):
		response.Forbidden(w, "incorrect PIN")
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
	case errors.Is(err, ErrRecipientNotFound):
		response.NotFound(w, "recipient account not found")
	case errors.Is(err, ErrSelfTransfer):
		response.BadRequest(w, "cannot transfer to your own account")
	case errors.Is(err, wallet.ErrNotFound):
		response.NotFound(w, "wallet not found")
	case errors.Is(err, wallet.ErrNotActive):
		response.Forbidden(w, "wallet is not active")
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.UnprocessableEntity(w, "insufficient funds")
	case errors.Is(err, wallet.ErrInvalidAmount):
		response.BadRequest(w, "amount must be positive")
	default:
		response.InternalError(w)
	}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/internal", h.Internal)
	r.Post("/wire", h.Wire)
	return r
}
