package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
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

type reasonRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid transaction id")
		return
	}

	t, err := h.svc.Approve(r.Context(), adminID, id, audit.MetaFromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, t)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid transaction id")
		return
	}

	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	t, err := h.svc.Reject(r.Context(), adminID, id, req.Reason, audit.MetaFromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, t)
}

func (h *Handler) Reverse(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid transaction id")
		return
	}

	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	reversal, err := h.svc.Reverse(r.Context(), adminID, id, req.Reason, audit.MetaFromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, reversal)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		response.NotFound(w, "transaction not found")
	case errors.Is(err, ledger.ErrNotPending):
		response.Conflict(w, "transaction is not pending")
	case errors.Is(err, ledger.ErrNotCompleted):
		response.Conflict(w, "transaction is not completed")
	case errors.Is(err, ledger.ErrAlreadyReversed):
		response.Conflict(w, "transaction has already been reversed")
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.UnprocessableEntity(w, "wallet balance cannot cover the reversal")
	case errors.Is(err, wallet.ErrNotFound):
		response.NotFound(w, "wallet not found")
	default:
		response.InternalError(w)
	}
}
