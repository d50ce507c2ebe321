package authcode

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
	"github.com/ebuka-odih/site-bk-sub001/internal/middleware"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/validator"
)

type Handler struct {
	svc        *Service
	defaultTTL time.Duration
}

func NewHandler(svc *Service, defaultTTL time.Duration) *Handler {
	return &Handler{svc: svc, defaultTTL: defaultTTL}
}

type issueRequest struct {
	Type      string `json:"type" validate:"required,txn_type"`
	Amount    *int64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Notes     string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Count     int    `json:"count,omitempty"`
}

func (h *Handler) parseIssue(w http.ResponseWriter, r *http.Request) (*IssueParams, int, bool) {
	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return nil, 0, false
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return nil, 0, false
	}

	expiresAt := time.Now().Add(h.defaultTTL)
	if req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			response.BadRequest(w, "expires_at must be RFC3339")
			return nil, 0, false
		}
		if parsed.Before(time.Now()) {
			response.BadRequest(w, "expires_at must be in the future")
			return nil, 0, false
		}
		expiresAt = parsed
	}

	return &IssueParams{
		Type:      ledger.Type(req.Type),
		Amount:    req.Amount,
		ExpiresAt: expiresAt,
		CreatedBy: middleware.GetUserID(r.Context()),
		Notes:     req.Notes,
	}, req.Count, true
}

func (h *Handler) Issue(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	params, _, ok := h.parseIssue(w, r)
	if !ok {
		return
	}

	code, err := h.svc.Issue(r.Context(), *params, audit.MetaFromRequest(r))
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, code)
}

func (h *Handler) IssueBulk(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserID(r.Context()) == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	params, count, ok := h.parseIssue(w, r)
	if !ok {
		return
	}

	codes, err := h.svc.IssueBulk(r.Context(), *params, count, audit.MetaFromRequest(r))
	if err != nil {
		if errors.Is(err, ErrInvalidBulkCount) {
			response.BadRequest(w, "count must be between 1 and 100")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, codes)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	codes, total, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	response.WithMeta(w, codes, response.Meta{
		Total:   total,
		Page:    offset/limit + 1,
		Limit:   limit,
		HasNext: offset+len(codes) < total,
	})
}

func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminMiddleware)
	r.Post("/", h.Issue)
	r.Post("/bulk", h.IssueBulk)
	r.Get("/", h.List)
	return r
}
