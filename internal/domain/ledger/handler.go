package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/middleware"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	txns, total, err := h.svc.ListForUser(r.Context(), userID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	response.WithMeta(w, txns, response.Meta{
		Total:   total,
		Page:    offset/limit + 1,
		Limit:   limit,
		HasNext: offset+len(txns) < total,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid transaction id")
		return
	}

	isAdmin := middleware.GetRole(r.Context()) == "admin"
	t, err := h.svc.GetForUser(r.Context(), id, userID, isAdmin)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "transaction not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, t)
}

// AdminList returns the settlement queue (defaults to pending)
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	if status == "" {
		status = StatusPending
	}
	switch status {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
	default:
		response.BadRequest(w, "invalid status")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	txns, total, err := h.svc.ListByStatus(r.Context(), status, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	response.WithMeta(w, txns, response.Meta{
		Total:   total,
		Page:    offset/limit + 1,
		Limit:   limit,
		HasNext: offset+len(txns) < total,
	})
}

// Routes wires the transaction history; the receipt renderer lives in
// its own package but hangs off the same resource.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, receipt http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/receipt", receipt)
	return r
}
