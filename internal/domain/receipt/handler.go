package receipt

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
	"github.com/ebuka-odih/site-bk-sub001/internal/domain/user"
	"github.com/ebuka-odih/site-bk-sub001/internal/middleware"
	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
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

	isAdmin := middleware.GetRole(r.Context()) == user.RoleAdmin
	doc, err := h.svc.Render(r.Context(), id, userID, isAdmin)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			response.NotFound(w, "transaction not found")
			return
		}
		response.InternalError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
