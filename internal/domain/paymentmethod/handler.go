package paymentmethod

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ebuka-odih/site-bk-sub001/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns enabled methods, filtered by ?kind= (deposit by default)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind := Kind(r.URL.Query().Get("kind"))
	switch kind {
	case "":
		kind = KindDeposit
	case KindDeposit, KindWithdrawal:
	default:
		response.BadRequest(w, "kind must be deposit or withdrawal")
		return
	}

	methods, err := h.svc.ListEnabled(r.Context(), kind)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, methods)
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	return r
}
