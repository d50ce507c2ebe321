package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/audit"
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

type setPinRequest struct {
	CurrentPin string `json:"current_pin,omitempty" validate:"omitempty,pin"`
	NewPin     string `json:"new_pin" validate:"required,pin"`
}

func (h *Handler) SetPin(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req setPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.ValidationError(w, fieldErrs)
		return
	}

	err := h.svc.SetPin(r.Context(), userID, req.CurrentPin, req.NewPin, audit.MetaFromRequest(r))
	if err != nil {
		switch {
		case errors.Is(err, ErrPinMismatch):
			response.Forbidden(w, "current PIN is incorrect")
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "user not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]bool{"pin_set": true})
}

func (h *Handler) adminSetLocked(locked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID := middleware.GetUserID(r.Context())

		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			response.BadRequest(w, "invalid user id")
			return
		}

		if err := h.svc.SetLocked(r.Context(), adminID, userID, locked, audit.MetaFromRequest(r)); err != nil {
			if errors.Is(err, ErrNotFound) {
				response.NotFound(w, "user not found")
				return
			}
			response.InternalError(w)
			return
		}

		response.OK(w, map[string]bool{"locked": locked})
	}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/pin", h.SetPin)
	return r
}

func (h *Handler) AdminRoutes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminMiddleware)
	r.Post("/{id}/lock", h.adminSetLocked(true))
	r.Post("/{id}/unlock", h.adminSetLocked(false))
	return r
}
