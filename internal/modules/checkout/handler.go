package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkamanga/sokoni-backend/internal/modules/buyer"
)

// Handler exposes the checkout HTTP endpoint.
type Handler struct{ service *Service }

func NewHandler(service *Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/checkout", h.checkout) // POST /api/v1/checkout
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.BuyerID == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "buyer_id is required"})
		return
	}

	result, err := h.service.Checkout(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, buyer.ErrBuyerNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, ErrEmptyCart) {
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, result)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
