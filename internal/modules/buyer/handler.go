package buyer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes buyer profile HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RegisterRequest is the payload for creating a buyer profile.
type RegisterRequest struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	DeliveryLocation string `json:"delivery_location"`
}

// UpdateContactRequest is the payload for updating contact details.
type UpdateContactRequest struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	DeliveryLocation string `json:"delivery_location"`
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/buyers", func(r chi.Router) {
		r.Post("/", h.register)           // POST  /api/v1/buyers
		r.Get("/{id}", h.getBuyer)        // GET   /api/v1/buyers/{id}
		r.Patch("/{id}", h.updateContact) // PATCH /api/v1/buyers/{id}
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.RegisterBuyer(r.Context(), req.Name, req.Phone, req.Email, req.DeliveryLocation)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) getBuyer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := h.service.GetBuyer(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrBuyerNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.UpdateContact(r.Context(), id, req.Name, req.Phone, req.DeliveryLocation)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrBuyerNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
