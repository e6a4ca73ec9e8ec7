package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes stock HTTP endpoints for the shop side.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// RestockRequest is the payload for adding stock to a variant.
type RestockRequest struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stock", func(r chi.Router) {
		r.Get("/{product_id}", h.getStock)  // GET  /api/v1/stock/{product_id}?color=...&size=...
		r.Post("/{product_id}", h.restock)  // POST /api/v1/stock/{product_id}
	})
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	color := r.URL.Query().Get("color")
	size := r.URL.Query().Get("size")
	s, err := h.service.GetStock(r.Context(), productID, color, size)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrStockNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	var req RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s, err := h.service.Restock(r.Context(), productID, req.Color, req.Size, req.Quantity)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrStockNotFound) {
			code = http.StatusNotFound
		} else if errors.Is(err, ErrInvalidQuantity) {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, s)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
