package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
)

// Handler exposes cart HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

// UpdateQuantityRequest is the payload for changing a line's quantity.
type UpdateQuantityRequest struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart/{buyer_id}", func(r chi.Router) {
		r.Get("/", h.getCart)            // GET    /api/v1/cart/{buyer_id}
		r.Post("/lines", h.addLine)      // POST   /api/v1/cart/{buyer_id}/lines
		r.Patch("/lines", h.updateLine)  // PATCH  /api/v1/cart/{buyer_id}/lines
		r.Delete("/lines", h.removeLine) // DELETE /api/v1/cart/{buyer_id}/lines
		r.Delete("/", h.clear)           // DELETE /api/v1/cart/{buyer_id}
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyer_id")
	c, err := h.service.GetCart(r.Context(), buyerID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyer_id")
	var req AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.AddLine(r.Context(), buyerID, req); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidQuantity) {
			code = http.StatusBadRequest
		} else if errors.Is(err, catalog.ErrProductNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, map[string]string{"status": "line added"})
}

func (h *Handler) updateLine(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyer_id")
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	err := h.service.UpdateQuantity(r.Context(), buyerID, req.ProductID, req.Color, req.Size, req.Quantity)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidQuantity) {
			code = http.StatusBadRequest
		} else if errors.Is(err, ErrLineNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "quantity updated"})
}

func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyer_id")
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	err := h.service.RemoveLine(r.Context(), buyerID, req.ProductID, req.Color, req.Size)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrLineNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "line removed"})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyer_id")
	if err := h.service.Clear(r.Context(), buyerID); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "cart cleared"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
