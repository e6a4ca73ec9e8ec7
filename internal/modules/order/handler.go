package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes order HTTP endpoints for the shop and buyer sides.
// There is no create endpoint; orders are born through checkout.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/{id}", h.getOrder)                    // GET   /api/v1/orders/{id}
		r.Patch("/{id}/status", h.updateStatus)       // PATCH /api/v1/orders/{id}/status
		r.Get("/shop/{shop_id}", h.listShopOrders)    // GET   /api/v1/orders/shop/{shop_id}?status=NEW
		r.Get("/buyer/{buyer_id}", h.listBuyerOrders) // GET   /api/v1/orders/buyer/{buyer_id}
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrOrderNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrOrderNotFound):
			code = http.StatusNotFound
		case errors.Is(err, ErrInvalidStatus):
			code = http.StatusBadRequest
		case errors.Is(err, ErrInvalidTransition):
			code = http.StatusUnprocessableEntity
		case errors.Is(err, ErrStatusConflict):
			code = http.StatusConflict
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listShopOrders(w http.ResponseWriter, r *http.Request) {
	shopID := chi.URLParam(r, "shop_id")
	status := r.URL.Query().Get("status")
	orders, err := h.service.ListShopOrders(r.Context(), shopID, status)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidStatus) {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listBuyerOrders(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyer_id")
	orders, err := h.service.ListBuyerOrders(r.Context(), buyerID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
