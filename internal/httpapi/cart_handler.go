package httpapi

import (
	"encoding/json"
	"net/http"

	"madaba-market-be/internal/cart"

	"github.com/go-chi/chi/v5"
)

// CartHandler exposes the remote mirror of a user's cart. The client-side
// engine remains the source of truth for immediate edits; these endpoints
// hold the last-writer-wins copy shared across devices.
type CartHandler struct {
	mirror cart.Mirror
}

func NewCartHandler(mirror cart.Mirror) *CartHandler {
	return &CartHandler{mirror: mirror}
}

func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/cart", h.get)
	r.Put("/api/cart", h.put)
	r.Delete("/api/cart", h.delete)
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, anyRole, "")
	if !ok {
		return
	}

	snap, _, err := h.mirror.Fetch(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if snap == nil {
		snap = &cart.Snapshot{Items: []cart.Item{}}
	}
	respond(w, http.StatusOK, snap)
}

func (h *CartHandler) put(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, anyRole, "")
	if !ok {
		return
	}

	var snap cart.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := cart.ValidateSnapshot(snap); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.mirror.Upsert(r.Context(), caller.UserID, snap); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, snap)
}

func (h *CartHandler) delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, anyRole, "")
	if !ok {
		return
	}

	if err := h.mirror.Delete(r.Context(), caller.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
