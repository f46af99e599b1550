package httpapi

import (
	"encoding/json"
	"net/http"

	"madaba-market-be/internal/identity"

	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	svc identity.Service
}

func NewProfileHandler(svc identity.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/profile", h.get)
	r.Put("/api/profile", h.update)
	r.Post("/api/sellers/{id}/follow", h.follow)
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, anyRole, "")
	if !ok {
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name             *string               `json:"name"`
	StoreName        *string               `json:"storeName"`
	StoreDescription *string               `json:"storeDescription"`
	CoverImage       *string               `json:"coverImage"`
	Social           *identity.SocialLinks `json:"socialLinks"`
}

func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, anyRole, "")
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.svc.UpdateProfile(r.Context(), identity.UpdateProfileParams{
		UserID:           caller.UserID,
		Name:             req.Name,
		StoreName:        req.StoreName,
		StoreDescription: req.StoreDescription,
		CoverImage:       req.CoverImage,
		Social:           req.Social,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, profile)
}

func (h *ProfileHandler) follow(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleCustomer}, "")
	if !ok {
		return
	}

	sellerID := chi.URLParam(r, "id")
	result, err := h.svc.ToggleFollow(r.Context(), sellerID, caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, result)
}
