package httpapi

import (
	"encoding/json"
	"net/http"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/review"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	svc      review.Service
	profiles identity.Service
}

func NewReviewHandler(svc review.Service, profiles identity.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc, profiles: profiles}
}

func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/reviews", h.create)
	r.Get("/api/public/products/{id}/reviews", h.listByProduct)
}

type createReviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleCustomer}, "")
	if !ok {
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" {
		respondMessage(w, http.StatusBadRequest, "productId is required")
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rev, err := h.svc.Create(r.Context(), review.CreateParams{
		ProductID:  req.ProductID,
		AuthorID:   caller.UserID,
		AuthorName: profile.Name,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, rev)
}

func (h *ReviewHandler) listByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, reviews)
}
