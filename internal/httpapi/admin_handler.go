package httpapi

import (
	"encoding/json"
	"net/http"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/order"
	"madaba-market-be/internal/product"
	"madaba-market-be/internal/story"

	"github.com/go-chi/chi/v5"
)

// AdminHandler groups the moderation surface. Every route requires the
// admin role; ownership checks do not apply here.
type AdminHandler struct {
	users    identity.Service
	products product.Service
	orders   order.Service
	stories  story.Repository
}

func NewAdminHandler(users identity.Service, products product.Service, orders order.Service, stories story.Repository) *AdminHandler {
	return &AdminHandler{users: users, products: products, orders: orders, stories: stories}
}

var adminOnly = []identity.Role{identity.RoleAdmin}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/users", h.listUsers)
		r.Put("/users/{id}", h.updateUser)
		r.Delete("/users/{id}", h.deleteUser)

		r.Get("/sellers", h.listSellers)
		r.Put("/sellers/{id}", h.updateSeller)
		r.Delete("/sellers/{id}", h.deleteUser)

		r.Get("/products", h.listProducts)
		r.Put("/products/{id}", h.moderateProduct)
		r.Delete("/products/{id}", h.deleteProduct)

		r.Get("/orders", h.listOrders)
		r.Put("/orders/{id}", h.updateOrder)
		r.Delete("/orders/{id}", h.deleteOrder)

		r.Get("/stories", h.listStories)
		r.Delete("/stories/{id}", h.deleteStory)
	})
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	users, err := h.users.ListUsers(r.Context(), nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, users)
}

type updateUserRequest struct {
	Role   identity.Role         `json:"role"`
	Status identity.SellerStatus `json:"status"`
}

func (h *AdminHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.users.SetRoleAndStatus(r.Context(), chi.URLParam(r, "id"), req.Role, req.Status); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "user updated"})
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *AdminHandler) listSellers(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	role := identity.RoleSeller
	sellers, err := h.users.ListUsers(r.Context(), &role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, sellers)
}

type updateSellerRequest struct {
	Status identity.SellerStatus `json:"status"`
}

// updateSeller approves or re-pends a seller account.
func (h *AdminHandler) updateSeller(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	var req updateSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.users.SetRoleAndStatus(r.Context(), chi.URLParam(r, "id"), identity.RoleSeller, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "seller updated"})
}

func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	products, err := h.products.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, products)
}

type moderateProductRequest struct {
	Action product.Flag `json:"action"`
	Value  bool         `json:"value"`
}

func (h *AdminHandler) moderateProduct(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	var req moderateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.products.SetFlag(r.Context(), chi.URLParam(r, "id"), req.Action, req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "product updated"})
}

func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, adminOnly, "")
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, adminOnly, "")
	if !ok {
		return
	}

	orders, err := h.orders.List(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *AdminHandler) updateOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, adminOnly, "")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), caller, chi.URLParam(r, "id"), order.Status(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *AdminHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

func (h *AdminHandler) listStories(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	stories, err := h.stories.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, stories)
}

func (h *AdminHandler) deleteStory(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, adminOnly, ""); !ok {
		return
	}

	if err := h.stories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "story deleted"})
}
