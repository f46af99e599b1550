package httpapi

import (
	"encoding/json"
	"net/http"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/order"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.updateStatus)
	})
}

type createOrderRequest struct {
	SellerID        string `json:"sellerId"`
	CustomerName    string `json:"customerName"`
	ShippingAddress string `json:"shippingAddress"`
	Phone           string `json:"phone"`
	PaymentMethod   string `json:"paymentMethod"`
	Items           []struct {
		Product struct {
			ID     string  `json:"id"`
			Name   string  `json:"name"`
			NameAr string  `json:"nameAr"`
			Image  string  `json:"image"`
			Price  float64 `json:"price"`
		} `json:"product"`
		Quantity int `json:"quantity"`
	} `json:"items"`
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleCustomer}, "")
	if !ok {
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := order.CreateParams{
		CustomerID:      caller.UserID,
		CustomerName:    req.CustomerName,
		SellerID:        req.SellerID,
		ShippingAddress: req.ShippingAddress,
		Phone:           req.Phone,
		PaymentMethod:   req.PaymentMethod,
	}
	for _, line := range req.Items {
		params.Items = append(params.Items, order.Item{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			NameAr:    line.Product.NameAr,
			Image:     line.Product.Image,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		})
	}

	o, err := h.svc.Create(r.Context(), caller, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, anyRole, "")
	if !ok {
		return
	}

	orders, err := h.svc.List(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, anyRole, "")
	if !ok {
		return
	}

	o, err := h.svc.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, o)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleSeller, identity.RoleAdmin}, "")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), caller, chi.URLParam(r, "id"), order.Status(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, o)
}
