package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/media"
	"madaba-market-be/internal/product"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	svc      product.Service
	profiles identity.Service
	uploads  media.Gateway
}

func NewProductHandler(svc product.Service, profiles identity.Service, uploads media.Gateway) *ProductHandler {
	return &ProductHandler{svc: svc, profiles: profiles, uploads: uploads}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.listOwn)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	r.Get("/api/public/products", h.listPublic)
	r.Get("/api/public/products/{id}", h.getPublic)
}

func (h *ProductHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleSeller, identity.RoleAdmin}, "")
	if !ok {
		return
	}

	products, err := h.svc.GetOwn(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, products)
}

// create accepts a multipart form; the image file, when present, is pushed
// to the media host and the resulting URL stored on the product.
func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleSeller, identity.RoleAdmin}, "")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid price")
		return
	}
	stock, _ := strconv.Atoi(r.FormValue("stock"))

	params := product.CreateParams{
		Name:          r.FormValue("name"),
		NameAr:        r.FormValue("nameAr"),
		Description:   r.FormValue("description"),
		DescriptionAr: r.FormValue("descriptionAr"),
		Price:         price,
		Category:      r.FormValue("category"),
		Stock:         stock,
	}
	if params.Name == "" {
		respondMessage(w, http.StatusBadRequest, "name is required")
		return
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		result, err := h.uploads.Upload(r.Context(), header.Filename, file)
		if err != nil {
			writeError(w, r, err)
			return
		}
		params.Image = result.URL
	}

	profile, err := h.profiles.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sellerName := profile.StoreName
	if sellerName == "" {
		sellerName = profile.Name
	}

	p, err := h.svc.Create(r.Context(), caller, sellerName, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleSeller, identity.RoleAdmin}, "")
	if !ok {
		return
	}

	p, err := h.svc.GetOwned(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}

type updateProductRequest struct {
	Name          *string  `json:"name"`
	NameAr        *string  `json:"nameAr"`
	Description   *string  `json:"description"`
	DescriptionAr *string  `json:"descriptionAr"`
	Price         *float64 `json:"price"`
	Category      *string  `json:"category"`
	Image         *string  `json:"image"`
	Stock         *int     `json:"stock"`
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleSeller, identity.RoleAdmin}, "")
	if !ok {
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), caller, product.UpdateParams{
		ID:            chi.URLParam(r, "id"),
		Name:          req.Name,
		NameAr:        req.NameAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		Price:         req.Price,
		Category:      req.Category,
		Image:         req.Image,
		Stock:         req.Stock,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleSeller, identity.RoleAdmin}, "")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandler) listPublic(w http.ResponseWriter, r *http.Request) {
	q := product.PublicQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	if v := r.URL.Query().Get("featured"); v != "" {
		featured := v == "true"
		q.Featured = &featured
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil {
		q.Limit = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil {
		q.Page = int32(v)
	}

	products, err := h.svc.ListPublic(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *ProductHandler) getPublic(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, p)
}
