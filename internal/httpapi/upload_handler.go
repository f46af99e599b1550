package httpapi

import (
	"net/http"

	"madaba-market-be/internal/media"

	"github.com/go-chi/chi/v5"
)

type UploadHandler struct {
	gateway media.Gateway
}

func NewUploadHandler(gateway media.Gateway) *UploadHandler {
	return &UploadHandler{gateway: gateway}
}

func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/upload", h.upload)
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := gate(w, r, anyRole, ""); !ok {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	result, err := h.gateway.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, result)
}
