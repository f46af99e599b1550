package httpapi

import (
	"net/http"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/media"
	"madaba-market-be/internal/story"

	"github.com/go-chi/chi/v5"
)

type StoryHandler struct {
	stories  story.Repository
	profiles identity.Service
	uploads  media.Gateway
}

func NewStoryHandler(stories story.Repository, profiles identity.Service, uploads media.Gateway) *StoryHandler {
	return &StoryHandler{stories: stories, profiles: profiles, uploads: uploads}
}

func (h *StoryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/stories", h.create)
	r.Get("/api/public/stories", h.listActive)
}

// create accepts a multipart form with an image file and an optional caption.
// The image goes to the media host; the story expires 24h after creation.
func (h *StoryHandler) create(w http.ResponseWriter, r *http.Request) {
	caller, ok := gate(w, r, []identity.Role{identity.RoleSeller, identity.RoleAdmin}, "")
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), caller.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if caller.Role == identity.RoleSeller && profile.Status != identity.StatusApproved {
		respondMessage(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "image is required")
		return
	}
	defer file.Close()

	result, err := h.uploads.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.stories.Create(r.Context(), caller.UserID, result.URL, r.FormValue("caption"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, s)
}

func (h *StoryHandler) listActive(w http.ResponseWriter, r *http.Request) {
	stories, err := h.stories.ListActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, stories)
}
