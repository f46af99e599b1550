package httpapi

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/media"
	"madaba-market-be/internal/story"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStoryRepo is a mock implementation of story.Repository
type MockStoryRepo struct {
	mock.Mock
}

func (m *MockStoryRepo) Create(ctx context.Context, sellerID, image, caption string) (*story.Story, error) {
	args := m.Called(ctx, sellerID, image, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*story.Story), args.Error(1)
}

func (m *MockStoryRepo) ListActive(ctx context.Context) ([]*story.Story, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*story.Story), args.Error(1)
}

func (m *MockStoryRepo) ListAll(ctx context.Context) ([]*story.Story, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*story.Story), args.Error(1)
}

func (m *MockStoryRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMediaGateway is a mock implementation of media.Gateway
type MockMediaGateway struct {
	mock.Mock
}

func (m *MockMediaGateway) Upload(ctx context.Context, filename string, content io.Reader) (*media.UploadResult, error) {
	args := m.Called(ctx, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.UploadResult), args.Error(1)
}

func storyRouter(repo story.Repository, profiles identity.Service, uploads media.Gateway) chi.Router {
	r := chi.NewRouter()
	NewStoryHandler(repo, profiles, uploads).RegisterRoutes(r)
	return r
}

func storyForm(t *testing.T, caption string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if withImage {
		part, err := form.CreateFormFile("image", "story.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, form.WriteField("caption", caption))
	require.NoError(t, form.Close())
	return &buf, form.FormDataContentType()
}

func TestStoryHandler_Create(t *testing.T) {
	approvedProfile := &identity.Profile{
		ID:     "seller-1",
		Role:   identity.RoleSeller,
		Status: identity.StatusApproved,
	}

	t.Run("AnonymousGets401", func(t *testing.T) {
		repo := new(MockStoryRepo)
		body, contentType := storyForm(t, "hi", true)
		r := httptest.NewRequest(http.MethodPost, "/api/stories", body)
		r.Header.Set("Content-Type", contentType)
		w := doRequest(storyRouter(repo, new(MockUserService), new(MockMediaGateway)), r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CustomerGets403", func(t *testing.T) {
		repo := new(MockStoryRepo)
		body, contentType := storyForm(t, "hi", true)
		r := asIdentity(httptest.NewRequest(http.MethodPost, "/api/stories", body), testCustomer)
		r.Header.Set("Content-Type", contentType)
		w := doRequest(storyRouter(repo, new(MockUserService), new(MockMediaGateway)), r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("PendingSellerGets403", func(t *testing.T) {
		repo := new(MockStoryRepo)
		users := new(MockUserService)
		users.On("GetProfile", mock.Anything, "seller-1").Return(&identity.Profile{
			ID:     "seller-1",
			Role:   identity.RoleSeller,
			Status: identity.StatusPending,
		}, nil)

		body, contentType := storyForm(t, "hi", true)
		r := asIdentity(httptest.NewRequest(http.MethodPost, "/api/stories", body), testSeller)
		r.Header.Set("Content-Type", contentType)
		w := doRequest(storyRouter(repo, users, new(MockMediaGateway)), r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ApprovedSellerCreates", func(t *testing.T) {
		repo := new(MockStoryRepo)
		users := new(MockUserService)
		uploads := new(MockMediaGateway)

		users.On("GetProfile", mock.Anything, "seller-1").Return(approvedProfile, nil)
		uploads.On("Upload", mock.Anything, "story.jpg", mock.Anything).
			Return(&media.UploadResult{URL: "https://cdn.example.com/s.jpg", PublicID: "s"}, nil)
		repo.On("Create", mock.Anything, "seller-1", "https://cdn.example.com/s.jpg", "Fresh batch").
			Return(&story.Story{ID: "s-1", SellerID: "seller-1"}, nil)

		body, contentType := storyForm(t, "Fresh batch", true)
		r := asIdentity(httptest.NewRequest(http.MethodPost, "/api/stories", body), testSeller)
		r.Header.Set("Content-Type", contentType)
		w := doRequest(storyRouter(repo, users, uploads), r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"s-1"`)
		repo.AssertExpectations(t)
		uploads.AssertExpectations(t)
	})

	t.Run("MissingImageGets400", func(t *testing.T) {
		repo := new(MockStoryRepo)
		users := new(MockUserService)
		users.On("GetProfile", mock.Anything, "seller-1").Return(approvedProfile, nil)

		body, contentType := storyForm(t, "no image", false)
		r := asIdentity(httptest.NewRequest(http.MethodPost, "/api/stories", body), testSeller)
		r.Header.Set("Content-Type", contentType)
		w := doRequest(storyRouter(repo, users, new(MockMediaGateway)), r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "image")
	})
}

func TestStoryHandler_ListActive(t *testing.T) {
	repo := new(MockStoryRepo)
	repo.On("ListActive", mock.Anything).Return([]*story.Story{
		{ID: "s-1", SellerID: "seller-1", Image: "https://cdn.example.com/s.jpg"},
	}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/public/stories", nil)
	w := doRequest(storyRouter(repo, new(MockUserService), new(MockMediaGateway)), r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"s-1"`)
	repo.AssertExpectations(t)
}
