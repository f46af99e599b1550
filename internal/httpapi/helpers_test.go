package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/order"

	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of identity.Service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(ctx context.Context, email, password, name string) (string, *identity.Profile, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*identity.Profile), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *identity.Profile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*identity.Profile), args.Error(2)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*identity.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, params identity.UpdateProfileParams) (*identity.Profile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Profile), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, role *identity.Role) ([]*identity.Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Profile), args.Error(1)
}

func (m *MockUserService) SetRoleAndStatus(ctx context.Context, userID string, role identity.Role, status identity.SellerStatus) error {
	args := m.Called(ctx, userID, role, status)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) ToggleFollow(ctx context.Context, sellerID, followerID string) (*identity.FollowResult, error) {
	args := m.Called(ctx, sellerID, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.FollowResult), args.Error(1)
}

// MockOrderService is a mock implementation of order.Service
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, caller *identity.Identity, params order.CreateParams) (*order.Order, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, caller *identity.Identity, id string) (*order.Order, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, caller *identity.Identity) ([]*order.Order, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, caller *identity.Identity, id string, status order.Status) (*order.Order, error) {
	args := m.Called(ctx, caller, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// asIdentity injects the caller into the request context the way the auth
// middleware would.
func asIdentity(r *http.Request, caller *identity.Identity) *http.Request {
	if caller == nil {
		return r
	}
	return r.WithContext(identity.WithIdentity(r.Context(), caller))
}

func doRequest(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}
