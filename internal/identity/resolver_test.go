package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Profile, passwordHash string) error {
	args := m.Called(ctx, p, passwordHash)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) GetByEmailFold(ctx context.Context, email string) (*Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) GetCredentials(ctx context.Context, email string) (*Profile, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*Profile), args.String(1), args.Error(2)
}

func (m *MockRepository) Rekey(ctx context.Context, oldID, newID string) error {
	args := m.Called(ctx, oldID, newID)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) SetRoleAndStatus(ctx context.Context, id string, role Role, status SellerStatus) error {
	args := m.Called(ctx, id, role, status)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, role *Role) ([]*Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Profile), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ToggleFollow(ctx context.Context, sellerID, followerID string) (*FollowResult, error) {
	args := m.Called(ctx, sellerID, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FollowResult), args.Error(1)
}

func issueToken(t *testing.T, issuer *TokenIssuer, userID, email string) string {
	t.Helper()
	token, err := issuer.Generate(userID, email, RoleCustomer)
	require.NoError(t, err)
	return token
}

func TestResolver_Resolve(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	t.Run("EmptyBearer", func(t *testing.T) {
		r := NewResolver(issuer, new(MockRepository))
		_, err := r.Resolve(context.Background(), "")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		r := NewResolver(issuer, new(MockRepository))
		_, err := r.Resolve(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("ProfileUnderProviderID", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", mock.Anything, "u-1").
			Return(&Profile{ID: "u-1", Email: "lina@example.com", Role: RoleSeller, Status: StatusApproved}, nil)

		r := NewResolver(issuer, repo)
		id, err := r.Resolve(context.Background(), issueToken(t, issuer, "u-1", "lina@example.com"))
		require.NoError(t, err)
		assert.Equal(t, "u-1", id.UserID)
		assert.Equal(t, RoleSeller, id.Role)
		assert.Equal(t, StatusApproved, id.Status)
		repo.AssertNotCalled(t, "GetByEmailFold", mock.Anything, mock.Anything)
	})

	t.Run("LegacyProfileRekeyedByEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", mock.Anything, "new-id").Return(nil, nil)
		repo.On("GetByEmailFold", mock.Anything, "lina@example.com").
			Return(&Profile{ID: "legacy-id", Email: "lina@example.com", Role: RoleCustomer}, nil)
		repo.On("Rekey", mock.Anything, "legacy-id", "new-id").Return(nil)

		r := NewResolver(issuer, repo)
		id, err := r.Resolve(context.Background(), issueToken(t, issuer, "new-id", "lina@example.com"))
		require.NoError(t, err)
		assert.Equal(t, "new-id", id.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("NoProfileSynthesizesCustomer", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", mock.Anything, "u-9").Return(nil, nil)
		repo.On("GetByEmailFold", mock.Anything, "new@example.com").Return(nil, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Profile) bool {
			return p.ID == "u-9" && p.Role == RoleCustomer && p.Name == "new"
		}), "").Return(nil)

		r := NewResolver(issuer, repo)
		id, err := r.Resolve(context.Background(), issueToken(t, issuer, "u-9", "new@example.com"))
		require.NoError(t, err)
		assert.Equal(t, "u-9", id.UserID)
		assert.Equal(t, RoleCustomer, id.Role)
		repo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", mock.Anything, "u-1").Return(nil, errors.New("db error"))

		r := NewResolver(issuer, repo)
		_, err := r.Resolve(context.Background(), issueToken(t, issuer, "u-1", "lina@example.com"))
		assert.Error(t, err)
	})
}
