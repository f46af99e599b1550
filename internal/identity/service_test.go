package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Signup(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Profile) bool {
			return p.Email == "lina@example.com" && p.Role == RoleCustomer && p.ID != ""
		}), mock.AnythingOfType("string")).Return(nil)

		svc := NewService(repo, issuer)
		token, profile, err := svc.Signup(context.Background(), "lina@example.com", "s3cret", "Lina")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "Lina", profile.Name)

		claims, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, claims.UserID)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(ErrEmailExists)

		svc := NewService(repo, issuer)
		_, _, err := svc.Signup(context.Background(), "lina@example.com", "s3cret", "Lina")
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	stored := &Profile{ID: "u-1", Email: "lina@example.com", Role: RoleCustomer}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCredentials", mock.Anything, "lina@example.com").Return(stored, hash, nil)

		svc := NewService(repo, issuer)
		token, profile, err := svc.Login(context.Background(), "lina@example.com", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u-1", profile.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCredentials", mock.Anything, "lina@example.com").Return(stored, hash, nil)

		svc := NewService(repo, issuer)
		_, _, err := svc.Login(context.Background(), "lina@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidLogin)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetCredentials", mock.Anything, "ghost@example.com").Return(nil, "", ErrProfileNotFound)

		svc := NewService(repo, issuer)
		_, _, err := svc.Login(context.Background(), "ghost@example.com", "s3cret")
		// Unknown accounts and bad passwords are indistinguishable.
		assert.ErrorIs(t, err, ErrInvalidLogin)
	})
}

func TestService_GetProfile(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

		svc := NewService(repo, NewTokenIssuer("test-secret"))
		_, err := svc.GetProfile(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestService_SetRoleAndStatus(t *testing.T) {
	t.Run("InvalidRole", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, NewTokenIssuer("test-secret"))

		err := svc.SetRoleAndStatus(context.Background(), "u-1", Role("superuser"), "")
		assert.ErrorIs(t, err, ErrInvalidRole)
		repo.AssertNotCalled(t, "SetRoleAndStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("SetRoleAndStatus", mock.Anything, "u-1", RoleSeller, StatusApproved).Return(nil)

		svc := NewService(repo, NewTokenIssuer("test-secret"))
		err := svc.SetRoleAndStatus(context.Background(), "u-1", RoleSeller, StatusApproved)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
