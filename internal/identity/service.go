package identity

import (
	"context"
	"errors"

	"madaba-market-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Signup(ctx context.Context, email, password, name string) (string, *Profile, error)
	Login(ctx context.Context, email, password string) (string, *Profile, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
	ListUsers(ctx context.Context, role *Role) ([]*Profile, error)
	SetRoleAndStatus(ctx context.Context, userID string, role Role, status SellerStatus) error
	DeleteUser(ctx context.Context, userID string) error
	ToggleFollow(ctx context.Context, sellerID, followerID string) (*FollowResult, error)
}

type service struct {
	repo   Repository
	tokens *TokenIssuer
}

func NewService(repo Repository, tokens *TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, email, password, name string) (string, *Profile, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	profile := &Profile{
		ID:    uuid.New().String(),
		Email: email,
		Name:  name,
		Role:  RoleCustomer,
	}

	if err := s.repo.Create(ctx, profile, hashed); err != nil {
		log.Error("failed to create profile", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	token, err := s.tokens.Generate(profile.ID, email, profile.Role)
	if err != nil {
		log.Error("failed to generate token", zap.String("user_id", profile.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("signup completed",
		zap.String("user_id", profile.ID),
		zap.String("email", email),
	)

	return token, profile, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	profile, hash, err := s.repo.GetCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return "", nil, ErrInvalidLogin
		}
		return "", nil, err
	}

	if !CheckPasswordHash(password, hash) {
		return "", nil, ErrInvalidLogin
	}

	token, err := s.tokens.Generate(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	return s.repo.Update(ctx, params)
}

func (s *service) ListUsers(ctx context.Context, role *Role) ([]*Profile, error) {
	return s.repo.List(ctx, role)
}

func (s *service) SetRoleAndStatus(ctx context.Context, userID string, role Role, status SellerStatus) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	return s.repo.SetRoleAndStatus(ctx, userID, role, status)
}

func (s *service) DeleteUser(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

func (s *service) ToggleFollow(ctx context.Context, sellerID, followerID string) (*FollowResult, error) {
	return s.repo.ToggleFollow(ctx, sellerID, followerID)
}
