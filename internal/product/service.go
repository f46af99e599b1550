package product

import (
	"context"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, caller *identity.Identity, sellerName string, params CreateParams) (*Product, error)
	GetOwn(ctx context.Context, caller *identity.Identity) ([]*Product, error)
	GetOwned(ctx context.Context, caller *identity.Identity, id string) (*Product, error)
	GetPublic(ctx context.Context, id string) (*Product, error)
	ListPublic(ctx context.Context, q PublicQuery) ([]*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, caller *identity.Identity, params UpdateParams) (*Product, error)
	SetFlag(ctx context.Context, id string, flag Flag, value bool) error
	Delete(ctx context.Context, caller *identity.Identity, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create inserts a product for an approved seller. New products start
// unapproved and stay off public endpoints until an admin approves them.
func (s *service) Create(ctx context.Context, caller *identity.Identity, sellerName string, params CreateParams) (*Product, error) {
	if caller.Role == identity.RoleSeller && caller.Status != identity.StatusApproved {
		return nil, ErrSellerNotApproved
	}
	if params.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	params.SellerID = caller.UserID
	params.SellerName = sellerName

	p, err := s.repo.Create(ctx, uuid.New().String(), params)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("product_id", p.ID),
		zap.String("seller_id", p.SellerID),
	)
	return p, nil
}

func (s *service) GetOwn(ctx context.Context, caller *identity.Identity) ([]*Product, error) {
	return s.repo.ListBySeller(ctx, caller.UserID)
}

// GetOwned loads one product for its owning seller. A row owned by someone
// else reads as not found so callers cannot probe other sellers' catalogs.
func (s *service) GetOwned(ctx context.Context, caller *identity.Identity, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if p.SellerID != caller.UserID && !caller.IsAdmin() {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) GetPublic(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Visible() {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) ListPublic(ctx context.Context, q PublicQuery) ([]*Product, error) {
	return s.repo.ListPublic(ctx, q)
}

func (s *service) ListAll(ctx context.Context) ([]*Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Update(ctx context.Context, caller *identity.Identity, params UpdateParams) (*Product, error) {
	if _, err := s.GetOwned(ctx, caller, params.ID); err != nil {
		return nil, err
	}
	if params.Price != nil && *params.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	return s.repo.Update(ctx, params)
}

func (s *service) SetFlag(ctx context.Context, id string, flag Flag, value bool) error {
	return s.repo.SetFlag(ctx, id, flag, value)
}

func (s *service) Delete(ctx context.Context, caller *identity.Identity, id string) error {
	if _, err := s.GetOwned(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
