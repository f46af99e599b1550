package review

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, params CreateParams) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Review, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, ErrInvalidRating
	}
	return s.repo.Create(ctx, uuid.New().String(), params)
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}
