package order

import (
	"context"
	"time"

	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SellerDirectory resolves a seller's display name at order time.
// Satisfied by identity.Repository.
type SellerDirectory interface {
	GetByID(ctx context.Context, id string) (*identity.Profile, error)
}

type Service interface {
	Create(ctx context.Context, caller *identity.Identity, params CreateParams) (*Order, error)
	Get(ctx context.Context, caller *identity.Identity, id string) (*Order, error)
	List(ctx context.Context, caller *identity.Identity) ([]*Order, error)
	UpdateStatus(ctx context.Context, caller *identity.Identity, id string, status Status) (*Order, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	sellers SellerDirectory
}

func NewService(repo Repository, sellers SellerDirectory) Service {
	return &service{repo: repo, sellers: sellers}
}

// Create places an order from a single-seller item list. The stored total is
// the sum of the per-line price snapshots; live product prices play no part
// after this point.
func (s *service) Create(ctx context.Context, caller *identity.Identity, params CreateParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("customer_id", caller.UserID),
	)

	var missing []string
	if len(params.Items) == 0 {
		missing = append(missing, "items")
	}
	if params.ShippingAddress == "" {
		missing = append(missing, "shippingAddress")
	}
	if params.Phone == "" {
		missing = append(missing, "phone")
	}
	if params.SellerID == "" {
		missing = append(missing, "sellerId")
	}
	if len(missing) > 0 {
		log.Warn("order rejected", zap.Strings("missing_fields", missing))
		return nil, &MissingFieldsError{Fields: missing}
	}

	seller, err := s.sellers.GetByID(ctx, params.SellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, ErrSellerNotFound
	}

	var total float64
	for _, item := range params.Items {
		total += item.Price * float64(item.Quantity)
	}

	o := &Order{
		ID:              uuid.New().String(),
		CustomerID:      caller.UserID,
		CustomerName:    params.CustomerName,
		SellerID:        seller.ID,
		SellerName:      seller.StoreName,
		Items:           params.Items,
		Total:           total,
		Status:          StatusPending,
		ShippingAddress: params.ShippingAddress,
		Phone:           params.Phone,
		PaymentMethod:   params.PaymentMethod,
		CreatedAt:       time.Now(),
	}
	if o.SellerName == "" {
		o.SellerName = seller.Name
	}

	if err := s.repo.CreateTx(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("seller_id", o.SellerID),
		zap.Float64("total", o.Total),
	)
	return o, nil
}

// Get returns one order, disguising rows outside the caller's scope as not
// found so foreign ids are indistinguishable from absent ones.
func (s *service) Get(ctx context.Context, caller *identity.Identity, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(caller, o) {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) List(ctx context.Context, caller *identity.Identity) ([]*Order, error) {
	return s.repo.List(ctx, scopeFor(caller))
}

// UpdateStatus advances the order's lifecycle. Only the owning seller or an
// admin may do this, and only along the legal transition path.
func (s *service) UpdateStatus(ctx context.Context, caller *identity.Identity, id string, status Status) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == identity.RoleSeller && o.SellerID != caller.UserID {
		return nil, ErrOrderNotFound
	}

	if !o.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", id),
		zap.String("from", string(o.Status)),
		zap.String("to", string(status)),
	)

	o.Status = status
	return o, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func scopeFor(caller *identity.Identity) Scope {
	switch caller.Role {
	case identity.RoleCustomer:
		return Scope{CustomerID: caller.UserID}
	case identity.RoleSeller:
		return Scope{SellerID: caller.UserID}
	default:
		return Scope{}
	}
}

func visibleTo(caller *identity.Identity, o *Order) bool {
	switch caller.Role {
	case identity.RoleCustomer:
		return o.CustomerID == caller.UserID
	case identity.RoleSeller:
		return o.SellerID == caller.UserID
	default:
		return true
	}
}
