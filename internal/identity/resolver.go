package identity

import (
	"context"
	"strings"

	"madaba-market-be/internal/logger"

	"go.uber.org/zap"
)

// Resolver exchanges a bearer token for the caller's identity. A valid token
// always resolves to a usable identity: profiles missing under the token's
// subject id are recovered by email and re-keyed, and accounts with no profile
// row at all get a default customer profile. Only transport failures and
// invalid tokens surface as errors.
type Resolver struct {
	tokens *TokenIssuer
	repo   Repository
}

func NewResolver(tokens *TokenIssuer, repo Repository) *Resolver {
	return &Resolver{tokens: tokens, repo: repo}
}

func (r *Resolver) Resolve(ctx context.Context, bearer string) (*Identity, error) {
	if bearer == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := r.tokens.Parse(bearer)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "resolver"),
		zap.String("user_id", claims.UserID),
	)

	profile, err := r.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		// Legacy accounts may be stored under a previous provider id.
		profile, err = r.repo.GetByEmailFold(ctx, claims.Email)
		if err != nil {
			return nil, err
		}
		if profile != nil && profile.ID != claims.UserID {
			if err := r.repo.Rekey(ctx, profile.ID, claims.UserID); err != nil {
				return nil, err
			}
			log.Info("migrated profile to provider id",
				zap.String("legacy_id", profile.ID),
			)
			profile.ID = claims.UserID
		}
	}

	if profile == nil {
		profile = defaultProfile(claims.UserID, claims.Email)
		if err := r.repo.Create(ctx, profile, ""); err != nil {
			return nil, err
		}
		log.Info("synthesized default profile")
	}

	return &Identity{
		UserID: profile.ID,
		Email:  profile.Email,
		Role:   profile.Role,
		Status: profile.Status,
	}, nil
}

func defaultProfile(id, email string) *Profile {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return &Profile{
		ID:    id,
		Email: email,
		Name:  name,
		Role:  RoleCustomer,
	}
}
