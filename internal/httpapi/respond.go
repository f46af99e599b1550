package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"madaba-market-be/internal/authz"
	"madaba-market-be/internal/cart"
	"madaba-market-be/internal/identity"
	"madaba-market-be/internal/logger"
	"madaba-market-be/internal/order"
	"madaba-market-be/internal/product"
	"madaba-market-be/internal/review"
	"madaba-market-be/internal/story"

	"go.uber.org/zap"
)

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	respond(w, code, errorBody{Message: message})
}

// writeError maps service errors onto the response taxonomy: 400 for
// validation, 401/403 for auth, 404 for absent or out-of-scope resources,
// 500 with operator detail for everything else.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *order.MissingFieldsError
	if errors.As(err, &missing) {
		respondMessage(w, http.StatusBadRequest, missing.Error())
		return
	}

	switch {
	case errors.Is(err, identity.ErrUnauthenticated),
		errors.Is(err, identity.ErrInvalidLogin):
		respondMessage(w, http.StatusUnauthorized, "authentication required")

	case errors.Is(err, product.ErrSellerNotApproved):
		respondMessage(w, http.StatusForbidden, "forbidden")

	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, order.ErrSellerNotFound),
		errors.Is(err, identity.ErrProfileNotFound),
		errors.Is(err, identity.ErrSellerNotFound),
		errors.Is(err, review.ErrProductNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, story.ErrStoryNotFound):
		respondMessage(w, http.StatusNotFound, "not found")

	case errors.Is(err, identity.ErrEmailExists),
		errors.Is(err, identity.ErrInvalidRole),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidFlag),
		errors.Is(err, cart.ErrSellerConflict),
		errors.Is(err, cart.ErrInvalidSnapshot):
		respondMessage(w, http.StatusBadRequest, err.Error())

	default:
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respond(w, http.StatusInternalServerError, errorBody{
			Message: "internal server error",
			Error:   err.Error(),
		})
	}
}

// gate runs the identity → role → ownership check and writes the failure
// response itself. Ownership failures read as 404 so callers cannot probe
// for other tenants' rows.
func gate(w http.ResponseWriter, r *http.Request, roles []identity.Role, ownerID string) (*identity.Identity, bool) {
	caller, _ := identity.FromContext(r.Context())

	decision := authz.Check(caller, roles, ownerID)
	if decision.Allowed {
		return caller, true
	}

	switch decision.Reason {
	case authz.ReasonUnauthenticated:
		respondMessage(w, http.StatusUnauthorized, "authentication required")
	case authz.ReasonRole:
		respondMessage(w, http.StatusForbidden, "forbidden")
	default:
		respondMessage(w, http.StatusNotFound, "not found")
	}
	return nil, false
}

var anyRole = []identity.Role{identity.RoleCustomer, identity.RoleSeller, identity.RoleAdmin}
