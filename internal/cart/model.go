package cart

import "madaba-market-be/internal/product"

type Item struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Snapshot is the persisted cart shape, identical in the local store and the
// remote mirror row.
type Snapshot struct {
	Items    []Item  `json:"items"`
	SellerID *string `json:"sellerId"`
}

// GuestOwner is the bucket key for carts of unauthenticated sessions. Guest
// carts stay local; only authenticated carts are mirrored remotely.
const GuestOwner = "guest"

// ValidateSnapshot checks the invariants every persisted cart must satisfy:
// positive quantities, and all items locked to the snapshot's single seller.
func ValidateSnapshot(snap Snapshot) error {
	if len(snap.Items) == 0 {
		if snap.SellerID != nil {
			return ErrInvalidSnapshot
		}
		return nil
	}
	if snap.SellerID == nil {
		return ErrInvalidSnapshot
	}
	for _, item := range snap.Items {
		if item.Quantity <= 0 {
			return ErrInvalidSnapshot
		}
		if item.Product.SellerID != *snap.SellerID {
			return ErrSellerConflict
		}
	}
	return nil
}
