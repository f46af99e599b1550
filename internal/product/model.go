package product

import "time"

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	NameAr        string    `json:"nameAr"`
	Description   string    `json:"description"`
	DescriptionAr string    `json:"descriptionAr"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	Image         string    `json:"image"`
	SellerID      string    `json:"sellerId"`
	SellerName    string    `json:"sellerName"`
	Stock         int       `json:"stock"`
	Featured      bool      `json:"featured"`
	Approved      bool      `json:"approved"`
	Suspended     bool      `json:"suspended"`
	PurchaseCount int       `json:"purchaseCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Visible reports whether the product may appear on public endpoints.
// Approval and suspension are independent admin toggles; a product can be
// approved yet hidden while suspended.
func (p *Product) Visible() bool {
	return p.Approved && !p.Suspended
}

// Flag names an admin moderation toggle.
type Flag string

const (
	FlagApproved  Flag = "approved"
	FlagSuspended Flag = "suspended"
	FlagFeatured  Flag = "featured"
)

func (f Flag) Valid() bool {
	switch f {
	case FlagApproved, FlagSuspended, FlagFeatured:
		return true
	}
	return false
}

type CreateParams struct {
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	Price         float64
	Category      string
	Image         string
	SellerID      string
	SellerName    string
	Stock         int
}

type UpdateParams struct {
	ID            string
	Name          *string
	NameAr        *string
	Description   *string
	DescriptionAr *string
	Price         *float64
	Category      *string
	Image         *string
	Stock         *int
}

type PublicQuery struct {
	Category string
	Search   string
	Featured *bool
	Limit    int32
	Page     int32
}
