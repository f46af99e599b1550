package identity

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// SellerStatus only applies to profiles with RoleSeller.
type SellerStatus string

const (
	StatusPending  SellerStatus = "pending"
	StatusApproved SellerStatus = "approved"
)

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Whatsapp  string `json:"whatsapp,omitempty"`
}

type Profile struct {
	ID               string       `json:"id"`
	Email            string       `json:"email"`
	Name             string       `json:"name"`
	Role             Role         `json:"role"`
	Status           SellerStatus `json:"status,omitempty"`
	StoreName        string       `json:"storeName,omitempty"`
	StoreDescription string       `json:"storeDescription,omitempty"`
	CoverImage       string       `json:"coverImage,omitempty"`
	Social           SocialLinks  `json:"socialLinks"`
	FollowersCount   int          `json:"followersCount"`
	Rating           float64      `json:"rating"`
	ReviewCount      int          `json:"reviewCount"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Identity is the resolved caller of a request.
type Identity struct {
	UserID string
	Email  string
	Role   Role
	Status SellerStatus
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

type UpdateProfileParams struct {
	UserID           string
	Name             *string
	StoreName        *string
	StoreDescription *string
	CoverImage       *string
	Social           *SocialLinks
}

type FollowResult struct {
	IsFollowing    bool `json:"isFollowing"`
	FollowersCount int  `json:"followersCount"`
}
