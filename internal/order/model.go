package order

import "time"

type Order struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customerId"`
	CustomerName    string    `json:"customerName"`
	SellerID        string    `json:"sellerId"`
	SellerName      string    `json:"sellerName"`
	Items           []Item    `json:"items"`
	Total           float64   `json:"totalPrice"`
	Status          Status    `json:"status"`
	ShippingAddress string    `json:"shippingAddress"`
	Phone           string    `json:"phone"`
	PaymentMethod   string    `json:"paymentMethod"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Item is a line of an order. Price is the snapshot taken at order time;
// later changes to the product row never touch it.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	NameAr    string  `json:"nameAr"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CreateParams struct {
	CustomerID      string
	CustomerName    string
	SellerID        string
	Items           []Item
	ShippingAddress string
	Phone           string
	PaymentMethod   string
}

// Scope restricts a listing to the caller's rows. A zero Scope is the admin
// view: no filter at all.
type Scope struct {
	CustomerID string
	SellerID   string
}
