// Package model defines domain entities shared by the stores, clients and CLI.
package model

// Product is read-only reference data owned by the products service; the
// client only ever holds cached copies.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// CartLine pairs a product snapshot with a positive quantity. At most one
// line per product id exists in a cart; quantity is >= 1 while the line exists.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// User is an account stored by the users service.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Registration carries the profile fields plus password for sign-up.
type Registration struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// LoginResult is the users service response to a successful login.
type LoginResult struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// Credential is the persisted bearer token plus the user id it belongs to.
// Set only by a successful login/registration, cleared on logout or when the
// session cannot be resolved at startup.
type Credential struct {
	Token  string
	UserID int64
}

// InventoryItem is the stock level reported by the inventory service.
type InventoryItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PaymentDetails is the card payment embedded in an order request.
type PaymentDetails struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	CardNumber  string  `json:"cardNumber"`
	ExpiryMonth int     `json:"expiryMonth"`
	ExpiryYear  int     `json:"expiryYear"`
	CVV         string  `json:"cvv"`
}

// OrderItem is one product reference inside an order.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// ShippingAddress is where an order ships; filled server-side from the
// user's profile.
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// CreateOrder is the orders service request payload.
type CreateOrder struct {
	UserID  int64          `json:"userId"`
	Items   []OrderItem    `json:"items"`
	Payment PaymentDetails `json:"payment"`
}

// Order is a placed order as returned by the orders service.
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}
