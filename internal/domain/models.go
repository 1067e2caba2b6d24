package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a storefront customer
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	CountryCode  string
	Currency     string
	IPAddress    *string
	Points       int
	Tier         Tier
	AdminRating  int // admin rates customer 0-5
	CreatedAt    time.Time
}

// Product represents a catalog entry
type Product struct {
	ID             uuid.UUID
	Name           string
	Slug           string
	Price          float64
	Description    string
	ImageURLs      []string // stored as JSON
	VideoURLs      []string // stored as JSON
	Category       string
	Gender         string // "men", "women", "unisex"
	Stock          int
	Sizes          []string // stored as JSON
	Colors         []string // stored as JSON
	IsTrending     bool
	FlashSalePrice *float64
	FlashSaleEnd   *time.Time
	CreatedAt      time.Time
}

// CartItem is one line of a cart. Carts live in a browser cookie; an order
// keeps a JSON snapshot of the items it was created from.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
}

// Order represents an immutable cart snapshot priced at checkout time
type Order struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Total              float64
	ShippingFee        float64
	Commission         float64
	Status             OrderStatus
	PaymentMethod      string // whatsapp, mpesa, flutterwave
	PaymentReference   *string
	Items              []CartItem // stored as JSON
	CancellationReason *string
	ExpectedDelivery   *time.Time
	CouponCode         *string
	DiscountAmount     float64
	CreatedAt          time.Time
}

// OrderTracking is one entry of an order's append-only tracking log
type OrderTracking struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	Location         string
	TransportCompany string
	DriverName       string
	Status           string
	UpdatedAt        time.Time
}

// DeliveryConfirmation is the customer's proof of receipt. At most one exists
// per order; once it does, the order's status and tracking are frozen.
type DeliveryConfirmation struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	UserID           uuid.UUID
	PhotoURL         *string
	Rating           int // 1-5
	Feedback         string
	ConfirmedByAdmin bool
	CreatedAt        time.Time
}

// Review is a product review, at most one per (product, user)
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int // 1-5
	Comment   string
	CreatedAt time.Time
}

// Coupon holds either a percent or a fixed-amount discount, never both
type Coupon struct {
	ID              uuid.UUID
	Code            string
	DiscountPercent *float64
	DiscountAmount  *float64
	MinPurchase     float64
	MaxUses         *int
	UsedCount       int
	ExpiresAt       *time.Time
	Active          bool
	CreatedAt       time.Time
}

// WishlistItem links a user to a saved product
type WishlistItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	CreatedAt time.Time
}

// RecentlyViewed records a product view, newest first, capped per user
type RecentlyViewed struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	ViewedAt  time.Time
}
