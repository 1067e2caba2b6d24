package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

// UserRepository defines user data access methods
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByNameAndPhone(ctx context.Context, name, phone string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdatePointsAndTier(ctx context.Context, id uuid.UUID, points int, tier domain.Tier) error
	UpdateAdminRating(ctx context.Context, id uuid.UUID, rating int) error
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int, error)
}

// ProductRepository defines catalog data access methods
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	ListTrending(ctx context.Context) ([]*domain.Product, error)
	ListRelated(ctx context.Context, category string, exclude uuid.UUID, limit int) ([]*domain.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]*domain.Product, error)
	SearchByName(ctx context.Context, query string, limit int) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	SetTrending(ctx context.Context, id uuid.UUID, trending bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// ProductFilter narrows a catalog listing
type ProductFilter struct {
	Category string
	Gender   string
	Search   string
}

// OrderRepository defines order data access methods
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByPaymentReference(ctx context.Context, reference string) (*domain.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, cancellationReason *string) error
	UpdatePaymentReference(ctx context.Context, id uuid.UUID, method, reference string) error
	CountFreeShippingSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	Count(ctx context.Context) (int, error)
	SumTotals(ctx context.Context) (float64, error)
}

// OrderTrackingRepository defines tracking log access; entries are append-only
type OrderTrackingRepository interface {
	Create(ctx context.Context, tracking *domain.OrderTracking) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderTracking, error)
}

// DeliveryConfirmationRepository defines delivery confirmation access
type DeliveryConfirmationRepository interface {
	Create(ctx context.Context, confirmation *domain.DeliveryConfirmation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryConfirmation, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.DeliveryConfirmation, error)
	MarkConfirmedByAdmin(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.DeliveryConfirmation, error)
}

// ReviewRepository defines product review access
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*domain.Review, error)
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
}

// CouponRepository defines coupon access
type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	GetActiveByCode(ctx context.Context, code string) (*domain.Coupon, error)
	IncrementUsedCount(ctx context.Context, code string) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context) ([]*domain.Coupon, error)
}

// WishlistRepository defines wishlist access
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// RecentlyViewedRepository records product views capped per user
type RecentlyViewedRepository interface {
	Record(ctx context.Context, userID, productID uuid.UUID, keep int) error
	ListProductIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	User                 UserRepository
	Product              ProductRepository
	Order                OrderRepository
	OrderTracking        OrderTrackingRepository
	DeliveryConfirmation DeliveryConfirmationRepository
	Review               ReviewRepository
	Coupon               CouponRepository
	Wishlist             WishlistRepository
	RecentlyViewed       RecentlyViewedRepository
}
