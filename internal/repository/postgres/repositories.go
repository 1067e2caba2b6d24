package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		User:                 NewUserRepository(db, logger),
		Product:              NewProductRepository(db, logger),
		Order:                NewOrderRepository(db, logger),
		OrderTracking:        NewOrderTrackingRepository(db, logger),
		DeliveryConfirmation: NewDeliveryConfirmationRepository(db, logger),
		Review:               NewReviewRepository(db, logger),
		Coupon:               NewCouponRepository(db, logger),
		Wishlist:             NewWishlistRepository(db, logger),
		RecentlyViewed:       NewRecentlyViewedRepository(db, logger),
	}
}
