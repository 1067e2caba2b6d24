package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
)

const (
	trendingHomeLimit   = 8
	relatedLimit        = 4
	recentlyViewedKeep  = 10
	recentlyViewedShown = 5
	autocompleteLimit   = 5
	hotOrderThreshold   = 5
	lowStockThreshold   = 5
)

// Display conversion rates from KSh. Hardcoded until a rates feed exists.
var currencyRates = map[string]float64{
	"KSh": 1.0,
	"USD": 0.0067,
	"GBP": 0.0052,
	"TSh": 18.5,
	"USh": 24.8,
	"NGN": 11.2,
	"ZAR": 0.12,
}

// CatalogService answers storefront product questions: effective prices,
// trending and hot products, related items and recently viewed history.
type CatalogService struct {
	products       repository.ProductRepository
	orders         repository.OrderRepository
	recentlyViewed repository.RecentlyViewedRepository
	logger         *zap.Logger
	now            func() time.Time
}

func NewCatalogService(products repository.ProductRepository, orders repository.OrderRepository, recentlyViewed repository.RecentlyViewedRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products:       products,
		orders:         orders,
		recentlyViewed: recentlyViewed,
		logger:         logger,
		now:            time.Now,
	}
}

// EffectivePrice returns the flash sale price while the sale is running,
// otherwise the list price.
func EffectivePrice(p *domain.Product, now time.Time) float64 {
	if p.FlashSalePrice != nil && p.FlashSaleEnd != nil && now.Before(*p.FlashSaleEnd) {
		return *p.FlashSalePrice
	}
	return p.Price
}

// ConvertPrice converts a KSh amount to a display currency, rounded to two
// decimals. Unknown currencies pass through unchanged.
func ConvertPrice(price float64, currency string) float64 {
	rate, ok := currencyRates[currency]
	if !ok {
		rate = 1.0
	}
	return math.Round(price*rate*100) / 100
}

// HomeProduct is a trending product annotated for the storefront home page
type HomeProduct struct {
	Product    *domain.Product
	IsHot      bool
	OrderCount int
}

// TrendingForHome returns a shuffled slice of trending products annotated
// with hot flags from order history.
func (s *CatalogService) TrendingForHome(ctx context.Context) ([]HomeProduct, error) {
	trending, err := s.products.ListTrending(ctx)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(trending), func(i, j int) {
		trending[i], trending[j] = trending[j], trending[i]
	})
	if len(trending) > trendingHomeLimit {
		trending = trending[:trendingHomeLimit]
	}

	counts, err := s.orderedQuantities(ctx)
	if err != nil {
		s.logger.Warn("failed to compute hot products", zap.Error(err))
		counts = nil
	}

	result := make([]HomeProduct, 0, len(trending))
	for _, p := range trending {
		count := counts[p.ID]
		result = append(result, HomeProduct{
			Product:    p,
			IsHot:      count >= hotOrderThreshold,
			OrderCount: count,
		})
	}
	return result, nil
}

// orderedQuantities sums item quantities per product across orders that
// represent real purchases.
func (s *CatalogService) orderedQuantities(ctx context.Context) (map[uuid.UUID]int, error) {
	orders, err := s.orders.ListByStatuses(ctx, []domain.OrderStatus{
		domain.OrderStatusPaid,
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int)
	for _, order := range orders {
		for _, item := range order.Items {
			qty := item.Quantity
			if qty == 0 {
				qty = 1
			}
			counts[item.ProductID] += qty
		}
	}
	return counts, nil
}

// Related returns up to four products in the same category
func (s *CatalogService) Related(ctx context.Context, product *domain.Product) ([]*domain.Product, error) {
	return s.products.ListRelated(ctx, product.Category, product.ID, relatedLimit)
}

// RecordView notes a product view for a signed-in user, keeping only their
// ten most recent views.
func (s *CatalogService) RecordView(ctx context.Context, userID, productID uuid.UUID) {
	if err := s.recentlyViewed.Record(ctx, userID, productID, recentlyViewedKeep); err != nil {
		s.logger.Warn("failed to record product view",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

// RecentlyViewed returns the user's five most recently viewed products
func (s *CatalogService) RecentlyViewed(ctx context.Context, userID uuid.UUID) ([]*domain.Product, error) {
	ids, err := s.recentlyViewed.ListProductIDs(ctx, userID, recentlyViewedShown)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// Autocomplete returns name-prefix suggestions for queries of two or more
// characters.
func (s *CatalogService) Autocomplete(ctx context.Context, query string) ([]*domain.Product, error) {
	if len(query) < 2 {
		return []*domain.Product{}, nil
	}
	return s.products.SearchByName(ctx, query, autocompleteLimit)
}

// LowStock lists products at or below the restock threshold
func (s *CatalogService) LowStock(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListLowStock(ctx, lowStockThreshold)
}
