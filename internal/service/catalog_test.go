package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

type fakeCatalogProducts struct {
	repository.ProductRepository
	trending []*domain.Product
	byID     map[uuid.UUID]*domain.Product
	searched string
	limit    int
}

func (r *fakeCatalogProducts) ListTrending(_ context.Context) ([]*domain.Product, error) {
	return r.trending, nil
}

func (r *fakeCatalogProducts) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	return p, nil
}

func (r *fakeCatalogProducts) SearchByName(_ context.Context, query string, limit int) ([]*domain.Product, error) {
	r.searched = query
	r.limit = limit
	return nil, nil
}

type fakeCatalogOrders struct {
	repository.OrderRepository
	orders   []*domain.Order
	statuses []domain.OrderStatus
}

func (r *fakeCatalogOrders) ListByStatuses(_ context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error) {
	r.statuses = statuses
	return r.orders, nil
}

type fakeRecentlyViewed struct {
	repository.RecentlyViewedRepository
	ids  []uuid.UUID
	keep int
}

func (r *fakeRecentlyViewed) Record(_ context.Context, _, productID uuid.UUID, keep int) error {
	r.ids = append([]uuid.UUID{productID}, r.ids...)
	r.keep = keep
	return nil
}

func (r *fakeRecentlyViewed) ListProductIDs(_ context.Context, _ uuid.UUID, limit int) ([]uuid.UUID, error) {
	if len(r.ids) > limit {
		return r.ids[:limit], nil
	}
	return r.ids, nil
}

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	sale := 1999.0
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		product domain.Product
		want    float64
	}{
		{"no sale", domain.Product{Price: 2500}, 2500},
		{"active sale", domain.Product{Price: 2500, FlashSalePrice: &sale, FlashSaleEnd: &future}, 1999},
		{"expired sale", domain.Product{Price: 2500, FlashSalePrice: &sale, FlashSaleEnd: &past}, 2500},
		{"sale price without end date", domain.Product{Price: 2500, FlashSalePrice: &sale}, 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectivePrice(&tt.product, now); got != tt.want {
				t.Fatalf("EffectivePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertPrice(t *testing.T) {
	tests := []struct {
		currency string
		want     float64
	}{
		{"KSh", 1000},
		{"USD", 6.7},
		{"GBP", 5.2},
		{"TSh", 18500},
		{"USh", 24800},
		{"NGN", 11200},
		{"ZAR", 120},
		{"EUR", 1000}, // unknown currency passes through
	}
	for _, tt := range tests {
		if got := ConvertPrice(1000, tt.currency); got != tt.want {
			t.Fatalf("ConvertPrice(1000, %q) = %v, want %v", tt.currency, got, tt.want)
		}
	}
}

func TestTrendingForHomeMarksHotProducts(t *testing.T) {
	hot := &domain.Product{ID: uuid.New(), Name: "Hot Dress"}
	cold := &domain.Product{ID: uuid.New(), Name: "Cold Shirt"}

	products := &fakeCatalogProducts{trending: []*domain.Product{hot, cold}}
	orders := &fakeCatalogOrders{orders: []*domain.Order{
		{Status: domain.OrderStatusPaid, Items: []domain.CartItem{{ProductID: hot.ID, Quantity: 3}}},
		{Status: domain.OrderStatusDelivered, Items: []domain.CartItem{{ProductID: hot.ID, Quantity: 2}}},
		{Status: domain.OrderStatusProcessing, Items: []domain.CartItem{{ProductID: cold.ID, Quantity: 4}}},
	}}

	svc := NewCatalogService(products, orders, &fakeRecentlyViewed{}, zap.NewNop())
	home, err := svc.TrendingForHome(context.Background())
	if err != nil {
		t.Fatalf("TrendingForHome() error = %v", err)
	}
	if len(home) != 2 {
		t.Fatalf("expected 2 home products, got %d", len(home))
	}

	byID := make(map[uuid.UUID]HomeProduct)
	for _, hp := range home {
		byID[hp.Product.ID] = hp
	}
	if got := byID[hot.ID]; !got.IsHot || got.OrderCount != 5 {
		t.Errorf("hot product: IsHot=%v OrderCount=%d, want hot with 5", got.IsHot, got.OrderCount)
	}
	if got := byID[cold.ID]; got.IsHot || got.OrderCount != 4 {
		t.Errorf("cold product: IsHot=%v OrderCount=%d, want not hot with 4", got.IsHot, got.OrderCount)
	}

	if len(orders.statuses) != 4 {
		t.Errorf("expected hot counting over 4 statuses, got %v", orders.statuses)
	}
}

func TestTrendingForHomeCapsAtEight(t *testing.T) {
	products := &fakeCatalogProducts{}
	for i := 0; i < 12; i++ {
		products.trending = append(products.trending, &domain.Product{ID: uuid.New()})
	}

	svc := NewCatalogService(products, &fakeCatalogOrders{}, &fakeRecentlyViewed{}, zap.NewNop())
	home, err := svc.TrendingForHome(context.Background())
	if err != nil {
		t.Fatalf("TrendingForHome() error = %v", err)
	}
	if len(home) != 8 {
		t.Fatalf("expected 8 home products, got %d", len(home))
	}
}

func TestTrendingForHomeQuantityDefaultsToOne(t *testing.T) {
	p := &domain.Product{ID: uuid.New()}
	products := &fakeCatalogProducts{trending: []*domain.Product{p}}
	orders := &fakeCatalogOrders{orders: []*domain.Order{
		{Status: domain.OrderStatusPaid, Items: []domain.CartItem{{ProductID: p.ID}}},
	}}

	svc := NewCatalogService(products, orders, &fakeRecentlyViewed{}, zap.NewNop())
	home, err := svc.TrendingForHome(context.Background())
	if err != nil {
		t.Fatalf("TrendingForHome() error = %v", err)
	}
	if home[0].OrderCount != 1 {
		t.Fatalf("expected zero-quantity item to count as 1, got %d", home[0].OrderCount)
	}
}

func TestRecentlyViewedSkipsMissingProducts(t *testing.T) {
	products := &fakeCatalogProducts{byID: make(map[uuid.UUID]*domain.Product)}
	viewed := &fakeRecentlyViewed{}
	userID := uuid.New()

	svc := NewCatalogService(products, &fakeCatalogOrders{}, viewed, zap.NewNop())

	var first uuid.UUID
	for i := 0; i < 7; i++ {
		p := &domain.Product{ID: uuid.New()}
		if i != 3 { // one viewed product since deleted from the catalog
			products.byID[p.ID] = p
		}
		if i == 6 {
			first = p.ID
		}
		svc.RecordView(context.Background(), userID, p.ID)
	}

	if viewed.keep != 10 {
		t.Errorf("expected views kept with cap 10, got %d", viewed.keep)
	}

	got, err := svc.RecentlyViewed(context.Background(), userID)
	if err != nil {
		t.Fatalf("RecentlyViewed() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 products, got %d", len(got))
	}
	if got[0].ID != first {
		t.Errorf("expected most recent view first")
	}
}

func TestAutocompleteRequiresTwoCharacters(t *testing.T) {
	products := &fakeCatalogProducts{}
	svc := NewCatalogService(products, &fakeCatalogOrders{}, &fakeRecentlyViewed{}, zap.NewNop())

	got, err := svc.Autocomplete(context.Background(), "d")
	if err != nil {
		t.Fatalf("Autocomplete() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no suggestions for a one character query, got %d", len(got))
	}
	if products.searched != "" {
		t.Errorf("expected no search for a one character query")
	}

	if _, err := svc.Autocomplete(context.Background(), "dr"); err != nil {
		t.Fatalf("Autocomplete() error = %v", err)
	}
	if products.searched != "dr" || products.limit != 5 {
		t.Errorf("expected search %q with limit 5, got %q limit %d", "dr", products.searched, products.limit)
	}
}
