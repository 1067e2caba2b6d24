package service

import (
	"testing"
	"time"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

func cartWorth(amount float64) []domain.CartItem {
	return []domain.CartItem{{Name: "item", Price: amount, Quantity: 1}}
}

func TestPriceOrderShippingTiers(t *testing.T) {
	tests := []struct {
		subtotal float64
		want     float64
	}{
		{500, 300},
		{1999, 300},
		{2000, 400},
		{4999, 400},
		{5000, 500},
		{12000, 500},
	}
	for _, tt := range tests {
		q := PriceOrder(PricingInput{Items: cartWorth(tt.subtotal), Tier: domain.TierBronze})
		if q.ShippingFee != tt.want {
			t.Errorf("subtotal %.0f: shipping = %.0f, want %.0f", tt.subtotal, q.ShippingFee, tt.want)
		}
	}
}

func TestPriceOrderShippingUsesDiscountedSubtotal(t *testing.T) {
	// 2100 gross but 1900 after discount lands in the lowest tier
	q := PriceOrder(PricingInput{Items: cartWorth(2100), DiscountAmount: 200, Tier: domain.TierBronze})
	if q.ShippingFee != 300 {
		t.Errorf("shipping = %.0f, want 300", q.ShippingFee)
	}
}

func TestPriceOrderGoldFreeShipping(t *testing.T) {
	q := PriceOrder(PricingInput{Items: cartWorth(6000), Tier: domain.TierGold})
	if q.ShippingFee != 0 || !q.FreeShippingByTier {
		t.Errorf("gold at 6000: shipping = %.0f, free = %v", q.ShippingFee, q.FreeShippingByTier)
	}

	q = PriceOrder(PricingInput{Items: cartWorth(5999), Tier: domain.TierGold})
	if q.ShippingFee != 500 || q.FreeShippingByTier {
		t.Errorf("gold at 5999: shipping = %.0f, free = %v", q.ShippingFee, q.FreeShippingByTier)
	}
}

func TestPriceOrderPlatinumFreeShippingOncePerMonth(t *testing.T) {
	q := PriceOrder(PricingInput{Items: cartWorth(1000), Tier: domain.TierPlatinum})
	if q.ShippingFee != 0 || !q.FreeShippingByTier {
		t.Errorf("first platinum order: shipping = %.0f, free = %v", q.ShippingFee, q.FreeShippingByTier)
	}

	q = PriceOrder(PricingInput{Items: cartWorth(1000), Tier: domain.TierPlatinum, FreeShippingUsedThisMonth: 1})
	if q.ShippingFee != 300 || q.FreeShippingByTier {
		t.Errorf("second platinum order: shipping = %.0f, free = %v", q.ShippingFee, q.FreeShippingByTier)
	}
}

func TestPriceOrderCommission(t *testing.T) {
	q := PriceOrder(PricingInput{Items: cartWorth(1000), Tier: domain.TierBronze})
	if q.Commission != 100 {
		t.Errorf("commission on 1000 = %.0f, want 100", q.Commission)
	}
	if q.Total != 1000+300+100 {
		t.Errorf("total = %.0f, want 1400", q.Total)
	}
}

func TestPriceOrderCommissionAfterDiscount(t *testing.T) {
	q := PriceOrder(PricingInput{Items: cartWorth(2000), DiscountAmount: 500, Tier: domain.TierBronze})
	if q.Commission != 150 {
		t.Errorf("commission = %.0f, want 150", q.Commission)
	}
}

func TestPriceOrderMultipleItems(t *testing.T) {
	items := []domain.CartItem{
		{Name: "shirt", Price: 800, Quantity: 2},
		{Name: "cap", Price: 400, Quantity: 1},
	}
	q := PriceOrder(PricingInput{Items: items, Tier: domain.TierBronze})
	if q.Subtotal != 2000 {
		t.Errorf("subtotal = %.0f, want 2000", q.Subtotal)
	}
}

func TestMonthStart(t *testing.T) {
	now := time.Date(2024, time.March, 17, 14, 30, 0, 0, time.UTC)
	got := MonthStart(now)
	want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MonthStart = %v, want %v", got, want)
	}
}

func TestExpectedDelivery(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	got := ExpectedDelivery(now)
	if got.Sub(now) != 10*24*time.Hour {
		t.Errorf("ExpectedDelivery offset = %v, want 240h", got.Sub(now))
	}
}
