package service

import (
	"testing"
	"time"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

func TestValidateCouponUnknownCode(t *testing.T) {
	res := ValidateCoupon(nil, 1000, time.Now())
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if res.Message != "Invalid coupon code" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestValidateCouponExpired(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Hour)
	coupon := &domain.Coupon{Code: "OLD10", ExpiresAt: &expired, Active: true}

	res := ValidateCoupon(coupon, 1000, now)
	if res.Valid || res.Message != "Coupon has expired" {
		t.Errorf("got valid=%v message=%q", res.Valid, res.Message)
	}
}

func TestValidateCouponUsageLimit(t *testing.T) {
	maxUses := 10
	coupon := &domain.Coupon{Code: "FULL", MaxUses: &maxUses, UsedCount: 10, Active: true}

	res := ValidateCoupon(coupon, 1000, time.Now())
	if res.Valid || res.Message != "Coupon usage limit reached" {
		t.Errorf("got valid=%v message=%q", res.Valid, res.Message)
	}
}

func TestValidateCouponMinPurchase(t *testing.T) {
	coupon := &domain.Coupon{Code: "BIG", MinPurchase: 2000, Active: true}

	res := ValidateCoupon(coupon, 1500, time.Now())
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if res.Message != "Minimum purchase of KSh 2,000 required" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestValidateCouponPercentDiscount(t *testing.T) {
	percent := 10.0
	coupon := &domain.Coupon{Code: "SAVE10", DiscountPercent: &percent, Active: true}

	res := ValidateCoupon(coupon, 2000, time.Now())
	if !res.Valid {
		t.Fatalf("expected valid result, got %q", res.Message)
	}
	if res.Discount != 200 {
		t.Errorf("discount = %.0f, want 200", res.Discount)
	}
	if res.Message != "Coupon applied! You save KSh 200" {
		t.Errorf("message = %q", res.Message)
	}
	if res.Code != "SAVE10" {
		t.Errorf("code = %q", res.Code)
	}
}

func TestValidateCouponFixedDiscount(t *testing.T) {
	amount := 300.0
	coupon := &domain.Coupon{Code: "OFF300", DiscountAmount: &amount, Active: true}

	res := ValidateCoupon(coupon, 2000, time.Now())
	if !res.Valid || res.Discount != 300 {
		t.Errorf("got valid=%v discount=%.0f", res.Valid, res.Discount)
	}
}

func TestValidateCouponAtLimits(t *testing.T) {
	// exactly at min purchase and below the usage cap is valid
	maxUses := 5
	future := time.Now().Add(time.Hour)
	amount := 100.0
	coupon := &domain.Coupon{
		Code:           "EDGE",
		DiscountAmount: &amount,
		MinPurchase:    1000,
		MaxUses:        &maxUses,
		UsedCount:      4,
		ExpiresAt:      &future,
		Active:         true,
	}

	res := ValidateCoupon(coupon, 1000, time.Now())
	if !res.Valid {
		t.Errorf("expected valid, got %q", res.Message)
	}
}
