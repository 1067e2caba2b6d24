package service

import (
	"fmt"
	"time"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

// CouponResult is the outcome of validating a coupon against a cart subtotal.
// Message is customer-facing in both directions.
type CouponResult struct {
	Valid    bool
	Code     string
	Discount float64
	Message  string
}

// ValidateCoupon checks a coupon against a subtotal at a point in time.
// A nil coupon means the code did not resolve to an active coupon.
func ValidateCoupon(coupon *domain.Coupon, subtotal float64, now time.Time) CouponResult {
	if coupon == nil {
		return CouponResult{Message: "Invalid coupon code"}
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return CouponResult{Message: "Coupon has expired"}
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return CouponResult{Message: "Coupon usage limit reached"}
	}
	if subtotal < coupon.MinPurchase {
		return CouponResult{Message: fmt.Sprintf("Minimum purchase of KSh %s required", formatKSh(coupon.MinPurchase))}
	}

	var discount float64
	if coupon.DiscountPercent != nil {
		discount = subtotal * (*coupon.DiscountPercent / 100)
	} else if coupon.DiscountAmount != nil {
		discount = *coupon.DiscountAmount
	}
	return CouponResult{
		Valid:    true,
		Code:     coupon.Code,
		Discount: discount,
		Message:  fmt.Sprintf("Coupon applied! You save KSh %s", formatKSh(discount)),
	}
}
