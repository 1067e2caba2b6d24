package service

import (
	"time"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

// Shipping fee tiers by order value, in KSh.
const (
	shippingFeeSmall  = 300 // below 2000
	shippingFeeMedium = 400 // below 5000
	shippingFeeLarge  = 500

	shippingSmallLimit  = 2000
	shippingMediumLimit = 5000

	// gold tier free shipping threshold (inclusive)
	goldFreeShippingMin = 6000

	// platform commission charged to the customer, shown as "Tax" outward
	commissionRate = 0.10

	// fixed delivery estimate, roughly Tanzania to Kenya transit
	deliveryEstimateDays = 10
)

// PricingInput is everything checkout needs to price a cart. The discount
// amount comes from the client as validated by the coupon endpoint; checkout
// does not re-validate it.
type PricingInput struct {
	Items          []domain.CartItem
	DiscountAmount float64
	Tier           domain.Tier

	// Count of this user's zero-shipping orders so far this calendar month.
	// Only consulted for platinum, whose benefit is one free order a month.
	FreeShippingUsedThisMonth int
}

// Quote is the priced result of a cart
type Quote struct {
	Subtotal           float64
	DiscountAmount     float64
	SubtotalAfterDisc  float64
	ShippingFee        float64
	Commission         float64
	Total              float64
	FreeShippingByTier bool
}

// PriceOrder computes an order quote from a cart snapshot
func PriceOrder(in PricingInput) Quote {
	var subtotal float64
	for _, item := range in.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	afterDiscount := subtotal - in.DiscountAmount

	var shipping float64
	switch {
	case afterDiscount < shippingSmallLimit:
		shipping = shippingFeeSmall
	case afterDiscount < shippingMediumLimit:
		shipping = shippingFeeMedium
	default:
		shipping = shippingFeeLarge
	}

	freeByTier := false
	if in.Tier == domain.TierGold && afterDiscount >= goldFreeShippingMin {
		shipping = 0
		freeByTier = true
	} else if in.Tier == domain.TierPlatinum && in.FreeShippingUsedThisMonth == 0 {
		shipping = 0
		freeByTier = true
	}

	commission := afterDiscount * commissionRate

	return Quote{
		Subtotal:           subtotal,
		DiscountAmount:     in.DiscountAmount,
		SubtotalAfterDisc:  afterDiscount,
		ShippingFee:        shipping,
		Commission:         commission,
		Total:              afterDiscount + shipping + commission,
		FreeShippingByTier: freeByTier,
	}
}

// ExpectedDelivery returns the fixed delivery estimate from now
func ExpectedDelivery(now time.Time) time.Time {
	return now.Add(deliveryEstimateDays * 24 * time.Hour)
}

// MonthStart returns the first instant of now's calendar month, used to
// window the platinum free-shipping benefit.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
