package service

import "github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"

// Lifetime point thresholds for each tier
const (
	tierSilverMin   = 500
	tierGoldMin     = 2000
	tierPlatinumMin = 5000
)

const deliveryBasePoints = 50
const deliveryRatingBonus = 100

// PointsMultiplier returns the earn multiplier for a tier
func PointsMultiplier(tier domain.Tier) float64 {
	switch tier {
	case domain.TierSilver:
		return 1.5
	case domain.TierGold:
		return 2.0
	case domain.TierPlatinum:
		return 2.5
	default:
		return 1.0
	}
}

// PointsForOrder awards 1 point per 100 KSh of order total, scaled by the
// tier multiplier and truncated.
func PointsForOrder(total float64, tier domain.Tier) int {
	return int((total / 100) * PointsMultiplier(tier))
}

// PointsForDelivery awards the delivery confirmation points, with a flat
// bonus for ratings of 4 and above. The bonus is not scaled.
func PointsForDelivery(rating int, tier domain.Tier) int {
	points := int(deliveryBasePoints * PointsMultiplier(tier))
	if rating >= 4 {
		points += deliveryRatingBonus
	}
	return points
}

// TierForPoints maps lifetime points to a tier. Tiers never downgrade in
// practice because points only accumulate.
func TierForPoints(points int) domain.Tier {
	switch {
	case points >= tierPlatinumMin:
		return domain.TierPlatinum
	case points >= tierGoldMin:
		return domain.TierGold
	case points >= tierSilverMin:
		return domain.TierSilver
	default:
		return domain.TierBronze
	}
}
