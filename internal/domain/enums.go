package domain

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	// PENDING - created at checkout, awaiting payment
	OrderStatusPending OrderStatus = "pending"
	// PAID - payment confirmed (admin or gateway callback)
	OrderStatusPaid OrderStatus = "paid"
	// PROCESSING - order being prepared
	OrderStatusProcessing OrderStatus = "processing"
	// SHIPPED - order in transit
	OrderStatusShipped OrderStatus = "shipped"
	// DELIVERED - order received by the customer
	OrderStatusDelivered OrderStatus = "delivered"
	// CANCELLED - cancelled while still pending
	OrderStatusCancelled OrderStatus = "cancelled"
	// FAILED - payment failed
	OrderStatusFailed OrderStatus = "failed"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusPaid,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
		OrderStatusFailed:
		return true
	default:
		return false
	}
}

// IsActive reports whether the order counts toward sales figures
func (s OrderStatus) IsActive() bool {
	switch s {
	case OrderStatusPaid, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// Tier is a loyalty rank derived solely from cumulative points
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// IsValid checks if the tier is a known rank
func (t Tier) IsValid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	default:
		return false
	}
}

// Badge returns the outward label used in order messages
func (t Tier) Badge() string {
	switch t {
	case TierSilver:
		return "[SILVER]"
	case TierGold:
		return "[GOLD]"
	case TierPlatinum:
		return "[PLATINUM VIP]"
	default:
		return "[BRONZE]"
	}
}
