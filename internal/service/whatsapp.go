package service

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

// WhatsAppService builds the deep links that hand an order conversation to
// the business WhatsApp number.
type WhatsAppService struct {
	businessNumber string
	baseURL        string
}

func NewWhatsAppService(businessNumber, baseURL string) *WhatsAppService {
	return &WhatsAppService{businessNumber: businessNumber, baseURL: strings.TrimRight(baseURL, "/")}
}

// Link wraps a plain-text message into a wa.me deep link
func (s *WhatsAppService) Link(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.businessNumber, url.QueryEscape(message))
}

// OrderMessage builds the full order summary sent to the seller, including
// the payment protection notice and the customer's tier benefits.
func (s *WhatsAppService) OrderMessage(user *domain.User, order *domain.Order, quote Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s New Order #%s*\n\n", user.Tier.Badge(), order.ID)
	fmt.Fprintf(&b, "Customer: %s (%d points)\n", user.Name, user.Points)
	fmt.Fprintf(&b, "Email: %s\n", user.Email)
	fmt.Fprintf(&b, "Phone: %s\n\n", user.Phone)

	b.WriteString("*PAYMENT PROTECTION ACTIVE*\n")
	b.WriteString("Customer will only pay after you confirm this order.\n")
	b.WriteString("Please review and send M-Pesa payment details.\n\n")

	switch user.Tier {
	case domain.TierSilver:
		b.WriteString("Benefits: Priority Support, Early Access\n\n")
	case domain.TierGold:
		b.WriteString("Benefits: Priority Support, Early Access")
		if quote.SubtotalAfterDisc >= goldFreeShippingMin {
			b.WriteString(", FREE SHIPPING")
		}
		b.WriteString("\n\n")
	case domain.TierPlatinum:
		b.WriteString("Benefits: VIP Support, Personal Assistant, FREE SHIPPING\n\n")
	}

	b.WriteString("*Products:*\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d = KSh %s\n", item.Name, item.Quantity, formatKSh(item.Price*float64(item.Quantity)))
		if item.Size != "" {
			fmt.Fprintf(&b, "  Size: %s\n", item.Size)
		}
		if item.Color != "" {
			fmt.Fprintf(&b, "  Color: %s\n", item.Color)
		}
		if item.ImageURL != "" {
			fmt.Fprintf(&b, "  Image: %s%s\n", s.baseURL, item.ImageURL)
		}
	}

	fmt.Fprintf(&b, "\nSubtotal: KSh %s\n", formatKSh(quote.Subtotal))
	if order.CouponCode != nil && quote.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Discount (%s): -KSh %s\n", *order.CouponCode, formatKSh(quote.DiscountAmount))
	}
	fmt.Fprintf(&b, "Shipping: KSh %s", formatKSh(quote.ShippingFee))
	if quote.FreeShippingByTier {
		b.WriteString(" (FREE - Tier Benefit)")
	}
	fmt.Fprintf(&b, "\nTax: KSh %s\n", formatKSh(quote.Commission))
	fmt.Fprintf(&b, "*TOTAL: KSh %s*\n\n", formatKSh(quote.Total))
	if order.ExpectedDelivery != nil {
		fmt.Fprintf(&b, "Expected Delivery: %s\n\n", order.ExpectedDelivery.Format("January 2, 2006"))
	}
	b.WriteString("Thank you for your order!")

	return b.String()
}

// RefundMessage builds the refund request the customer sends to the seller
func (s *WhatsAppService) RefundMessage(user *domain.User, order *domain.Order, reason string) string {
	if reason == "" {
		reason = "Not specified"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*REFUND REQUEST - Order #%s*\n\n", order.ID)
	fmt.Fprintf(&b, "Customer: %s\n", user.Name)
	fmt.Fprintf(&b, "Phone: %s\n", user.Phone)
	fmt.Fprintf(&b, "Email: %s\n\n", user.Email)
	fmt.Fprintf(&b, "Order Total: KSh %s\n", formatKSh(order.Total))
	fmt.Fprintf(&b, "Order Date: %s\n\n", order.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Reason: %s\n\n", reason)
	b.WriteString("Please process my refund. Thank you.")
	return b.String()
}

// IssueMessage builds an issue report for a known issue type, falling back to
// a free-form concern.
func (s *WhatsAppService) IssueMessage(user *domain.User, order *domain.Order, issueType, detail string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*ISSUE REPORT - Order #%s*\n\n", order.ID)
	fmt.Fprintf(&b, "Customer: %s\n", user.Name)
	fmt.Fprintf(&b, "Phone: %s\n\n", user.Phone)

	switch issueType {
	case "payment_not_confirmed":
		b.WriteString("Issue: Payment not confirmed\n")
		b.WriteString("I sent payment but order still shows as pending.\n")
		b.WriteString("Please confirm my payment.")
	case "delivery_delay":
		b.WriteString("Issue: Delivery Delay\n")
		if order.ExpectedDelivery != nil {
			fmt.Fprintf(&b, "Expected: %s\n", order.ExpectedDelivery.Format("January 2, 2006"))
		}
		b.WriteString("My order is delayed. Please provide update.")
	default:
		if detail == "" {
			detail = "General concern"
		}
		fmt.Fprintf(&b, "Issue: %s\n", detail)
	}
	return b.String()
}

// formatKSh renders an amount as a whole number with thousands separators
func formatKSh(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		s = s + "," + strings.Join(parts, ",")
	}
	if neg {
		return "-" + s
	}
	return s
}
