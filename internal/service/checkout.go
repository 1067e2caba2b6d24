package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

// CheckoutService turns a cart snapshot into a pending order and the
// WhatsApp handoff link for it.
type CheckoutService struct {
	orders   repository.OrderRepository
	coupons  repository.CouponRepository
	whatsapp *WhatsAppService
	logger   *zap.Logger
	now      func() time.Time
}

func NewCheckoutService(orders repository.OrderRepository, coupons repository.CouponRepository, whatsapp *WhatsAppService, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		coupons:  coupons,
		whatsapp: whatsapp,
		logger:   logger,
		now:      time.Now,
	}
}

// CheckoutInput is a checkout request after the cart cookie has been decoded.
// DiscountAmount is whatever the coupon validation endpoint quoted earlier;
// checkout takes it at face value.
type CheckoutInput struct {
	Items          []domain.CartItem
	CouponCode     string
	DiscountAmount float64
}

// CheckoutResult is a created order plus its seller handoff link
type CheckoutResult struct {
	Order       *domain.Order
	Quote       Quote
	WhatsAppURL string
}

// Checkout prices the cart, persists a pending order and builds the WhatsApp
// link the customer uses to complete payment with the seller.
func (s *CheckoutService) Checkout(ctx context.Context, user *domain.User, in CheckoutInput) (*CheckoutResult, error) {
	if len(in.Items) == 0 {
		return nil, &apperrors.ErrValidation{Message: "cart is empty"}
	}

	now := s.now()

	freeShippingUsed := 0
	if user.Tier == domain.TierPlatinum {
		used, err := s.orders.CountFreeShippingSince(ctx, user.ID, MonthStart(now))
		if err != nil {
			return nil, err
		}
		freeShippingUsed = used
	}

	quote := PriceOrder(PricingInput{
		Items:                     in.Items,
		DiscountAmount:            in.DiscountAmount,
		Tier:                      user.Tier,
		FreeShippingUsedThisMonth: freeShippingUsed,
	})

	expected := ExpectedDelivery(now)
	order := &domain.Order{
		ID:               uuid.New(),
		UserID:           user.ID,
		Total:            quote.Total,
		ShippingFee:      quote.ShippingFee,
		Commission:       quote.Commission,
		Status:           domain.OrderStatusPending,
		PaymentMethod:    "whatsapp",
		Items:            in.Items,
		ExpectedDelivery: &expected,
		DiscountAmount:   in.DiscountAmount,
		CreatedAt:        now,
	}
	if code := strings.ToUpper(strings.TrimSpace(in.CouponCode)); code != "" {
		order.CouponCode = &code
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if order.CouponCode != nil {
		if err := s.coupons.IncrementUsedCount(ctx, *order.CouponCode); err != nil {
			s.logger.Warn("failed to increment coupon usage",
				zap.String("code", *order.CouponCode),
				zap.Error(err))
		}
	}

	message := s.whatsapp.OrderMessage(user, order, quote)
	return &CheckoutResult{
		Order:       order,
		Quote:       quote,
		WhatsAppURL: s.whatsapp.Link(message),
	}, nil
}

// ValidateCouponCode resolves a code and validates it against a subtotal,
// returning customer-facing results in both directions.
func (s *CheckoutService) ValidateCouponCode(ctx context.Context, code string, subtotal float64) (CouponResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	coupon, err := s.coupons.GetActiveByCode(ctx, code)
	if err != nil {
		var notFound *apperrors.ErrNotFound
		if errors.As(err, &notFound) {
			return ValidateCoupon(nil, subtotal, s.now()), nil
		}
		return CouponResult{}, err
	}
	return ValidateCoupon(coupon, subtotal, s.now()), nil
}
