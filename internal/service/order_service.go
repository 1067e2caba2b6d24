package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

// OrderService owns the order lifecycle: status transitions, tracking,
// delivery confirmations and the loyalty points those award.
type OrderService struct {
	orders        repository.OrderRepository
	tracking      repository.OrderTrackingRepository
	confirmations repository.DeliveryConfirmationRepository
	reviews       repository.ReviewRepository
	users         repository.UserRepository
	logger        *zap.Logger
	now           func() time.Time
}

func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:        repos.Order,
		tracking:      repos.OrderTracking,
		confirmations: repos.DeliveryConfirmation,
		reviews:       repos.Review,
		users:         repos.User,
		logger:        logger,
		now:           time.Now,
	}
}

// isConfirmed reports whether a delivery confirmation exists for the order.
// A confirmed order's status and tracking log are frozen.
func (s *OrderService) isConfirmed(ctx context.Context, orderID uuid.UUID) (bool, error) {
	_, err := s.confirmations.GetByOrderID(ctx, orderID)
	if err != nil {
		var notFound *apperrors.ErrNotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateStatus moves an order to a new status. Moving into paid for the
// first time awards the customer purchase points and re-evaluates their tier.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) error {
	if !status.IsValid() {
		return &apperrors.ErrValidation{Message: "invalid order status"}
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	confirmed, err := s.isConfirmed(ctx, orderID)
	if err != nil {
		return err
	}
	if confirmed {
		return &apperrors.ErrImmutableOrder{OrderID: orderID.String()}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status, nil); err != nil {
		return err
	}

	if order.Status != domain.OrderStatusPaid && status == domain.OrderStatusPaid {
		s.awardOrderPoints(ctx, order)
	}
	return nil
}

// awardOrderPoints credits purchase points for an order's total. Point
// bookkeeping never fails the calling operation.
func (s *OrderService) awardOrderPoints(ctx context.Context, order *domain.Order) {
	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		s.logger.Error("failed to load user for points award",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		return
	}

	points := user.Points + PointsForOrder(order.Total, user.Tier)
	if err := s.users.UpdatePointsAndTier(ctx, user.ID, points, TierForPoints(points)); err != nil {
		s.logger.Error("failed to award order points",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}

// AddTracking appends a tracking entry unless the order is confirmed
func (s *OrderService) AddTracking(ctx context.Context, orderID uuid.UUID, entry *domain.OrderTracking) error {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return err
	}

	confirmed, err := s.isConfirmed(ctx, orderID)
	if err != nil {
		return err
	}
	if confirmed {
		return &apperrors.ErrImmutableOrder{OrderID: orderID.String()}
	}

	entry.ID = uuid.New()
	entry.OrderID = orderID
	entry.UpdatedAt = s.now()
	return s.tracking.Create(ctx, entry)
}

// ConfirmDeliveryInput is the customer's proof of receipt
type ConfirmDeliveryInput struct {
	PhotoURL *string
	Rating   int
	Feedback string
}

// ConfirmDelivery records the customer's delivery confirmation, seeds a
// review for each cart item that has none yet and awards delivery points.
// Only one confirmation may exist per order.
func (s *OrderService) ConfirmDelivery(ctx context.Context, orderID, userID uuid.UUID, in ConfirmDeliveryInput) (*domain.DeliveryConfirmation, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, &apperrors.ErrValidation{Message: "rating must be between 1 and 5"}
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, &apperrors.ErrUnauthorized{}
	}

	if _, err := s.confirmations.GetByOrderID(ctx, orderID); err == nil {
		return nil, &apperrors.ErrConflict{Message: "order already confirmed"}
	} else {
		var notFound *apperrors.ErrNotFound
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	confirmation := &domain.DeliveryConfirmation{
		ID:        uuid.New(),
		OrderID:   orderID,
		UserID:    userID,
		PhotoURL:  in.PhotoURL,
		Rating:    in.Rating,
		Feedback:  in.Feedback,
		CreatedAt: s.now(),
	}
	if err := s.confirmations.Create(ctx, confirmation); err != nil {
		return nil, err
	}

	s.seedReviews(ctx, order, userID, in.Rating, in.Feedback)
	s.awardDeliveryPoints(ctx, userID, in.Rating)

	return confirmation, nil
}

// seedReviews creates a review per cart item from the confirmation's rating
// and feedback, skipping products the user already reviewed. Best effort.
func (s *OrderService) seedReviews(ctx context.Context, order *domain.Order, userID uuid.UUID, rating int, feedback string) {
	for _, item := range order.Items {
		if _, err := s.reviews.GetByProductAndUser(ctx, item.ProductID, userID); err == nil {
			continue
		}
		review := &domain.Review{
			ID:        uuid.New(),
			ProductID: item.ProductID,
			UserID:    userID,
			Rating:    rating,
			Comment:   feedback,
			CreatedAt: s.now(),
		}
		if err := s.reviews.Create(ctx, review); err != nil {
			s.logger.Warn("failed to seed review from delivery confirmation",
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err))
		}
	}
}

func (s *OrderService) awardDeliveryPoints(ctx context.Context, userID uuid.UUID, rating int) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load user for delivery points",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return
	}

	points := user.Points + PointsForDelivery(rating, user.Tier)
	if err := s.users.UpdatePointsAndTier(ctx, user.ID, points, TierForPoints(points)); err != nil {
		s.logger.Error("failed to award delivery points",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}
}

// AdminConfirmDelivery marks a confirmation as verified and records the
// admin's rating of the customer.
func (s *OrderService) AdminConfirmDelivery(ctx context.Context, confirmationID uuid.UUID, adminRating int) error {
	confirmation, err := s.confirmations.GetByID(ctx, confirmationID)
	if err != nil {
		return err
	}
	if err := s.confirmations.MarkConfirmedByAdmin(ctx, confirmationID); err != nil {
		return err
	}
	if err := s.users.UpdateAdminRating(ctx, confirmation.UserID, adminRating); err != nil {
		s.logger.Error("failed to update admin rating",
			zap.String("user_id", confirmation.UserID.String()),
			zap.Error(err))
	}
	return nil
}

// Cancel cancels the caller's order while it is still pending
func (s *OrderService) Cancel(ctx context.Context, orderID, userID uuid.UUID, reason string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return &apperrors.ErrUnauthorized{}
	}
	if order.Status != domain.OrderStatusPending {
		return &apperrors.ErrValidation{Message: "Cannot cancel this order"}
	}
	if reason == "" {
		reason = "Customer requested cancellation"
	}
	return s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled, &reason)
}

// MarkPaidByReference settles an order from a payment provider callback.
// Purchase points stay tied to the admin paid transition, so the callback
// only moves status.
func (s *OrderService) MarkPaidByReference(ctx context.Context, reference string) error {
	order, err := s.orders.GetByPaymentReference(ctx, reference)
	if err != nil {
		return err
	}
	return s.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusPaid, nil)
}

// MarkFailedByReference records a failed payment attempt
func (s *OrderService) MarkFailedByReference(ctx context.Context, reference string) error {
	order, err := s.orders.GetByPaymentReference(ctx, reference)
	if err != nil {
		return err
	}
	return s.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusFailed, nil)
}
