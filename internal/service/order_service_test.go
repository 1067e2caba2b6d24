package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
	apperrors "github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

// Test fakes embed the repository interfaces and implement only what the
// test under exercise touches.

type fakeOrderRepo struct {
	repository.OrderRepository
	orders   map[uuid.UUID]*domain.Order
	statuses map[uuid.UUID]domain.OrderStatus
	reasons  map[uuid.UUID]*string
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{
		orders:   make(map[uuid.UUID]*domain.Order),
		statuses: make(map[uuid.UUID]domain.OrderStatus),
		reasons:  make(map[uuid.UUID]*string),
	}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return o, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error {
	if _, ok := r.orders[id]; !ok {
		return &apperrors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	r.statuses[id] = status
	r.reasons[id] = reason
	return nil
}

type fakeConfirmationRepo struct {
	repository.DeliveryConfirmationRepository
	byOrder map[uuid.UUID]*domain.DeliveryConfirmation
	created []*domain.DeliveryConfirmation
}

func newFakeConfirmationRepo() *fakeConfirmationRepo {
	return &fakeConfirmationRepo{byOrder: make(map[uuid.UUID]*domain.DeliveryConfirmation)}
}

func (r *fakeConfirmationRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) (*domain.DeliveryConfirmation, error) {
	c, ok := r.byOrder[orderID]
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "delivery confirmation", ID: orderID.String()}
	}
	return c, nil
}

func (r *fakeConfirmationRepo) Create(_ context.Context, c *domain.DeliveryConfirmation) error {
	r.byOrder[c.OrderID] = c
	r.created = append(r.created, c)
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "user", ID: id.String()}
	}
	return u, nil
}

func (r *fakeUserRepo) UpdatePointsAndTier(_ context.Context, id uuid.UUID, points int, tier domain.Tier) error {
	u, ok := r.users[id]
	if !ok {
		return &apperrors.ErrNotFound{Resource: "user", ID: id.String()}
	}
	u.Points = points
	u.Tier = tier
	return nil
}

type fakeReviewRepo struct {
	repository.ReviewRepository
	existing map[uuid.UUID]bool // keyed by product id
	created  []*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{existing: make(map[uuid.UUID]bool)}
}

func (r *fakeReviewRepo) GetByProductAndUser(_ context.Context, productID, userID uuid.UUID) (*domain.Review, error) {
	if r.existing[productID] {
		return &domain.Review{ProductID: productID, UserID: userID}, nil
	}
	return nil, &apperrors.ErrNotFound{Resource: "review", ID: productID.String()}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	r.existing[review.ProductID] = true
	r.created = append(r.created, review)
	return nil
}

type fakeTrackingRepo struct {
	repository.OrderTrackingRepository
	created []*domain.OrderTracking
}

func (r *fakeTrackingRepo) Create(_ context.Context, t *domain.OrderTracking) error {
	r.created = append(r.created, t)
	return nil
}

func newOrderService(orders *fakeOrderRepo, confirmations *fakeConfirmationRepo, users *fakeUserRepo, reviews *fakeReviewRepo, tracking *fakeTrackingRepo) *OrderService {
	return NewOrderService(&repository.Repositories{
		Order:                orders,
		OrderTracking:        tracking,
		DeliveryConfirmation: confirmations,
		Review:               reviews,
		User:                 users,
	}, zap.NewNop())
}

func TestUpdateStatusAwardsPointsOnPaid(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Points: 490, Tier: domain.TierBronze}
	order := &domain.Order{ID: uuid.New(), UserID: user.ID, Total: 1000, Status: domain.OrderStatusPending}

	orders := newFakeOrderRepo(order)
	users := newFakeUserRepo(user)
	svc := newOrderService(orders, newFakeConfirmationRepo(), users, newFakeReviewRepo(), &fakeTrackingRepo{})

	if err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusPaid); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if user.Points != 500 {
		t.Errorf("points = %d, want 500", user.Points)
	}
	if user.Tier != domain.TierSilver {
		t.Errorf("tier = %s, want silver", user.Tier)
	}
}

func TestUpdateStatusNoPointsWhenAlreadyPaid(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Points: 100, Tier: domain.TierBronze}
	order := &domain.Order{ID: uuid.New(), UserID: user.ID, Total: 1000, Status: domain.OrderStatusPaid}

	svc := newOrderService(newFakeOrderRepo(order), newFakeConfirmationRepo(), newFakeUserRepo(user), newFakeReviewRepo(), &fakeTrackingRepo{})

	if err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusPaid); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if user.Points != 100 {
		t.Errorf("points = %d, want unchanged 100", user.Points)
	}
}

func TestUpdateStatusRejectsConfirmedOrder(t *testing.T) {
	order := &domain.Order{ID: uuid.New(), UserID: uuid.New(), Status: domain.OrderStatusDelivered}

	confirmations := newFakeConfirmationRepo()
	confirmations.byOrder[order.ID] = &domain.DeliveryConfirmation{OrderID: order.ID}

	orders := newFakeOrderRepo(order)
	svc := newOrderService(orders, confirmations, newFakeUserRepo(), newFakeReviewRepo(), &fakeTrackingRepo{})

	err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusShipped)
	var immutable *apperrors.ErrImmutableOrder
	if !errors.As(err, &immutable) {
		t.Fatalf("expected ErrImmutableOrder, got %v", err)
	}
	if _, changed := orders.statuses[order.ID]; changed {
		t.Error("status was written despite confirmation")
	}
}

func TestAddTrackingRejectsConfirmedOrder(t *testing.T) {
	order := &domain.Order{ID: uuid.New(), Status: domain.OrderStatusShipped}
	confirmations := newFakeConfirmationRepo()
	confirmations.byOrder[order.ID] = &domain.DeliveryConfirmation{OrderID: order.ID}

	tracking := &fakeTrackingRepo{}
	svc := newOrderService(newFakeOrderRepo(order), confirmations, newFakeUserRepo(), newFakeReviewRepo(), tracking)

	err := svc.AddTracking(context.Background(), order.ID, &domain.OrderTracking{Location: "Nairobi"})
	var immutable *apperrors.ErrImmutableOrder
	if !errors.As(err, &immutable) {
		t.Fatalf("expected ErrImmutableOrder, got %v", err)
	}
	if len(tracking.created) != 0 {
		t.Error("tracking entry was created despite confirmation")
	}
}

func TestConfirmDeliveryOncePerOrder(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Tier: domain.TierBronze}
	order := &domain.Order{ID: uuid.New(), UserID: user.ID, Status: domain.OrderStatusDelivered}

	svc := newOrderService(newFakeOrderRepo(order), newFakeConfirmationRepo(), newFakeUserRepo(user), newFakeReviewRepo(), &fakeTrackingRepo{})

	if _, err := svc.ConfirmDelivery(context.Background(), order.ID, user.ID, ConfirmDeliveryInput{Rating: 5}); err != nil {
		t.Fatalf("first confirmation: %v", err)
	}

	_, err := svc.ConfirmDelivery(context.Background(), order.ID, user.ID, ConfirmDeliveryInput{Rating: 4})
	var conflict *apperrors.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestConfirmDeliverySeedsReviewsAndAwardsPoints(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Points: 0, Tier: domain.TierBronze}
	reviewed := uuid.New()
	fresh := uuid.New()
	order := &domain.Order{
		ID:     uuid.New(),
		UserID: user.ID,
		Status: domain.OrderStatusDelivered,
		Items: []domain.CartItem{
			{ProductID: reviewed, Name: "shoes", Quantity: 1},
			{ProductID: fresh, Name: "belt", Quantity: 1},
		},
	}

	reviews := newFakeReviewRepo()
	reviews.existing[reviewed] = true

	svc := newOrderService(newFakeOrderRepo(order), newFakeConfirmationRepo(), newFakeUserRepo(user), reviews, &fakeTrackingRepo{})

	if _, err := svc.ConfirmDelivery(context.Background(), order.ID, user.ID, ConfirmDeliveryInput{Rating: 5, Feedback: "great"}); err != nil {
		t.Fatalf("ConfirmDelivery: %v", err)
	}

	if len(reviews.created) != 1 {
		t.Fatalf("reviews created = %d, want 1", len(reviews.created))
	}
	if reviews.created[0].ProductID != fresh {
		t.Error("review seeded for wrong product")
	}
	if reviews.created[0].Rating != 5 || reviews.created[0].Comment != "great" {
		t.Error("review does not carry confirmation rating and feedback")
	}

	// rating 5 on bronze: 50 base + 100 bonus
	if user.Points != 150 {
		t.Errorf("points = %d, want 150", user.Points)
	}
}

func TestConfirmDeliveryRejectsForeignOrder(t *testing.T) {
	owner := &domain.User{ID: uuid.New()}
	order := &domain.Order{ID: uuid.New(), UserID: owner.ID, Status: domain.OrderStatusDelivered}

	svc := newOrderService(newFakeOrderRepo(order), newFakeConfirmationRepo(), newFakeUserRepo(owner), newFakeReviewRepo(), &fakeTrackingRepo{})

	_, err := svc.ConfirmDelivery(context.Background(), order.ID, uuid.New(), ConfirmDeliveryInput{Rating: 3})
	var unauthorized *apperrors.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCancelOnlyWhilePending(t *testing.T) {
	user := uuid.New()
	pending := &domain.Order{ID: uuid.New(), UserID: user, Status: domain.OrderStatusPending}
	paid := &domain.Order{ID: uuid.New(), UserID: user, Status: domain.OrderStatusPaid}

	orders := newFakeOrderRepo(pending, paid)
	svc := newOrderService(orders, newFakeConfirmationRepo(), newFakeUserRepo(), newFakeReviewRepo(), &fakeTrackingRepo{})

	if err := svc.Cancel(context.Background(), pending.ID, user, ""); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if orders.statuses[pending.ID] != domain.OrderStatusCancelled {
		t.Error("pending order was not cancelled")
	}
	if reason := orders.reasons[pending.ID]; reason == nil || *reason != "Customer requested cancellation" {
		t.Error("default cancellation reason not applied")
	}

	err := svc.Cancel(context.Background(), paid.ID, user, "changed my mind")
	var validation *apperrors.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
