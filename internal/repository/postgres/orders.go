package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{db: db, logger: logger}
}

const orderColumns = `id, user_id, total, shipping_fee, commission, status, payment_method,
	payment_reference, items, cancellation_reason, expected_delivery, coupon_code,
	discount_amount, created_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, user_id, total, shipping_fee, commission, status, payment_method,
			payment_reference, items, cancellation_reason, expected_delivery, coupon_code,
			discount_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.Total,
		order.ShippingFee,
		order.Commission,
		order.Status,
		order.PaymentMethod,
		order.PaymentReference,
		itemsJSON,
		order.CancellationReason,
		order.ExpectedDelivery,
		order.CouponCode,
		order.DiscountAmount,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}
	return nil
}

func scanOrder(scan func(dest ...any) error) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON []byte
	var paymentReference sql.NullString
	var cancellationReason sql.NullString
	var expectedDelivery sql.NullTime
	var couponCode sql.NullString

	err := scan(
		&order.ID,
		&order.UserID,
		&order.Total,
		&order.ShippingFee,
		&order.Commission,
		&order.Status,
		&order.PaymentMethod,
		&paymentReference,
		&itemsJSON,
		&cancellationReason,
		&expectedDelivery,
		&couponCode,
		&order.DiscountAmount,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentReference.Valid {
		order.PaymentReference = &paymentReference.String
	}
	if cancellationReason.Valid {
		order.CancellationReason = &cancellationReason.String
	}
	if expectedDelivery.Valid {
		order.ExpectedDelivery = &expectedDelivery.Time
	}
	if couponCode.Valid {
		order.CouponCode = &couponCode.String
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, err
		}
	}
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByPaymentReference(ctx context.Context, reference string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE payment_reference = $1`, reference)
	order, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: reference}
	}
	if err != nil {
		r.logger.Error("Failed to get order by payment reference", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
}

func (r *orderRepository) ListByStatuses(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.Order, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = ANY($1) ORDER BY created_at DESC`,
		pq.Array(values))
}

func (r *orderRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	return r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE created_at >= $1 ORDER BY created_at DESC`, since)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, cancellationReason *string) error {
	query := `UPDATE orders SET status = $2, cancellation_reason = COALESCE($3, cancellation_reason) WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, cancellationReason)
	if err != nil {
		r.logger.Error("Failed to update order status", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return nil
}

func (r *orderRepository) UpdatePaymentReference(ctx context.Context, id uuid.UUID, method, reference string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_method = $2, payment_reference = $3 WHERE id = $1`,
		id, method, reference)
	if err != nil {
		r.logger.Error("Failed to update payment reference", zap.Error(err))
		return err
	}
	return nil
}

func (r *orderRepository) CountFreeShippingSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1 AND shipping_fee = 0 AND created_at >= $2`,
		userID, since).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count free-shipping orders", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (r *orderRepository) SumTotals(ctx context.Context) (float64, error) {
	var sum sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `SELECT SUM(total) FROM orders`).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum.Float64, nil
}
