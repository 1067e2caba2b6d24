package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
)

type orderTrackingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderTrackingRepository creates a new order tracking repository
func NewOrderTrackingRepository(db *sql.DB, logger *zap.Logger) *orderTrackingRepository {
	return &orderTrackingRepository{db: db, logger: logger}
}

func (r *orderTrackingRepository) Create(ctx context.Context, tracking *domain.OrderTracking) error {
	query := `
		INSERT INTO order_tracking (id, order_id, location, transport_company, driver_name, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if tracking.ID == uuid.Nil {
		tracking.ID = uuid.New()
	}
	if tracking.UpdatedAt.IsZero() {
		tracking.UpdatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		tracking.ID,
		tracking.OrderID,
		tracking.Location,
		tracking.TransportCompany,
		tracking.DriverName,
		tracking.Status,
		tracking.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create tracking entry", zap.Error(err))
		return err
	}
	return nil
}

func (r *orderTrackingRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderTracking, error) {
	// append-only log, newest last
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, location, transport_company, driver_name, status, updated_at
		FROM order_tracking
		WHERE order_id = $1
		ORDER BY updated_at ASC
	`, orderID)
	if err != nil {
		r.logger.Error("Failed to list tracking entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.OrderTracking
	for rows.Next() {
		var entry domain.OrderTracking
		if err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.Location,
			&entry.TransportCompany,
			&entry.DriverName,
			&entry.Status,
			&entry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
