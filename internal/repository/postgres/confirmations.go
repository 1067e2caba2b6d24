package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

type deliveryConfirmationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDeliveryConfirmationRepository creates a new delivery confirmation repository
func NewDeliveryConfirmationRepository(db *sql.DB, logger *zap.Logger) *deliveryConfirmationRepository {
	return &deliveryConfirmationRepository{db: db, logger: logger}
}

const confirmationColumns = `id, order_id, user_id, photo_url, rating, feedback, confirmed_by_admin, created_at`

func (r *deliveryConfirmationRepository) Create(ctx context.Context, confirmation *domain.DeliveryConfirmation) error {
	query := `
		INSERT INTO delivery_confirmations (id, order_id, user_id, photo_url, rating, feedback, confirmed_by_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if confirmation.ID == uuid.Nil {
		confirmation.ID = uuid.New()
	}
	if confirmation.CreatedAt.IsZero() {
		confirmation.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		confirmation.ID,
		confirmation.OrderID,
		confirmation.UserID,
		confirmation.PhotoURL,
		confirmation.Rating,
		confirmation.Feedback,
		confirmation.ConfirmedByAdmin,
		confirmation.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create delivery confirmation", zap.Error(err))
		return err
	}
	return nil
}

func scanConfirmation(scan func(dest ...any) error) (*domain.DeliveryConfirmation, error) {
	var confirmation domain.DeliveryConfirmation
	var photoURL sql.NullString

	err := scan(
		&confirmation.ID,
		&confirmation.OrderID,
		&confirmation.UserID,
		&photoURL,
		&confirmation.Rating,
		&confirmation.Feedback,
		&confirmation.ConfirmedByAdmin,
		&confirmation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if photoURL.Valid {
		confirmation.PhotoURL = &photoURL.String
	}
	return &confirmation, nil
}

func (r *deliveryConfirmationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryConfirmation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+confirmationColumns+` FROM delivery_confirmations WHERE id = $1`, id)
	confirmation, err := scanConfirmation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "delivery_confirmation", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get delivery confirmation", zap.Error(err))
		return nil, err
	}
	return confirmation, nil
}

func (r *deliveryConfirmationRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.DeliveryConfirmation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+confirmationColumns+` FROM delivery_confirmations WHERE order_id = $1`, orderID)
	confirmation, err := scanConfirmation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "delivery_confirmation", ID: orderID.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get delivery confirmation by order", zap.Error(err))
		return nil, err
	}
	return confirmation, nil
}

func (r *deliveryConfirmationRepository) MarkConfirmedByAdmin(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE delivery_confirmations SET confirmed_by_admin = true WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to mark confirmation", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "delivery_confirmation", ID: id.String()}
	}
	return nil
}

func (r *deliveryConfirmationRepository) List(ctx context.Context) ([]*domain.DeliveryConfirmation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+confirmationColumns+` FROM delivery_confirmations ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("Failed to list delivery confirmations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var confirmations []*domain.DeliveryConfirmation
	for rows.Next() {
		confirmation, err := scanConfirmation(rows.Scan)
		if err != nil {
			return nil, err
		}
		confirmations = append(confirmations, confirmation)
	}
	return confirmations, rows.Err()
}
