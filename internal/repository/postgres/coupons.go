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

type couponRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *sql.DB, logger *zap.Logger) *couponRepository {
	return &couponRepository{db: db, logger: logger}
}

const couponColumns = `id, code, discount_percent, discount_amount, min_purchase, max_uses,
	used_count, expires_at, active, created_at`

func (r *couponRepository) Create(ctx context.Context, coupon *domain.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, discount_percent, discount_amount, min_purchase, max_uses,
			used_count, expires_at, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	if coupon.CreatedAt.IsZero() {
		coupon.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.DiscountPercent,
		coupon.DiscountAmount,
		coupon.MinPurchase,
		coupon.MaxUses,
		coupon.UsedCount,
		coupon.ExpiresAt,
		coupon.Active,
		coupon.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create coupon", zap.Error(err))
		return err
	}
	return nil
}

func scanCoupon(scan func(dest ...any) error) (*domain.Coupon, error) {
	var coupon domain.Coupon
	var discountPercent sql.NullFloat64
	var discountAmount sql.NullFloat64
	var maxUses sql.NullInt64
	var expiresAt sql.NullTime

	err := scan(
		&coupon.ID,
		&coupon.Code,
		&discountPercent,
		&discountAmount,
		&coupon.MinPurchase,
		&maxUses,
		&coupon.UsedCount,
		&expiresAt,
		&coupon.Active,
		&coupon.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if discountPercent.Valid {
		coupon.DiscountPercent = &discountPercent.Float64
	}
	if discountAmount.Valid {
		coupon.DiscountAmount = &discountAmount.Float64
	}
	if maxUses.Valid {
		uses := int(maxUses.Int64)
		coupon.MaxUses = &uses
	}
	if expiresAt.Valid {
		coupon.ExpiresAt = &expiresAt.Time
	}
	return &coupon, nil
}

func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE id = $1`, id)
	coupon, err := scanCoupon(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "coupon", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get coupon", zap.Error(err))
		return nil, err
	}
	return coupon, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code)
	coupon, err := scanCoupon(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "coupon", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to get coupon by code", zap.Error(err))
		return nil, err
	}
	return coupon, nil
}

func (r *couponRepository) GetActiveByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+couponColumns+` FROM coupons WHERE code = $1 AND active = true`, code)
	coupon, err := scanCoupon(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "coupon", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to get active coupon", zap.Error(err))
		return nil, err
	}
	return coupon, nil
}

func (r *couponRepository) IncrementUsedCount(ctx context.Context, code string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET used_count = used_count + 1 WHERE code = $1`, code)
	if err != nil {
		r.logger.Error("Failed to increment coupon usage", zap.Error(err))
		return err
	}
	return nil
}

func (r *couponRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE coupons SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		r.logger.Error("Failed to toggle coupon", zap.Error(err))
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &errors.ErrNotFound{Resource: "coupon", ID: id.String()}
	}
	return nil
}

func (r *couponRepository) List(ctx context.Context) ([]*domain.Coupon, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var coupons []*domain.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows.Scan)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, coupon)
	}
	return coupons, rows.Err()
}
