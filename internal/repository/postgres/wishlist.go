package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type wishlistRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *sql.DB, logger *zap.Logger) *wishlistRepository {
	return &wishlistRepository{db: db, logger: logger}
}

func (r *wishlistRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist (id, user_id, product_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, uuid.New(), userID, productID)
	if err != nil {
		r.logger.Error("Failed to add wishlist item", zap.Error(err))
		return err
	}
	return nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error("Failed to remove wishlist item", zap.Error(err))
		return err
	}
	return nil
}

func (r *wishlistRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM wishlist WHERE user_id = $1 AND product_id = $2)`,
		userID, productID).Scan(&exists)
	return exists, err
}

func (r *wishlistRepository) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id FROM wishlist WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		r.logger.Error("Failed to list wishlist", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type recentlyViewedRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRecentlyViewedRepository creates a new recently-viewed repository
func NewRecentlyViewedRepository(db *sql.DB, logger *zap.Logger) *recentlyViewedRepository {
	return &recentlyViewedRepository{db: db, logger: logger}
}

// Record stores a view, replacing an earlier view of the same product and
// trimming the user's history to keep entries.
func (r *recentlyViewedRepository) Record(ctx context.Context, userID, productID uuid.UUID, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM recently_viewed WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error("Failed to clear earlier view", zap.Error(err))
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO recently_viewed (id, user_id, product_id) VALUES ($1, $2, $3)`,
		uuid.New(), userID, productID)
	if err != nil {
		r.logger.Error("Failed to record view", zap.Error(err))
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		DELETE FROM recently_viewed
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM recently_viewed
			WHERE user_id = $1
			ORDER BY viewed_at DESC
			LIMIT $2
		)
	`, userID, keep)
	if err != nil {
		r.logger.Error("Failed to trim view history", zap.Error(err))
		return err
	}
	return nil
}

func (r *recentlyViewedRepository) ListProductIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id FROM recently_viewed
		WHERE user_id = $1
		ORDER BY viewed_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		r.logger.Error("Failed to list recently viewed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
