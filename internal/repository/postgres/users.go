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

type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, email, password_hash, name, phone, country_code, currency,
	ip_address, points, tier, admin_rating, created_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, phone, country_code, currency,
			ip_address, points, tier, admin_rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Tier == "" {
		user.Tier = domain.TierBronze
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.CountryCode,
		user.Currency,
		user.IPAddress,
		user.Points,
		user.Tier,
		user.AdminRating,
		user.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var ipAddress sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Phone,
		&user.CountryCode,
		&user.Currency,
		&ipAddress,
		&user.Points,
		&user.Tier,
		&user.AdminRating,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ipAddress.Valid {
		user.IPAddress = &ipAddress.String
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := r.scanUser(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := r.scanUser(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user", ID: email}
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = $1`, name)
	user, err := r.scanUser(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get user by name", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	user, err := r.scanUser(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user", ID: phone}
	}
	if err != nil {
		r.logger.Error("Failed to get user by phone", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByNameAndPhone(ctx context.Context, name, phone string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE name = $1 AND phone = $2`, name, phone)
	user, err := r.scanUser(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get user by name and phone", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $2, name = $3, phone = $4, country_code = $5, currency = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Phone, user.CountryCode, user.Currency)
	if err != nil {
		r.logger.Error("Failed to update user", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		r.logger.Error("Failed to update user password", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) UpdatePointsAndTier(ctx context.Context, id uuid.UUID, points int, tier domain.Tier) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET points = $2, tier = $3 WHERE id = $1`, id, points, tier)
	if err != nil {
		r.logger.Error("Failed to update user points", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) UpdateAdminRating(ctx context.Context, id uuid.UUID, rating int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET admin_rating = $2 WHERE id = $1`, id, rating)
	if err != nil {
		r.logger.Error("Failed to update admin rating", zap.Error(err))
		return err
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		var ipAddress sql.NullString
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.PasswordHash,
			&user.Name,
			&user.Phone,
			&user.CountryCode,
			&user.Currency,
			&ipAddress,
			&user.Points,
			&user.Tier,
			&user.AdminRating,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		if ipAddress.Valid {
			user.IPAddress = &ipAddress.String
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
