package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/obapluto-ob/wegatsauceefashionhub/internal/domain"
	"github.com/obapluto-ob/wegatsauceefashionhub/internal/repository"
	"github.com/obapluto-ob/wegatsauceefashionhub/pkg/errors"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{db: db, logger: logger}
}

const productColumns = `id, name, slug, price, description, image_urls, video_urls,
	category, gender, stock, sizes, colors, is_trending, flash_sale_price, flash_sale_end, created_at`

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		return nil, nil
	}
	return json.Marshal(values)
}

func unmarshalStrings(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, price, description, image_urls, video_urls,
			category, gender, stock, sizes, colors, is_trending, flash_sale_price, flash_sale_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	imageJSON, err := marshalStrings(product.ImageURLs)
	if err != nil {
		return err
	}
	videoJSON, err := marshalStrings(product.VideoURLs)
	if err != nil {
		return err
	}
	sizesJSON, err := marshalStrings(product.Sizes)
	if err != nil {
		return err
	}
	colorsJSON, err := marshalStrings(product.Colors)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Price,
		product.Description,
		imageJSON,
		videoJSON,
		product.Category,
		product.Gender,
		product.Stock,
		sizesJSON,
		colorsJSON,
		product.IsTrending,
		product.FlashSalePrice,
		product.FlashSaleEnd,
		product.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}
	return nil
}

func scanProduct(scan func(dest ...any) error) (*domain.Product, error) {
	var product domain.Product
	var imageJSON, videoJSON, sizesJSON, colorsJSON []byte
	var flashSalePrice sql.NullFloat64
	var flashSaleEnd sql.NullTime

	err := scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Price,
		&product.Description,
		&imageJSON,
		&videoJSON,
		&product.Category,
		&product.Gender,
		&product.Stock,
		&sizesJSON,
		&colorsJSON,
		&product.IsTrending,
		&flashSalePrice,
		&flashSaleEnd,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if flashSalePrice.Valid {
		product.FlashSalePrice = &flashSalePrice.Float64
	}
	if flashSaleEnd.Valid {
		product.FlashSaleEnd = &flashSaleEnd.Time
	}
	if err := unmarshalStrings(imageJSON, &product.ImageURLs); err != nil {
		return nil, err
	}
	if err := unmarshalStrings(videoJSON, &product.VideoURLs); err != nil {
		return nil, err
	}
	if err := unmarshalStrings(sizesJSON, &product.Sizes); err != nil {
		return nil, err
	}
	if err := unmarshalStrings(colorsJSON, &product.Colors); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product by ID", zap.Error(err))
		return nil, err
	}
	return product, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	idx := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, filter.Category)
		idx++
	}
	if filter.Gender != "" {
		query += fmt.Sprintf(" AND gender = $%d", idx)
		args = append(args, filter.Gender)
		idx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", idx, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	query += ` ORDER BY created_at DESC`

	return r.queryProducts(ctx, query, args...)
}

func (r *productRepository) ListTrending(ctx context.Context) ([]*domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE is_trending = true ORDER BY created_at DESC`)
}

func (r *productRepository) ListRelated(ctx context.Context, category string, exclude uuid.UUID, limit int) ([]*domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE category = $1 AND id != $2 LIMIT $3`,
		category, exclude, limit)
}

func (r *productRepository) ListLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE stock <= $1 ORDER BY stock ASC`, threshold)
}

func (r *productRepository) SearchByName(ctx context.Context, query string, limit int) ([]*domain.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE name ILIKE $1 LIMIT $2`,
		"%"+query+"%", limit)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, slug = $3, price = $4, description = $5, image_urls = $6, video_urls = $7,
			category = $8, gender = $9, stock = $10, sizes = $11, colors = $12,
			flash_sale_price = $13, flash_sale_end = $14
		WHERE id = $1
	`

	imageJSON, err := marshalStrings(product.ImageURLs)
	if err != nil {
		return err
	}
	videoJSON, err := marshalStrings(product.VideoURLs)
	if err != nil {
		return err
	}
	sizesJSON, err := marshalStrings(product.Sizes)
	if err != nil {
		return err
	}
	colorsJSON, err := marshalStrings(product.Colors)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Slug,
		product.Price,
		product.Description,
		imageJSON,
		videoJSON,
		product.Category,
		product.Gender,
		product.Stock,
		sizesJSON,
		colorsJSON,
		product.FlashSalePrice,
		product.FlashSaleEnd,
	)
	if err != nil {
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepository) SetTrending(ctx context.Context, id uuid.UUID, trending bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_trending = $2 WHERE id = $1`, id, trending)
	if err != nil {
		r.logger.Error("Failed to toggle trending", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
