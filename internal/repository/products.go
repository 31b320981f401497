// Package repository provides the Postgres-backed product catalog.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// ProductRepository exposes catalog reads.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, filter *models.ProductListFilter) ([]*models.Product, error)
}

// PostgresProductRepository implements ProductRepository using PostgreSQL.
type PostgresProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresProductRepository creates a PostgreSQL product repository.
func NewPostgresProductRepository(db *sql.DB, logger *zap.Logger) *PostgresProductRepository {
	return &PostgresProductRepository{db: db, logger: logger}
}

// GetByID retrieves a product by its identifier.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id, name, description, price_usd, image, sku, category,
		       sizes, colors, in_stock, created_at, updated_at
		FROM products
		WHERE id = $1 AND deleted_at IS NULL
	`

	var product models.Product
	var description sql.NullString
	var sizesJSON, colorsJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&description,
		&product.PriceUSD,
		&product.Image,
		&product.SKU,
		&product.Category,
		&sizesJSON,
		&colorsJSON,
		&product.InStock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to fetch product",
			zap.String("product_id", id), zap.Error(err))
		return nil, err
	}

	product.Description = description.String
	if err := json.Unmarshal(sizesJSON, &product.Sizes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(colorsJSON, &product.Colors); err != nil {
		return nil, err
	}

	return &product, nil
}

// List retrieves catalog entries matching the filter, newest first.
func (r *PostgresProductRepository) List(ctx context.Context, filter *models.ProductListFilter) ([]*models.Product, error) {
	query := `
		SELECT id, name, description, price_usd, image, sku, category,
		       sizes, colors, in_stock, created_at, updated_at
		FROM products
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	argIdx := 1

	if filter.Category != "" {
		query += ` AND category = $` + strconv.Itoa(argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.InStock != nil {
		query += ` AND in_stock = $` + strconv.Itoa(argIdx)
		args = append(args, *filter.InStock)
		argIdx++
	}

	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query += ` LIMIT $` + strconv.Itoa(argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var product models.Product
		var description sql.NullString
		var sizesJSON, colorsJSON []byte

		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&description,
			&product.PriceUSD,
			&product.Image,
			&product.SKU,
			&product.Category,
			&sizesJSON,
			&colorsJSON,
			&product.InStock,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}

		product.Description = description.String
		if err := json.Unmarshal(sizesJSON, &product.Sizes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(colorsJSON, &product.Colors); err != nil {
			return nil, err
		}

		products = append(products, &product)
	}

	return products, rows.Err()
}

