package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkozyrev/sneakershop/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

type ProductRepository struct {
	db *Connection
}

func NewProductRepository(db *Connection) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

const productColumns = `id, title, price_cents, image_url, image_file, created_at, deleted_at`

func (r *ProductRepository) Create(ctx context.Context, product model.Product) (model.Product, error) {
	query := `INSERT INTO products (id, title, price_cents, image_url, image_file)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + productColumns

	var saved model.Product
	err := r.db.QueryRow(ctx, query,
		product.ID, product.Title, product.PriceCents, product.ImageURL, product.ImageFile,
	).Scan(
		&saved.ID, &saved.Title, &saved.PriceCents, &saved.ImageURL, &saved.ImageFile,
		&saved.CreatedAt, &saved.DeletedAt,
	)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return saved, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`

	var product model.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.Title, &product.PriceCents, &product.ImageURL, &product.ImageFile,
		&product.CreatedAt, &product.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = model.DefaultPageSize
	}

	query := `SELECT ` + productColumns + `
			  FROM products
			  WHERE deleted_at IS NULL AND ($1 = '' OR title ILIKE '%' || $1 || '%')
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, filter.Query, filter.Offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var product model.Product
		if err := rows.Scan(
			&product.ID, &product.Title, &product.PriceCents, &product.ImageURL, &product.ImageFile,
			&product.CreatedAt, &product.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE products SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
