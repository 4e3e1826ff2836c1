package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
)

const productColumns = "id, name, description, price, stock, category, brand, sku, is_active, created_at, updated_at"

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) outbound.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, description, price, stock, category, brand, sku, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		product.Name,
		nullableString(product.Description),
		product.Price,
		product.Stock,
		nullableString(product.Category),
		nullableString(product.Brand),
		nullableString(product.SKU),
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		if isSKUConflict(err) {
			return apperror.ErrSKUTaken
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    category = $6, brand = $7, sku = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		nullableString(product.Description),
		product.Price,
		product.Stock,
		nullableString(product.Category),
		nullableString(product.Brand),
		nullableString(product.SKU),
		product.IsActive,
		time.Now(),
	)
	if err != nil {
		if isSKUConflict(err) {
			return apperror.ErrSKUTaken
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE products SET is_active = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, active, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set product active flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.ErrProductNotFound
	}
	return nil
}

func (r *productRepository) FindAll(ctx context.Context, offset, limit int, filters outbound.ProductFilters) ([]*entity.Product, int, error) {
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filters.IsActive != nil {
		whereClause += fmt.Sprintf(" AND is_active = $%d", argIndex)
		args = append(args, *filters.IsActive)
		argIndex++
	}

	if filters.Search != "" {
		whereClause += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+filters.Search+"%")
		argIndex++
	}

	if filters.Category != "" {
		whereClause += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filters.Category)
		argIndex++
	}

	if filters.Brand != "" {
		whereClause += fmt.Sprintf(" AND brand = $%d", argIndex)
		args = append(args, filters.Brand)
		argIndex++
	}

	if filters.MinPrice != nil {
		whereClause += fmt.Sprintf(" AND price >= $%d", argIndex)
		args = append(args, *filters.MinPrice)
		argIndex++
	}

	if filters.MaxPrice != nil {
		whereClause += fmt.Sprintf(" AND price <= $%d", argIndex)
		args = append(args, *filters.MaxPrice)
		argIndex++
	}

	if filters.InStock {
		whereClause += " AND stock > 0"
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, orderBy(filters.SortBy, filters.Order), argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, total, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category FROM products
		WHERE category IS NOT NULL AND is_active = TRUE
		ORDER BY category
	`
	return r.queryStrings(ctx, query)
}

func (r *productRepository) Brands(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT brand FROM products
		WHERE brand IS NOT NULL AND is_active = TRUE
		ORDER BY brand
	`
	return r.queryStrings(ctx, query)
}

func (r *productRepository) queryStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate values: %w", err)
	}
	return values, nil
}

// orderBy whitelists sortable columns; anything unknown falls back to
// creation time, matching the listing default.
func orderBy(sortBy, order string) string {
	column := "created_at"
	switch sortBy {
	case "name":
		column = "name"
	case "price":
		column = "price"
	}

	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var product entity.Product
	var description, category, brand, sku sql.NullString

	err := row.Scan(
		&product.ID,
		&product.Name,
		&description,
		&product.Price,
		&product.Stock,
		&category,
		&brand,
		&sku,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	product.Description = description.String
	product.Category = category.String
	product.Brand = brand.String
	product.SKU = sku.String
	return &product, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isSKUConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
