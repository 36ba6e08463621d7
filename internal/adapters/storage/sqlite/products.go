package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
)

const productColumns = `id, name, description, category, price, image_url, created_at, updated_at`

// ProductStore implements ports.ProductRepository.
type ProductStore struct {
	db *sql.DB
}

func NewProductStore(store *Store) *ProductStore {
	return &ProductStore{db: store.db}
}

func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	const q = `
		INSERT INTO products (id, name, description, category, price, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q,
		product.ID,
		product.Name,
		product.Description,
		string(product.Category),
		product.Price,
		product.ImageURL,
		formatTime(product.CreatedAt),
		formatTime(product.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create product %q: %w", product.ID, err)
	}
	return nil
}

func (s *ProductStore) GetByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	q := `
		SELECT ` + productColumns + `
		FROM   products
		WHERE  category = ? AND deleted_at IS NULL
		ORDER  BY name`

	rows, err := s.db.QueryContext(ctx, q, string(category))
	if err != nil {
		return nil, fmt.Errorf("sqlite: products by category %q: %w", category, err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *ProductStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
		SELECT ` + productColumns + `
		FROM   products
		WHERE  id = ? AND deleted_at IS NULL`

	row := s.db.QueryRowContext(ctx, q, id)
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get product %q: %w", id, err)
	}
	return product, nil
}

// GetByIDs returns the found subset only; missing ids are simply absent
// from the result. The order core treats an incomplete mapping as an error.
func (s *ProductStore) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	q := `
		SELECT ` + productColumns + `
		FROM   products
		WHERE  id IN (` + placeholders + `) AND deleted_at IS NULL`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: products by ids: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *ProductStore) Update(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, string(*patch.Category))
	}
	if patch.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *patch.Price)
	}
	if patch.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *patch.ImageURL)
	}
	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(time.Now()), id)

	q := `UPDATE products SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: update product %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: update product %q: %w", id, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("product %q: %w", id, domain.ErrNotFound)
	}

	return s.GetByID(ctx, id)
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	const q = `
		UPDATE products
		SET    deleted_at = ?
		WHERE  id = ? AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, q, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("sqlite: delete product %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete product %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("product %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p                    domain.Product
		category             string
		createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &category, &p.Price, &p.ImageURL, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Category = domain.Category(category)
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate products: %w", err)
	}
	return products, nil
}
