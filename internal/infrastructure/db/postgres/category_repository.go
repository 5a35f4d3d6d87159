package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickservice/marketplace-api/internal/core/domain"
)

// CategoryRepository reads the seeded category reference data.
type CategoryRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

func NewCategoryRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *CategoryRepository {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &CategoryRepository{pool: pool, queryTimeout: queryTimeout}
}

func (r *CategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, icon, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("list categories: %w", err))
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.CreatedAt); err != nil {
			return nil, mapStoreErr(fmt.Errorf("scan category: %w", err))
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreErr(fmt.Errorf("list categories: %w", err))
	}
	return categories, nil
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var c domain.Category
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, icon, description, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Icon, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, mapStoreErr(fmt.Errorf("get category: %w", err))
	}
	return &c, nil
}
