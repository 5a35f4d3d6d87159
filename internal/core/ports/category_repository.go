package ports

import (
	"context"

	"github.com/quickservice/marketplace-api/internal/core/domain"
)

// CategoryRepository reads the static category reference data.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
}

// CategoryService exposes the read-only category listing.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
}
