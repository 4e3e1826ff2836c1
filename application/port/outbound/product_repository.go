package outbound

import (
	"context"

	"github.com/mercato/mercato/domain/entity"
)

// ProductFilters narrows product listings. Pointer fields distinguish
// "unset" from a zero value.
type ProductFilters struct {
	Search   string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
	IsActive *bool
	SortBy   string // name, price or created_at
	Order    string // asc or desc
}

// ProductRepository is the catalog storage contract. Implementations map
// SKU uniqueness violations to apperror.ErrSKUTaken and missing rows to
// apperror.ErrProductNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SetActive(ctx context.Context, id int64, active bool) error
	FindAll(ctx context.Context, offset, limit int, filters ProductFilters) ([]*entity.Product, int, error)
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
}
