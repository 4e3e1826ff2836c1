package inbound

import (
	"context"

	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/entity"
)

type ListProductsRequest struct {
	Skip    int
	Limit   int
	Filters outbound.ProductFilters
}

type ProductListResponse struct {
	Products []*entity.Product `json:"products"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	SKU         string  `json:"sku"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	SKU         *string  `json:"sku"`
	IsActive    *bool    `json:"is_active"`
}

type ProductUseCase interface {
	List(ctx context.Context, req ListProductsRequest) (*ProductListResponse, error)
	Get(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, req CreateProductRequest) (*entity.Product, error)
	Update(ctx context.Context, id int64, req UpdateProductRequest) (*entity.Product, error)
	// Delete soft-deletes the product.
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
}
