package usecase

import (
	"context"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

// ProductUseCase covers catalog CRUD with pagination and filtering.
type ProductUseCase struct {
	productRepo outbound.ProductRepository
	logger      logger.Logger
}

func NewProductUseCase(productRepo outbound.ProductRepository, log logger.Logger) inbound.ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		logger:      log,
	}
}

func (uc *ProductUseCase) List(ctx context.Context, req inbound.ListProductsRequest) (*inbound.ProductListResponse, error) {
	products, total, err := uc.productRepo.FindAll(ctx, req.Skip, req.Limit, req.Filters)
	if err != nil {
		return nil, err
	}
	return &inbound.ProductListResponse{
		Products: products,
		Total:    total,
		Skip:     req.Skip,
		Limit:    req.Limit,
	}, nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*entity.Product, error) {
	return uc.productRepo.FindByID(ctx, id)
}

func (uc *ProductUseCase) Create(ctx context.Context, req inbound.CreateProductRequest) (*entity.Product, error) {
	product := entity.NewProduct(req.Name, req.Description, req.Price, req.Stock, req.Category, req.Brand, req.SKU)
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.logger.Info(ctx, "product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})
	return product, nil
}

func (uc *ProductUseCase) Update(ctx context.Context, id int64, req inbound.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.productRepo.SetActive(ctx, id, false)
}

func (uc *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.productRepo.Categories(ctx)
}

func (uc *ProductUseCase) Brands(ctx context.Context) ([]string, error) {
	return uc.productRepo.Brands(ctx)
}
