package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mercato/mercato/application/port/inbound"
	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
)

type mockProductRepository struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*entity.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	for _, existing := range m.products {
		if product.SKU != "" && existing.SKU == product.SKU {
			return apperror.ErrSKUTaken
		}
	}
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	if product, exists := m.products[id]; exists {
		copied := *product
		return &copied, nil
	}
	return nil, apperror.ErrProductNotFound
}

func (m *mockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return apperror.ErrProductNotFound
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) SetActive(ctx context.Context, id int64, active bool) error {
	product, exists := m.products[id]
	if !exists {
		return apperror.ErrProductNotFound
	}
	product.IsActive = active
	return nil
}

func (m *mockProductRepository) FindAll(ctx context.Context, offset, limit int, filters outbound.ProductFilters) ([]*entity.Product, int, error) {
	var products []*entity.Product
	for _, product := range m.products {
		if filters.IsActive != nil && product.IsActive != *filters.IsActive {
			continue
		}
		if filters.Category != "" && product.Category != filters.Category {
			continue
		}
		products = append(products, product)
	}
	return products, len(products), nil
}

func (m *mockProductRepository) Categories(ctx context.Context) ([]string, error) {
	return []string{"electronics"}, nil
}

func (m *mockProductRepository) Brands(ctx context.Context) ([]string, error) {
	return []string{"Novatech"}, nil
}

var _ outbound.ProductRepository = (*mockProductRepository)(nil)

func newProductFixture() (inbound.ProductUseCase, *mockProductRepository) {
	repo := newMockProductRepository()
	return NewProductUseCase(repo, &testLogger{}), repo
}

func TestProductUseCaseCreate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductFixture()

	product, err := uc.Create(ctx, inbound.CreateProductRequest{
		Name:     "Laptop",
		Price:    999.99,
		Stock:    5,
		Category: "electronics",
		SKU:      "SKU-1",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if product.ID == 0 {
		t.Error("Created product should have an ID")
	}
	if !product.IsActive {
		t.Error("New product should be active")
	}

	_, err = uc.Create(ctx, inbound.CreateProductRequest{Name: "Other", SKU: "SKU-1"})
	if !errors.Is(err, apperror.ErrSKUTaken) {
		t.Errorf("Expected ErrSKUTaken, got %v", err)
	}
}

func TestProductUseCaseUpdate(t *testing.T) {
	ctx := context.Background()
	uc, repo := newProductFixture()

	created, err := uc.Create(ctx, inbound.CreateProductRequest{Name: "Laptop", Price: 999.99, Stock: 5})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	newPrice := 899.00
	updated, err := uc.Update(ctx, created.ID, inbound.UpdateProductRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if updated.Price != 899.00 {
		t.Errorf("Expected price 899.00, got %f", updated.Price)
	}
	if updated.Name != "Laptop" {
		t.Error("Unset fields should be left untouched")
	}
	if repo.products[created.ID].Price != 899.00 {
		t.Error("Price change should be persisted")
	}

	if _, err := uc.Update(ctx, 9999, inbound.UpdateProductRequest{}); !errors.Is(err, apperror.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestProductUseCaseDelete(t *testing.T) {
	ctx := context.Background()
	uc, repo := newProductFixture()

	created, err := uc.Create(ctx, inbound.CreateProductRequest{Name: "Laptop"})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}

	if err := uc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	stored, exists := repo.products[created.ID]
	if !exists {
		t.Fatal("Soft delete should keep the row")
	}
	if stored.IsActive {
		t.Error("Deleted product should be inactive")
	}

	if err := uc.Delete(ctx, 9999); !errors.Is(err, apperror.ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestProductUseCaseListFilters(t *testing.T) {
	ctx := context.Background()
	uc, _ := newProductFixture()

	for _, req := range []inbound.CreateProductRequest{
		{Name: "Laptop", Category: "electronics"},
		{Name: "Skillet", Category: "kitchen"},
	} {
		if _, err := uc.Create(ctx, req); err != nil {
			t.Fatalf("Create should succeed: %v", err)
		}
	}

	resp, err := uc.List(ctx, inbound.ListProductsRequest{
		Limit:   20,
		Filters: outbound.ProductFilters{Category: "electronics"},
	})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("Expected total 1, got %d", resp.Total)
	}
	if len(resp.Products) != 1 || resp.Products[0].Name != "Laptop" {
		t.Error("Category filter should select only the laptop")
	}
}
