package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/mercato/mercato/domain/apperror"
	"github.com/mercato/mercato/domain/entity"
	"github.com/mercato/mercato/infrastructure/config"
	"github.com/mercato/mercato/infrastructure/persistence/postgres"
)

// Seeds the catalog with demo products for local development.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	productRepo := postgres.NewProductRepository(db)

	products := []*entity.Product{
		entity.NewProduct("Laptop Pro 15", "15-inch developer laptop, 32GB RAM", 1899.00, 12, "electronics", "Novatech", "NT-LP15-32"),
		entity.NewProduct("Mechanical Keyboard", "Tenkeyless, hot-swappable switches", 129.90, 40, "electronics", "Keybird", "KB-TKL-01"),
		entity.NewProduct("Espresso Grinder", "Conical burr grinder, 40 settings", 249.50, 8, "kitchen", "Brewista", "BR-GR-40"),
		entity.NewProduct("Trail Running Shoes", "Lightweight, aggressive lugs", 139.00, 25, "sports", "Ridgeline", "RL-TR-44"),
		entity.NewProduct("Noise Cancelling Headphones", "Over-ear, 30h battery", 299.00, 0, "electronics", "Novatech", "NT-NC-30"),
		entity.NewProduct("Cast Iron Skillet", "Pre-seasoned, 26cm", 45.00, 60, "kitchen", "Ferrum", "FE-SK-26"),
	}

	created := 0
	for _, p := range products {
		if err := productRepo.Create(ctx, p); err != nil {
			if errors.Is(err, apperror.ErrSKUTaken) {
				continue
			}
			log.Fatalf("Failed to seed product %s: %v", p.SKU, err)
		}
		created++
	}

	fmt.Printf("Seeded %d of %d products\n", created, len(products))
}
