package entity

import (
	"time"
)

// Product is a catalog item managed by admins and browsed publicly.
// SKU is optional but unique when present. Deletion is a soft delete.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProduct(name, description string, price float64, stock int, category, brand, sku string) *Product {
	now := time.Now()
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Category:    category,
		Brand:       brand,
		SKU:         sku,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
