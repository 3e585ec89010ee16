package models

import "time"

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Subcategory carries the pricing for everything sold under it. Either a fixed
// per-piece price or a weight-keyed price table ("1kg" -> price) is active; a
// non-empty table takes precedence over the fixed price.
type Subcategory struct {
	ID             int64              `json:"id"`
	CategoryID     int64              `json:"category_id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	ImageURL       string             `json:"image_url,omitempty"`
	Price          *float64           `json:"price,omitempty"`
	KiloToPriceMap map[string]float64 `json:"kilo_to_price_map,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	Category       *Category          `json:"category,omitempty"`
}

type Product struct {
	ID            int64        `json:"id"`
	SubcategoryID int64        `json:"subcategory_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Images        []string     `json:"images"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Subcategory   *Subcategory `json:"subcategory,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type CreateSubcategoryRequest struct {
	CategoryID     int64              `json:"category_id" validate:"required"`
	Name           string             `json:"name" validate:"required,min=2,max=100"`
	Description    string             `json:"description,omitempty" validate:"omitempty,max=500"`
	ImageURL       string             `json:"image_url,omitempty"`
	Price          *float64           `json:"price,omitempty" validate:"omitempty,gt=0"`
	KiloToPriceMap map[string]float64 `json:"kilo_to_price_map,omitempty" validate:"omitempty,dive,gt=0"`
}

type UpdateSubcategoryRequest struct {
	CategoryID     *int64             `json:"category_id,omitempty"`
	Name           *string            `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description    *string            `json:"description,omitempty" validate:"omitempty,max=500"`
	ImageURL       *string            `json:"image_url,omitempty"`
	Price          *float64           `json:"price,omitempty" validate:"omitempty,gt=0"`
	KiloToPriceMap map[string]float64 `json:"kilo_to_price_map,omitempty" validate:"omitempty,dive,gt=0"`
}

type CreateProductRequest struct {
	SubcategoryID int64  `json:"subcategory_id" validate:"required"`
	Name          string `json:"name" validate:"required,min=2,max=200"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type UpdateProductRequest struct {
	SubcategoryID *int64  `json:"subcategory_id,omitempty"`
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string `json:"description,omitempty"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

type ProductFilter struct {
	SubcategoryID *int64
	Search        string
	Page          int
	PageSize      int
}
