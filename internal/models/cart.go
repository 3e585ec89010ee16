package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one customizable line in a customer's cart. Kilo and Pieces are
// both optional; whichever is set decides how the unit price resolves against
// the subcategory's pricing. A line flagged IsOrdered has been snapshotted
// into an order and no longer shows up in the active cart.
type CartItem struct {
	ID                    uuid.UUID    `json:"id"`
	UserID                uuid.UUID    `json:"user_id"`
	ProductID             int64        `json:"product_id"`
	SubcategoryID         int64        `json:"subcategory_id"`
	Quantity              int          `json:"quantity"`
	Kilo                  *float64     `json:"kilo,omitempty"`
	Pieces                *int         `json:"pieces,omitempty"`
	CustomText            string       `json:"custom_text,omitempty"`
	AdditionalDescription string       `json:"additional_description,omitempty"`
	IsOrdered             bool         `json:"is_ordered"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
	Product               *Product     `json:"product,omitempty"`
	Subcategory           *Subcategory `json:"subcategory,omitempty"`
	UnitPrice             float64      `json:"unit_price"`
}

type AddCartItemRequest struct {
	ProductID             int64    `json:"product_id" validate:"required"`
	Quantity              int      `json:"quantity" validate:"required,min=1"`
	Kilo                  *float64 `json:"kilo,omitempty" validate:"omitempty,gt=0"`
	Pieces                *int     `json:"pieces,omitempty" validate:"omitempty,min=1"`
	CustomText            string   `json:"custom_text,omitempty" validate:"omitempty,max=200"`
	AdditionalDescription string   `json:"additional_description,omitempty" validate:"omitempty,max=500"`
}

type UpdateCartItemRequest struct {
	Quantity              *int     `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Kilo                  *float64 `json:"kilo,omitempty" validate:"omitempty,gt=0"`
	Pieces                *int     `json:"pieces,omitempty" validate:"omitempty,min=1"`
	CustomText            *string  `json:"custom_text,omitempty" validate:"omitempty,max=200"`
	AdditionalDescription *string  `json:"additional_description,omitempty" validate:"omitempty,max=500"`
}

type CartResponse struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}
