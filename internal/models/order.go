package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusCompleted OrderStatus = "completed"
)

// OrderItem is an immutable snapshot of a cart line at checkout time. Names
// and the resolved unit price are copied so later catalog edits never change
// what the customer agreed to pay.
type OrderItem struct {
	ID              uuid.UUID `json:"id"`
	OrderID         uuid.UUID `json:"order_id"`
	ProductID       int64     `json:"product_id"`
	ProductName     string    `json:"product_name"`
	SubcategoryID   int64     `json:"subcategory_id"`
	SubcategoryName string    `json:"subcategory_name"`
	Quantity        int       `json:"quantity"`
	Kilo            *float64  `json:"kilo,omitempty"`
	Pieces          *int      `json:"pieces,omitempty"`
	CustomText      string    `json:"custom_text,omitempty"`
	UnitPrice       float64   `json:"unit_price"`
	LineTotal       float64   `json:"line_total"`
	CreatedAt       time.Time `json:"created_at"`
}

type Order struct {
	ID               uuid.UUID   `json:"id"`
	CustomerID       uuid.UUID   `json:"customer_id"`
	Status           OrderStatus `json:"status"`
	PhoneNumber      string      `json:"phone_number"`
	DeliveryTime     time.Time   `json:"delivery_time"`
	TotalPrice       float64     `json:"total_price"`
	UpfrontPaid      float64     `json:"upfront_paid"`
	PaymentProof     string      `json:"payment_proof"`
	RejectionComment string      `json:"rejection_comment,omitempty"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// CheckoutRequest is assembled from the multipart checkout form; the payment
// proof file itself is handled by the uploads store before the service runs.
type CheckoutRequest struct {
	CartItemIDs  []uuid.UUID `json:"cart_item_ids" validate:"required,min=1"`
	PhoneNumber  string      `json:"phone_number" validate:"required,min=7,max=20"`
	DeliveryTime time.Time   `json:"delivery_time" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status           OrderStatus `json:"status" validate:"required,oneof=accepted rejected completed"`
	RejectionComment string      `json:"rejection_comment,omitempty" validate:"omitempty,max=500"`
}

type OrderFilter struct {
	Status   *OrderStatus
	Page     int
	PageSize int
}
