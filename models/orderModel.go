package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order carries a per-organization sequential number, not a global one: two
// organizations may both have an order #1. Total is the sum of its item
// lines, computed once at creation and never touched by status transitions.
type Order struct {
	ID              primitive.ObjectID `bson:"_id"`
	Order_id        string             `json:"order_id"`
	Organization_id string             `json:"organization_id"`
	Order_number    int64              `json:"order_number"`
	Table_id        *string            `json:"table_id"`
	Status          OrderStatus        `json:"status"`
	Total           int64              `json:"total"`
	Notes           *string            `json:"notes" validate:"omitempty,max=300"`
	Created_by      *string            `json:"created_by"`
	Created_at      time.Time          `json:"created_at"`
	Updated_at      time.Time          `json:"updated_at"`
}

type OrderItemInput struct {
	Menu_item_id string  `json:"menu_item_id" validate:"required"`
	Quantity     int64   `json:"quantity" validate:"required,min=1,max=20"`
	Notes        *string `json:"notes" validate:"omitempty,max=200"`
}

// CreateOrderRequest is the intake payload shared by the staff and public
// channels. Auto_accept is only honored for staff callers.
type CreateOrderRequest struct {
	Table_id    *string          `json:"table_id"`
	Notes       *string          `json:"notes" validate:"omitempty,max=300"`
	Items       []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	Auto_accept bool             `json:"auto_accept"`
}

// FormatAmount renders an integer minor-currency amount as a decimal-major
// string, e.g. 2200 -> "22.00".
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
