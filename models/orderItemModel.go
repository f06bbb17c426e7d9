package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a frozen receipt line. Name, unit price and quantity are
// snapshotted at creation and never follow later menu edits; Menu_item_id
// goes nil if the source menu item is deleted.
type OrderItem struct {
	ID            primitive.ObjectID `bson:"_id"`
	Order_item_id string             `json:"order_item_id"`
	Order_id      string             `json:"order_id"`
	Menu_item_id  *string            `json:"menu_item_id"`
	Name          string             `json:"name"`
	Unit_price    int64              `json:"unit_price"`
	Quantity      int64              `json:"quantity"`
	Total         int64              `json:"total"`
	Notes         *string            `json:"notes"`
	Created_at    time.Time          `json:"created_at"`
}
