package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem prices are integer minor-currency units. The price is only
// authoritative at order-creation time; order lines keep their own copy.
type MenuItem struct {
	ID              primitive.ObjectID `bson:"_id"`
	Menu_item_id    string             `json:"menu_item_id"`
	Organization_id string             `json:"organization_id"`
	Category        *string            `json:"category" validate:"required,min=2,max=100"`
	Name            *string            `json:"name" validate:"required,min=2,max=100"`
	Price           *int64             `json:"price" validate:"required,min=0"`
	Is_active       *bool              `json:"is_active"`
	Created_at      time.Time          `json:"created_at"`
	Updated_at      time.Time          `json:"updated_at"`
}
