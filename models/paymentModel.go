package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records are written elsewhere; the order core only reads them to
// derive a per-order paid flag for the public listing.
type Payment struct {
	ID         primitive.ObjectID `bson:"_id"`
	Payment_id string             `json:"payment_id"`
	Order_id   string             `json:"order_id"`
	Method     *string            `json:"method"`
	Status     *string            `json:"status"`
	Created_at time.Time          `json:"created_at"`
	Updated_at time.Time          `json:"updated_at"`
}

const PaymentStatusPaid = "PAID"
