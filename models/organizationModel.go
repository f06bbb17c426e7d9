package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PlanTier string

const (
	PlanFree    PlanTier = "FREE"
	PlanPremium PlanTier = "PREMIUM"
)

type Organization struct {
	ID              primitive.ObjectID `bson:"_id"`
	Organization_id string             `json:"organization_id"`
	Name            *string            `json:"name" validate:"required,min=2,max=100"`
	Plan            PlanTier           `json:"plan" validate:"required,eq=FREE|eq=PREMIUM"`
	Created_at      time.Time          `json:"created_at"`
	Updated_at      time.Time          `json:"updated_at"`
}
