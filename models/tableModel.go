package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Table is a physical table exposed to guests through its access token. The
// token is the only handle the public ordering channel ever sees; internal
// identifiers stay server-side.
type Table struct {
	ID              primitive.ObjectID `bson:"_id"`
	Table_id        string             `json:"table_id"`
	Organization_id string             `json:"organization_id"`
	Table_number    *int               `json:"table_number" validate:"required,min=1"`
	Access_token    string             `json:"access_token"`
	Is_enabled      *bool              `json:"is_enabled"`
	Created_at      time.Time          `json:"created_at"`
	Updated_at      time.Time          `json:"updated_at"`
}
