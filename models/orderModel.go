package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order items are snapshots taken at placement time, never references
// into the live catalog.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Order_id   string             `bson:"order_id" json:"order_id"`
	Table_id   string             `bson:"table_id" json:"table_id" validate:"required"`
	Items      []MenuItem         `bson:"items" json:"items" validate:"required,min=1"`
	Status     string             `bson:"status" json:"status"` // new | accepted | served | rejected
	Created_at time.Time          `bson:"created_at" json:"created_at"`
	Updated_at time.Time          `bson:"updated_at" json:"updated_at"`
}
