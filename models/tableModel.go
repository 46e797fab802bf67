package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Table struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Table_id         string             `bson:"table_id" json:"table_id"`
	Table_number     *int               `bson:"table_number" json:"table_number" validate:"required,gte=1"`
	Number_of_guests *int               `bson:"number_of_guests" json:"number_of_guests"`
	Status           string             `bson:"status" json:"status"` // available | ordering
	Last_order_id    string             `bson:"last_order_id,omitempty" json:"last_order_id,omitempty"`
	Created_at       time.Time          `bson:"created_at" json:"created_at"`
	Updated_at       time.Time          `bson:"updated_at" json:"updated_at"`
}
