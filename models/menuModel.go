package models

import (
	"time"
)

// MenuItem is a single dish on the menu. Orders embed full copies of
// these, so later catalog edits never change an already placed order.
type MenuItem struct {
	Item_id     string   `bson:"item_id" json:"item_id"`
	Name        string   `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Category    string   `bson:"category" json:"category"`
	Price       *float64 `bson:"price" json:"price" validate:"required,gte=0"`
	Description string   `bson:"description" json:"description"`
	ImageURL    string   `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Popular     bool     `bson:"popular" json:"popular"`
	IsVeg       bool     `bson:"is_veg" json:"is_veg"`
	ChefSpecial bool     `bson:"chef_special" json:"chef_special"`
	SpiceLevel  int      `bson:"spice_level" json:"spice_level" validate:"gte=0,lte=5"`
	ServingSize string   `bson:"serving_size,omitempty" json:"serving_size,omitempty"`
}

// MenuDocument is the per-restaurant menu: all items plus the ordered
// category list that drives display grouping.
type MenuDocument struct {
	Slug       string     `bson:"slug" json:"slug"`
	Items      []MenuItem `bson:"items" json:"items"`
	Categories []string   `bson:"categories" json:"categories"`
	Updated_at time.Time  `bson:"updated_at" json:"updated_at"`
}
