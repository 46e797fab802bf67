package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/therohitbiruli/dinex-menu/config"
	"github.com/therohitbiruli/dinex-menu/models"
)

var restaurantCollection *mongo.Collection = database.OpenCollection(database.Client, "restaurants")

func GetRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]

	var restaurant models.Restaurant
	err := restaurantCollection.FindOne(ctx, bson.M{"slug": slug}).Decode(&restaurant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		http.Error(w, `{"success": false, "message": "Restaurant not found"}`, http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving restaurant"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Restaurant retrieved successfully",
		"data":    restaurant,
	})
}

// UpdateRestaurant edits the name/description; the document is created
// on first save so a fresh deployment needs no seeding step
func UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]

	var payload struct {
		Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if validationErr := validate.Struct(payload); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	updateObj := bson.D{}
	if payload.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "name", Value: *payload.Name})
	}
	if payload.Description != nil {
		updateObj = append(updateObj, bson.E{Key: "description", Value: *payload.Description})
	}
	if len(updateObj) == 0 {
		http.Error(w, `{"success": false, "message": "Nothing to update"}`, http.StatusBadRequest)
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	_, err := restaurantCollection.UpdateOne(ctx,
		bson.M{"slug": slug},
		bson.D{
			{Key: "$set", Value: updateObj},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "created_at", Value: time.Now()},
			}},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to update restaurant"}`, http.StatusInternalServerError)
		return
	}

	var updated models.Restaurant
	if err := restaurantCollection.FindOne(ctx, bson.M{"slug": slug}).Decode(&updated); err != nil {
		http.Error(w, `{"success": false, "message": "Error fetching updated restaurant"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Restaurant updated successfully",
		"data":    updated,
	})
}
