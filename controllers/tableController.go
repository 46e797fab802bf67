package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/therohitbiruli/dinex-menu/config"
	"github.com/therohitbiruli/dinex-menu/models"
	"github.com/therohitbiruli/dinex-menu/services"
)

var tableCollection *mongo.Collection = database.OpenCollection(database.Client, "tables")

func GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	result, err := tableCollection.Find(ctx, bson.M{})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error occurred while listing tables"}`, http.StatusInternalServerError)
		return
	}

	allTables := []models.Table{}
	if err = result.All(ctx, &allTables); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding table data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Tables retrieved successfully",
		"data":    allTables,
	})
}

// GetTablesByStatus lists tables currently available or ordering
func GetTablesByStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	status := mux.Vars(r)["status"]
	if status != services.TableStatusAvailable && status != services.TableStatusOrdering {
		http.Error(w, `{"success": false, "message": "Unknown table status"}`, http.StatusBadRequest)
		return
	}

	result, err := tableCollection.Find(ctx, bson.M{"status": status})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error occurred while listing tables"}`, http.StatusInternalServerError)
		return
	}

	tables := []models.Table{}
	if err = result.All(ctx, &tables); err != nil {
		http.Error(w, `{"success": false, "message": "Error decoding table data"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Tables retrieved successfully",
		"data":    tables,
	})
}

func GetTable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	tableId := mux.Vars(r)["table_id"]
	var table models.Table

	err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&table)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Table not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Table retrieved successfully",
		"data":    table,
	})
}

func CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var table models.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if validationErr := validate.Struct(table); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	// Check if the table number already exists
	count, err := tableCollection.CountDocuments(ctx, bson.M{"table_number": table.Table_number})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error checking table number"}`, http.StatusInternalServerError)
		return
	}
	if count > 0 {
		http.Error(w, `{"success": false, "message": "Table number already exists"}`, http.StatusConflict)
		return
	}

	// The table id doubles as the QR link parameter, so it stays the
	// human-readable table number rather than an object id.
	table.ID = primitive.NewObjectID()
	table.Table_id = strconv.Itoa(*table.Table_number)
	table.Status = services.TableStatusAvailable
	table.Last_order_id = ""
	table.Created_at = time.Now()
	table.Updated_at = time.Now()

	_, insertErr := tableCollection.InsertOne(ctx, table)
	if insertErr != nil {
		http.Error(w, `{"success": false, "message": "Table was not created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Table created successfully",
		"data":    table,
	})
}

func UpdateTable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	tableId := mux.Vars(r)["table_id"]
	var table models.Table

	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request payload"}`, http.StatusBadRequest)
		return
	}

	var existingTable models.Table
	err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&existingTable)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Table not found"}`, http.StatusNotFound)
		return
	}

	// Only guest count is staff-editable here; status changes go
	// through the order lifecycle.
	updateObj := bson.D{}
	if table.Number_of_guests != nil {
		updateObj = append(updateObj, bson.E{Key: "number_of_guests", Value: table.Number_of_guests})
	}
	if len(updateObj) == 0 {
		http.Error(w, `{"success": false, "message": "Nothing to update"}`, http.StatusBadRequest)
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	_, err = tableCollection.UpdateOne(ctx,
		bson.M{"table_id": tableId},
		bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to update table"}`, http.StatusInternalServerError)
		return
	}

	var updatedTable models.Table
	err = tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&updatedTable)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error fetching updated table"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Table updated successfully",
		"data":    updatedTable,
	})
}

func DeleteTable(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	tableId := mux.Vars(r)["table_id"]

	var existingTable models.Table
	err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&existingTable)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Table not found"}`, http.StatusNotFound)
		return
	}
	if existingTable.Status == services.TableStatusOrdering {
		http.Error(w, `{"success": false, "message": "Table has an active order"}`, http.StatusConflict)
		return
	}

	_, err = tableCollection.DeleteOne(ctx, bson.M{"table_id": tableId})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting table"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Table deleted successfully",
	})
}

// GetTableMenuURL returns the QR-encoded customer menu link
func GetTableMenuURL(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	tableId := mux.Vars(r)["table_id"]

	var table models.Table
	if err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&table); err != nil {
		http.Error(w, `{"success": false, "message": "Table not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu URL generated successfully",
		"data": map[string]interface{}{
			"table_id": table.Table_id,
			"menu_url": services.CustomerMenuURL(services.MenuBaseURL(), table.Table_id),
		},
	})
}

// TableQRHandler serves the scannable QR image for a table's menu link
func TableQRHandler(qr services.QRGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		tableId := mux.Vars(r)["table_id"]

		var table models.Table
		if err := tableCollection.FindOne(ctx, bson.M{"table_id": tableId}).Decode(&table); err != nil {
			http.Error(w, `{"success": false, "message": "Table not found"}`, http.StatusNotFound)
			return
		}

		size, err := strconv.Atoi(r.URL.Query().Get("size"))
		if err != nil || size < 1 {
			size = services.DefaultQRSize
		}

		menuURL := services.CustomerMenuURL(services.MenuBaseURL(), table.Table_id)
		img, contentType, err := qr.Render(ctx, menuURL, size)
		if err != nil {
			http.Error(w, `{"success": false, "message": "QR code could not be generated"}`, http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Write(img)
	}
}
