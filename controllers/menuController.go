package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/therohitbiruli/dinex-menu/catalog"
	database "github.com/therohitbiruli/dinex-menu/config"
	"github.com/therohitbiruli/dinex-menu/models"
)

var menuCollection *mongo.Collection = database.OpenCollection(database.Client, "menus")
var validate = validator.New()

func loadMenu(ctx context.Context, slug string) (*models.MenuDocument, error) {
	var menu models.MenuDocument
	err := menuCollection.FindOne(ctx, bson.M{"slug": slug}).Decode(&menu)
	if err == mongo.ErrNoDocuments {
		// A missing menu degrades to an empty catalog.
		return &models.MenuDocument{Slug: slug, Items: []models.MenuItem{}, Categories: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if menu.Items == nil {
		menu.Items = []models.MenuItem{}
	}
	if menu.Categories == nil {
		menu.Categories = []string{}
	}
	return &menu, nil
}

// Get the full menu document for a restaurant
func GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]
	menu, err := loadMenu(ctx, slug)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving menu"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu retrieved successfully",
		"data":    menu,
	})
}

// Replace the whole menu document (the staff "save" action)
func SaveMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]

	var payload struct {
		Items      []models.MenuItem `json:"items"`
		Categories []string          `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	seen := map[string]bool{}
	for _, c := range payload.Categories {
		if c == "" || seen[c] {
			http.Error(w, `{"success": false, "message": "Categories must be unique and non-empty"}`, http.StatusBadRequest)
			return
		}
		seen[c] = true
	}

	for i := range payload.Items {
		if validationErr := validate.Struct(payload.Items[i]); validationErr != nil {
			http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
			return
		}
		if payload.Items[i].Item_id == "" {
			payload.Items[i].Item_id = primitive.NewObjectID().Hex()
		}
	}
	if payload.Items == nil {
		payload.Items = []models.MenuItem{}
	}
	if payload.Categories == nil {
		payload.Categories = []string{}
	}

	menu := models.MenuDocument{
		Slug:       slug,
		Items:      payload.Items,
		Categories: payload.Categories,
		Updated_at: time.Now(),
	}

	_, err := menuCollection.ReplaceOne(ctx, bson.M{"slug": slug}, menu, options.Replace().SetUpsert(true))
	if err != nil {
		http.Error(w, `{"success": false, "message": "Menu could not be saved"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu saved successfully",
		"data":    menu,
	})
}

// Search and filter the menu, grouped by category for display
func SearchMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]
	menu, err := loadMenu(ctx, slug)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving menu"}`, http.StatusInternalServerError)
		return
	}

	query := r.URL.Query().Get("q")
	var active []string
	if raw := r.URL.Query().Get("filters"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				active = append(active, f)
			}
		}
	}

	matched := catalog.Query(menu.Items, query, active)
	groups := catalog.GroupByCategory(matched, menu.Categories)
	if groups == nil {
		groups = []catalog.Group{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu searched successfully",
		"data": map[string]interface{}{
			"query":          query,
			"active_filters": active,
			"total_items":    len(matched),
			"groups":         groups,
		},
	})
}

// Create a menu item
func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if validationErr := validate.Struct(item); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	item.Item_id = primitive.NewObjectID().Hex()

	_, err := menuCollection.UpdateOne(ctx,
		bson.M{"slug": slug},
		bson.M{
			"$push":        bson.M{"items": item},
			"$set":         bson.M{"updated_at": time.Now()},
			"$setOnInsert": bson.M{"categories": []string{}},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		http.Error(w, `{"success": false, "message": "Menu item could not be created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// Update a menu item
func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	slug := params["slug"]
	itemId := params["item_id"]

	var patch struct {
		Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price" validate:"omitempty,gte=0"`
		Description *string  `json:"description"`
		ImageURL    *string  `json:"image_url"`
		Popular     *bool    `json:"popular"`
		IsVeg       *bool    `json:"is_veg"`
		ChefSpecial *bool    `json:"chef_special"`
		SpiceLevel  *int     `json:"spice_level" validate:"omitempty,gte=0,lte=5"`
		ServingSize *string  `json:"serving_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if validationErr := validate.Struct(patch); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	// Build the update with the positional operator so only the
	// matched array element changes.
	updateObj := bson.D{}
	if patch.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.name", Value: *patch.Name})
	}
	if patch.Category != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.category", Value: *patch.Category})
	}
	if patch.Price != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.price", Value: *patch.Price})
	}
	if patch.Description != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.description", Value: *patch.Description})
	}
	if patch.ImageURL != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.image_url", Value: *patch.ImageURL})
	}
	if patch.Popular != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.popular", Value: *patch.Popular})
	}
	if patch.IsVeg != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.is_veg", Value: *patch.IsVeg})
	}
	if patch.ChefSpecial != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.chef_special", Value: *patch.ChefSpecial})
	}
	if patch.SpiceLevel != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.spice_level", Value: *patch.SpiceLevel})
	}
	if patch.ServingSize != nil {
		updateObj = append(updateObj, bson.E{Key: "items.$.serving_size", Value: *patch.ServingSize})
	}
	if len(updateObj) == 0 {
		http.Error(w, `{"success": false, "message": "Nothing to update"}`, http.StatusBadRequest)
		return
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := menuCollection.UpdateOne(ctx,
		bson.M{"slug": slug, "items.item_id": itemId},
		bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Failed to update menu item"}`, http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item updated successfully",
	})
}

// Delete a menu item
func DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	slug := params["slug"]
	itemId := params["item_id"]

	result, err := menuCollection.UpdateOne(ctx,
		bson.M{"slug": slug, "items.item_id": itemId},
		bson.M{
			"$pull": bson.M{"items": bson.M{"item_id": itemId}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error deleting menu item"}`, http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, `{"success": false, "message": "Menu item not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu item deleted successfully",
	})
}

// Add a category to the end of the ordered list
func AddCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]

	var payload struct {
		Name string `json:"name" validate:"required,min=1,max=50"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if validationErr := validate.Struct(payload); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	menu, err := loadMenu(ctx, slug)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving menu"}`, http.StatusInternalServerError)
		return
	}
	for _, c := range menu.Categories {
		if c == payload.Name {
			http.Error(w, `{"success": false, "message": "Category already exists"}`, http.StatusConflict)
			return
		}
	}

	_, err = menuCollection.UpdateOne(ctx,
		bson.M{"slug": slug},
		bson.M{
			"$push":        bson.M{"categories": payload.Name},
			"$set":         bson.M{"updated_at": time.Now()},
			"$setOnInsert": bson.M{"items": []models.MenuItem{}},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		http.Error(w, `{"success": false, "message": "Category could not be added"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Category added successfully",
		"data":    map[string]interface{}{"name": payload.Name},
	})
}

// Reorder the category list; the new list must keep the same labels
func ReorderCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]

	var payload struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	menu, err := loadMenu(ctx, slug)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving menu"}`, http.StatusInternalServerError)
		return
	}
	if !catalog.SameCategorySet(menu.Categories, payload.Categories) {
		http.Error(w, `{"success": false, "message": "Reorder must keep the same categories"}`, http.StatusBadRequest)
		return
	}

	_, err = menuCollection.UpdateOne(ctx,
		bson.M{"slug": slug},
		bson.M{"$set": bson.M{"categories": payload.Categories, "updated_at": time.Now()}})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Categories could not be reordered"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Categories reordered successfully",
		"data":    map[string]interface{}{"categories": payload.Categories},
	})
}

// Delete a category; items that referenced it are kept and fall back
// to the Uncategorized bucket
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	slug := params["slug"]
	name := params["name"]

	menu, err := loadMenu(ctx, slug)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving menu"}`, http.StatusInternalServerError)
		return
	}

	found := false
	for _, c := range menu.Categories {
		if c == name {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, `{"success": false, "message": "Category not found"}`, http.StatusNotFound)
		return
	}

	categories, items := catalog.RemoveCategory(menu.Categories, menu.Items, name)

	// One single-document update keeps the list and the item
	// reassignments consistent.
	_, err = menuCollection.UpdateOne(ctx,
		bson.M{"slug": slug},
		bson.M{"$set": bson.M{
			"categories": categories,
			"items":      items,
			"updated_at": time.Now(),
		}})
	if err != nil {
		http.Error(w, `{"success": false, "message": "Category could not be deleted"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Category deleted successfully",
		"data":    map[string]interface{}{"categories": categories},
	})
}
