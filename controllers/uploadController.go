package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/therohitbiruli/dinex-menu/services"
)

// UploadImageHandler accepts a base64 data URL and returns the hosted
// image URL from the injected store
func UploadImageHandler(store services.ImageStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, `{"success": false, "message": "Image uploads are not configured"}`, http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var payload struct {
			ImageBase64 string `json:"image_base64"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.ImageBase64) == "" {
			http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
			return
		}

		data, contentType, err := services.DecodeImageDataURL(payload.ImageBase64)
		if err != nil {
			http.Error(w, `{"success": false, "message": "Invalid base64 image"}`, http.StatusBadRequest)
			return
		}
		if !strings.HasPrefix(contentType, "image/") {
			http.Error(w, `{"success": false, "message": "Only image uploads are allowed"}`, http.StatusBadRequest)
			return
		}

		url, err := store.Upload(ctx, data, contentType)
		if err != nil {
			http.Error(w, `{"success": false, "message": "Image upload failed"}`, http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "Image uploaded successfully",
			"data":    map[string]interface{}{"url": url},
		})
	}
}
