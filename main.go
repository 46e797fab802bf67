package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	controllers "github.com/therohitbiruli/dinex-menu/controllers"
	routes "github.com/therohitbiruli/dinex-menu/routes"
	"github.com/therohitbiruli/dinex-menu/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// .env is loaded once by the database package init.

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	ctx := context.Background()

	// Image hosting is optional; without a bucket the upload endpoint
	// answers 503 and everything else keeps working.
	var imageStore services.ImageStore
	if store, err := services.NewS3ImageStore(ctx); err != nil {
		log.Printf("Image uploads disabled: %v", err)
	} else {
		imageStore = store
	}

	qrGenerator := services.NewQRServerGenerator()

	router := mux.NewRouter()

	routes.RestaurantRoutes(router)
	routes.MenuRoutes(router)
	routes.TableRoutes(router, qrGenerator)
	routes.OrderRoutes(router)
	routes.UploadRoutes(router, imageStore)

	// Keep connected staff dashboards current with the order stream.
	controllers.StartOrdersFeed(ctx)

	allowedOrigins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		allowedOrigins = strings.Split(raw, ",")
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
	})
	handler := c.Handler(router)

	log.Printf("Server running on port %s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal(err)
	}
}
