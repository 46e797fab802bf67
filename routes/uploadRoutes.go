package routes

import (
	"net/http"

	controller "github.com/therohitbiruli/dinex-menu/controllers"
	"github.com/therohitbiruli/dinex-menu/services"

	"github.com/gorilla/mux"
)

func UploadRoutes(router *mux.Router, store services.ImageStore) {
	router.HandleFunc("/uploads/image", controller.UploadImageHandler(store)).Methods(http.MethodPost)
}
