package routes

import (
	"net/http"

	controller "github.com/therohitbiruli/dinex-menu/controllers"

	"github.com/gorilla/mux"
)

func RestaurantRoutes(router *mux.Router) {
	router.HandleFunc("/restaurants/{slug}", controller.GetRestaurant).Methods(http.MethodGet)
	router.HandleFunc("/restaurants/{slug}", controller.UpdateRestaurant).Methods(http.MethodPatch)
}
