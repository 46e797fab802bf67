package routes

import (
	"net/http"

	controllers "github.com/therohitbiruli/dinex-menu/controllers"

	"github.com/gorilla/mux"
)

func MenuRoutes(router *mux.Router) {

	router.HandleFunc("/menus/{slug}", controllers.GetMenu).Methods(http.MethodGet)
	router.HandleFunc("/menus/{slug}", controllers.SaveMenu).Methods(http.MethodPut)
	router.HandleFunc("/menus/{slug}/search", controllers.SearchMenu).Methods(http.MethodGet)

	router.HandleFunc("/menus/{slug}/items", controllers.CreateMenuItem).Methods(http.MethodPost)
	router.HandleFunc("/menus/{slug}/items/{item_id}", controllers.UpdateMenuItem).Methods(http.MethodPatch)
	router.HandleFunc("/menus/{slug}/items/{item_id}", controllers.DeleteMenuItem).Methods(http.MethodDelete)

	router.HandleFunc("/menus/{slug}/categories", controllers.AddCategory).Methods(http.MethodPost)
	router.HandleFunc("/menus/{slug}/categories", controllers.ReorderCategories).Methods(http.MethodPut)
	router.HandleFunc("/menus/{slug}/categories/{name}", controllers.DeleteCategory).Methods(http.MethodDelete)
}
