package routes

import (
	"net/http"

	controller "github.com/therohitbiruli/dinex-menu/controllers"
	"github.com/therohitbiruli/dinex-menu/services"

	"github.com/gorilla/mux"
)

func TableRoutes(router *mux.Router, qr services.QRGenerator) {

	router.HandleFunc("/tables", controller.GetTables).Methods(http.MethodGet)
	router.HandleFunc("/tables", controller.CreateTable).Methods(http.MethodPost)

	router.HandleFunc("/tables/status/{status}", controller.GetTablesByStatus).Methods(http.MethodGet)

	router.HandleFunc("/tables/{table_id}", controller.GetTable).Methods(http.MethodGet)
	router.HandleFunc("/tables/{table_id}", controller.UpdateTable).Methods(http.MethodPatch)
	router.HandleFunc("/tables/{table_id}", controller.DeleteTable).Methods(http.MethodDelete)

	router.HandleFunc("/tables/{table_id}/menu-url", controller.GetTableMenuURL).Methods(http.MethodGet)
	router.HandleFunc("/tables/{table_id}/qr", controller.TableQRHandler(qr)).Methods(http.MethodGet)
}
