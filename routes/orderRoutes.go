package routes

import (
	"net/http"

	controller "github.com/therohitbiruli/dinex-menu/controllers"

	"github.com/gorilla/mux"
)

func OrderRoutes(router *mux.Router) {

	router.HandleFunc("/orders", controller.GetOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders", controller.PlaceOrder).Methods(http.MethodPost)

	router.HandleFunc("/orders/live", controller.GetLiveOrders).Methods(http.MethodGet)

	router.HandleFunc("/orders/{order_id}", controller.GetOrderById).Methods(http.MethodGet)
	router.HandleFunc("/orders/{order_id}/accept", controller.AcceptOrder).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{order_id}/serve", controller.ServeOrder).Methods(http.MethodPatch)
	router.HandleFunc("/orders/{order_id}/reject", controller.RejectOrder).Methods(http.MethodPatch)

	router.HandleFunc("/orders/table/{table_id}", controller.GetOrdersByTableId).Methods(http.MethodGet)

	router.HandleFunc("/ws/orders", controller.LiveOrdersSocket).Methods(http.MethodGet)
}
