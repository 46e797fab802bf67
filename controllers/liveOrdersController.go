package controller

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/therohitbiruli/dinex-menu/services"
)

var ordersHub = services.NewOrdersHub()
var ordersFeed = services.NewOrdersFeed(orderService, ordersHub, orderCollection)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Staff dashboards are served from a different origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StartOrdersFeed launches the change-stream watcher that keeps every
// connected staff client current. Called once from main.
func StartOrdersFeed(ctx context.Context) {
	go ordersFeed.Run(ctx)
}

// LiveOrdersSocket upgrades the connection and streams full
// replacements of the active order list until the client goes away.
func LiveOrdersSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live orders upgrade failed: %v", err)
		return
	}

	ordersHub.Register(conn)
	defer ordersHub.Unregister(conn)

	if err := ordersFeed.SendSnapshot(r.Context(), conn); err != nil {
		return
	}

	// Clients never send anything meaningful; the read loop only
	// notices the disconnect so the hub entry is released.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
