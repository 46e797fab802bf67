package services

import (
	"context"
	"log"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/therohitbiruli/dinex-menu/models"
)

// OrdersFeed watches the orders collection and pushes a full
// replacement of the active order list to the hub on every change.
// Consumers never receive diffs.
type OrdersFeed struct {
	orders  *OrderService
	hub     *OrdersHub
	watched *mongo.Collection
}

func NewOrdersFeed(orders *OrderService, hub *OrdersHub, watched *mongo.Collection) *OrdersFeed {
	return &OrdersFeed{orders: orders, hub: hub, watched: watched}
}

type liveOrdersMessage struct {
	Type   string         `json:"type"`
	Orders []models.Order `json:"orders"`
}

// Run blocks on the change stream until ctx is cancelled. Requires a
// replica set, same as the transactions in OrderService.
func (f *OrdersFeed) Run(ctx context.Context) {
	stream, err := f.watched.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		log.Printf("live orders watch failed: %v", err)
		return
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		f.Push(ctx)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.Printf("live orders stream closed: %v", err)
	}
}

// Push re-queries the active list and broadcasts it to every client.
func (f *OrdersFeed) Push(ctx context.Context) {
	orders, err := f.orders.ActiveOrders(ctx)
	if err != nil {
		log.Printf("live orders refresh failed: %v", err)
		return
	}
	f.hub.Broadcast(liveOrdersMessage{Type: "orders", Orders: orders})
}

// SendSnapshot pushes the current active list to a single registered
// client, used right after it connects. The write goes through the hub
// so it cannot interleave with a concurrent broadcast.
func (f *OrdersFeed) SendSnapshot(ctx context.Context, conn *websocket.Conn) error {
	orders, err := f.orders.ActiveOrders(ctx)
	if err != nil {
		return err
	}
	return f.hub.Send(conn, liveOrdersMessage{Type: "orders", Orders: orders})
}
