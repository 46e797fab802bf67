package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/therohitbiruli/dinex-menu/models"
)

const (
	OrderStatusNew      = "new"
	OrderStatusAccepted = "accepted"
	OrderStatusServed   = "served"
	OrderStatusRejected = "rejected"

	TableStatusAvailable = "available"
	TableStatusOrdering  = "ordering"
)

var (
	ErrEmptyOrder           = errors.New("order has no items")
	ErrMissingTable         = errors.New("table not found")
	ErrTableBusy            = errors.New("table already has an active order")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrConfirmationRequired = errors.New("rejecting an order requires confirmation")
)

// ValidTransition reports whether an order may move between the two
// statuses. Served and rejected are terminal.
func ValidTransition(from, to string) bool {
	switch from {
	case OrderStatusNew:
		return to == OrderStatusAccepted || to == OrderStatusRejected
	case OrderStatusAccepted:
		return to == OrderStatusServed || to == OrderStatusRejected
	}
	return false
}

// NewOrderID composes the order identifier from the table and the
// placement time, e.g. "table-5-1690000000000".
func NewOrderID(tableID string, at time.Time) string {
	return "table-" + tableID + "-" + strconv.FormatInt(at.UnixMilli(), 10)
}

// ValidatePlacement checks the local preconditions of placing an
// order. It runs before any store access: a failure here must leave
// both collections untouched.
func ValidatePlacement(tableID string, items []models.MenuItem) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	if strings.TrimSpace(tableID) == "" {
		return ErrMissingTable
	}
	return nil
}

// OrderTotal sums the snapshot prices of an order's items.
func OrderTotal(items []models.MenuItem) float64 {
	var total float64
	for _, item := range items {
		if item.Price != nil {
			total += *item.Price
		}
	}
	return total
}

// OrderService owns the order lifecycle and keeps the order/table pair
// consistent: every transition that touches both documents runs inside
// one transaction.
type OrderService struct {
	client   *mongo.Client
	orders   *mongo.Collection
	tables   *mongo.Collection
	notifier *TelegramNotifier
}

func NewOrderService(client *mongo.Client, orders, tables *mongo.Collection, notifier *TelegramNotifier) *OrderService {
	return &OrderService{client: client, orders: orders, tables: tables, notifier: notifier}
}

func (s *OrderService) withTransaction(ctx context.Context, fn func(mongo.SessionContext) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// Place creates a new order for a table and flips the table to
// ordering, both in one transaction. A table with an active order
// rejects further placements.
func (s *OrderService) Place(ctx context.Context, tableID string, items []models.MenuItem) (*models.Order, error) {
	if err := ValidatePlacement(tableID, items); err != nil {
		return nil, err
	}

	var table models.Table
	err := s.tables.FindOne(ctx, bson.M{"table_id": tableID}).Decode(&table)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrMissingTable
	}
	if err != nil {
		return nil, err
	}
	if table.Status == TableStatusOrdering {
		return nil, ErrTableBusy
	}

	now := time.Now()
	order := models.Order{
		Order_id:   NewOrderID(tableID, now),
		Table_id:   tableID,
		Items:      items,
		Status:     OrderStatusNew,
		Created_at: now,
		Updated_at: now,
	}

	err = s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := s.orders.InsertOne(sc, order); err != nil {
			return err
		}
		// The status guard re-checks inside the transaction so a racing
		// placement cannot give the table two active orders.
		res, err := s.tables.UpdateOne(sc,
			bson.M{"table_id": tableID, "status": bson.M{"$ne": TableStatusOrdering}},
			bson.M{"$set": bson.M{
				"status":        TableStatusOrdering,
				"last_order_id": order.Order_id,
				"updated_at":    now,
			}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrTableBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyNewOrder(&order)
	return &order, nil
}

// Accept moves a new order to accepted. The table stays in ordering.
func (s *OrderService) Accept(ctx context.Context, orderID string) (*models.Order, error) {
	return s.transition(ctx, orderID, OrderStatusAccepted, false)
}

// Serve moves an accepted order to served and frees the table.
func (s *OrderService) Serve(ctx context.Context, orderID string) (*models.Order, error) {
	return s.transition(ctx, orderID, OrderStatusServed, true)
}

// Reject cancels a new or accepted order and frees the table. The
// caller must pass an explicit confirmation.
func (s *OrderService) Reject(ctx context.Context, orderID string, confirmed bool) (*models.Order, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	return s.transition(ctx, orderID, OrderStatusRejected, true)
}

func (s *OrderService) transition(ctx context.Context, orderID, to string, releaseTable bool) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if !ValidTransition(order.Status, to) {
		return nil, ErrInvalidTransition
	}

	from := order.Status
	now := time.Now()
	err = s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := s.orders.UpdateOne(sc,
			bson.M{"order_id": orderID, "status": from},
			bson.M{"$set": bson.M{"status": to, "updated_at": now}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			// Someone else transitioned the order first.
			return ErrInvalidTransition
		}
		if releaseTable {
			_, err = s.tables.UpdateOne(sc,
				bson.M{"table_id": order.Table_id},
				bson.M{"$set": bson.M{"status": TableStatusAvailable, "updated_at": now}})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = to
	order.Updated_at = now
	return &order, nil
}

// ActiveOrders is the staff-facing live list: new and accepted orders,
// oldest first.
func (s *OrderService) ActiveOrders(ctx context.Context) ([]models.Order, error) {
	cursor, err := s.orders.Find(ctx,
		bson.M{"status": bson.M{"$in": []string{OrderStatusNew, OrderStatusAccepted}}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
