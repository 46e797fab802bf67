package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/therohitbiruli/dinex-menu/models"
)

func updateCommands(events []*event.CommandStartedEvent) []*event.CommandStartedEvent {
	var out []*event.CommandStartedEvent
	for _, ev := range events {
		if ev.CommandName == "update" {
			out = append(out, ev)
		}
	}
	return out
}

// checkPairedTableRelease asserts that a terminal transition produced
// exactly two update commands riding the same transaction, with the
// second one flipping the table back to available.
func checkPairedTableRelease(mt *mtest.T) {
	mt.Helper()

	updates := updateCommands(mt.GetAllStartedEvents())
	if len(updates) != 2 {
		mt.Fatalf("got %d update commands, want 2 (order + table)", len(updates))
	}
	for i, ev := range updates {
		if v := ev.Command.Lookup("autocommit"); v.Type != bson.TypeBoolean || v.Boolean() {
			mt.Errorf("update %d ran outside a transaction", i)
		}
	}
	if !updates[0].Command.Lookup("txnNumber").Equal(updates[1].Command.Lookup("txnNumber")) {
		mt.Error("order and table updates used different transactions")
	}

	tableUpdate := updates[1]
	if got := tableUpdate.Command.Lookup("update").StringValue(); got != "tables" {
		mt.Fatalf("second update targeted %q, want tables", got)
	}
	stmt := tableUpdate.Command.Lookup("updates").Array().Index(0).Value().Document()
	if got := stmt.Lookup("u", "$set", "status").StringValue(); got != TableStatusAvailable {
		mt.Errorf("table status set to %q, want %q", got, TableStatusAvailable)
	}
}

func terminalTransitionResponses(orderID, fromStatus string) []bson.D {
	return []bson.D{
		mtest.CreateCursorResponse(0, "dinex.orders", mtest.FirstBatch, bson.D{
			{Key: "order_id", Value: orderID},
			{Key: "table_id", Value: "5"},
			{Key: "status", Value: fromStatus},
		}),
		mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		mtest.CreateSuccessResponse(),
	}
}

func TestTerminalTransitionsReleaseTable(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("serve frees the table in the same transaction", func(mt *mtest.T) {
		svc := NewOrderService(mt.Client, mt.Coll, mt.DB.Collection("tables"), nil)
		mt.AddMockResponses(terminalTransitionResponses("table-5-1690000000000", OrderStatusAccepted)...)

		order, err := svc.Serve(context.Background(), "table-5-1690000000000")
		if err != nil {
			mt.Fatalf("Serve: %v", err)
		}
		if order.Status != OrderStatusServed {
			mt.Errorf("order status = %q, want %q", order.Status, OrderStatusServed)
		}
		checkPairedTableRelease(mt)
	})

	mt.Run("reject frees the table in the same transaction", func(mt *mtest.T) {
		svc := NewOrderService(mt.Client, mt.Coll, mt.DB.Collection("tables"), nil)
		mt.AddMockResponses(terminalTransitionResponses("table-5-1690000000001", OrderStatusNew)...)

		order, err := svc.Reject(context.Background(), "table-5-1690000000001", true)
		if err != nil {
			mt.Fatalf("Reject: %v", err)
		}
		if order.Status != OrderStatusRejected {
			mt.Errorf("order status = %q, want %q", order.Status, OrderStatusRejected)
		}
		checkPairedTableRelease(mt)
	})

	mt.Run("accept leaves the table alone", func(mt *mtest.T) {
		svc := NewOrderService(mt.Client, mt.Coll, mt.DB.Collection("tables"), nil)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "dinex.orders", mtest.FirstBatch, bson.D{
				{Key: "order_id", Value: "table-5-1690000000002"},
				{Key: "table_id", Value: "5"},
				{Key: "status", Value: OrderStatusNew},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(),
		)

		if _, err := svc.Accept(context.Background(), "table-5-1690000000002"); err != nil {
			mt.Fatalf("Accept: %v", err)
		}
		updates := updateCommands(mt.GetAllStartedEvents())
		if len(updates) != 1 {
			mt.Fatalf("got %d update commands, want 1 (order only)", len(updates))
		}
		if got := updates[0].Command.Lookup("update").StringValue(); got == "tables" {
			mt.Error("accept must not touch the tables collection")
		}
	})
}

func TestFailedPlacementWritesNothing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty cart issues no commands", func(mt *mtest.T) {
		svc := NewOrderService(mt.Client, mt.Coll, mt.DB.Collection("tables"), nil)

		if _, err := svc.Place(context.Background(), "5", nil); !errors.Is(err, ErrEmptyOrder) {
			mt.Fatalf("Place = %v, want ErrEmptyOrder", err)
		}
		if ev := mt.GetStartedEvent(); ev != nil {
			mt.Errorf("unexpected %s command for a rejected placement", ev.CommandName)
		}
	})

	mt.Run("busy table stops before any write", func(mt *mtest.T) {
		svc := NewOrderService(mt.Client, mt.Coll, mt.DB.Collection("tables"), nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "dinex.tables", mtest.FirstBatch, bson.D{
			{Key: "table_id", Value: "5"},
			{Key: "status", Value: TableStatusOrdering},
		}))

		price := 299.0
		items := []models.MenuItem{{Item_id: "m1", Name: "Margherita Pizza", Price: &price}}
		if _, err := svc.Place(context.Background(), "5", items); !errors.Is(err, ErrTableBusy) {
			mt.Fatalf("Place = %v, want ErrTableBusy", err)
		}
		for _, ev := range mt.GetAllStartedEvents() {
			if ev.CommandName == "insert" || ev.CommandName == "update" {
				mt.Errorf("busy-table placement issued a %s command", ev.CommandName)
			}
		}
	})
}
