package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/slice-labs/backend-pizzeria/internal/order"
)

// TypeOrderPlaced is the asynq task type for order confirmation processing.
const TypeOrderPlaced = "order:placed"

// OrderPlacedPayload is the task payload recorded when an order is submitted.
type OrderPlacedPayload struct {
	OrderID      string `json:"orderId"`
	CustomerName string `json:"customerName"`
	ItemName     string `json:"itemName"`
	Quantity     int32  `json:"quantity"`
	FinalTotal   string `json:"finalTotal"`
	PlacedAt     string `json:"placedAt"`
}

// Enqueuer pushes order notifications onto the task queue. Enqueue failures
// are reported to the caller but must never fail the order itself.
type Enqueuer struct {
	Client *asynq.Client
	Logger zerolog.Logger
}

// OrderPlaced enqueues a confirmation task for the given order.
func (e *Enqueuer) OrderPlaced(ctx context.Context, o order.Order) error {
	if e == nil || e.Client == nil {
		return nil
	}
	payload, err := json.Marshal(OrderPlacedPayload{
		OrderID:      o.ID.String(),
		CustomerName: o.CustomerName,
		ItemName:     o.ItemName,
		Quantity:     o.Quantity,
		FinalTotal:   o.FinalTotal.StringFixed(2),
		PlacedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal order placed payload: %w", err)
	}
	task := asynq.NewTask(TypeOrderPlaced, payload)
	info, err := e.Client.EnqueueContext(ctx, task, asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
	if err != nil {
		return fmt.Errorf("enqueue order placed: %w", err)
	}
	e.Logger.Debug().Str("task_id", info.ID).Str("order_id", o.ID.String()).Msg("order placed task enqueued")
	return nil
}
