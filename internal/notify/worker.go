package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Worker consumes order notification tasks and records them as order events.
type Worker struct {
	DB     *pgxpool.Pool
	Logger zerolog.Logger
}

// Register attaches the worker's handlers to the mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeOrderPlaced, w.HandleOrderPlaced)
}

// HandleOrderPlaced records a confirmation event for the order. The event row
// doubles as an audit trail for order history.
func (w *Worker) HandleOrderPlaced(ctx context.Context, t *asynq.Task) error {
	var payload OrderPlacedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// malformed payloads will never succeed, skip retries
		return fmt.Errorf("unmarshal order placed payload: %w: %w", err, asynq.SkipRetry)
	}
	_, err := w.DB.Exec(ctx,
		`INSERT INTO order_events (order_id, event_type, payload)
		 VALUES ($1, $2, $3)`,
		payload.OrderID, TypeOrderPlaced, t.Payload())
	if err != nil {
		return fmt.Errorf("record order event: %w", err)
	}
	w.Logger.Info().
		Str("order_id", payload.OrderID).
		Str("customer", payload.CustomerName).
		Str("total", payload.FinalTotal).
		Msg("order confirmation recorded")
	return nil
}
