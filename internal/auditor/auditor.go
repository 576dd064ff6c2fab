package auditor

import (
	"context"
	"fmt"

	"washq/internal/bookings/events"
	"washq/pkg/kafka"
	"washq/pkg/logger"
)

// Auditor writes a structured audit line for every booking lifecycle
// event. The audit trail is append-only application log output; log
// shipping is the retention mechanism.
type Auditor struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Auditor {
	return &Auditor{log: log}
}

// Handle implements the consumer contract. A payload that does not
// decode is a permanent failure and goes to the DLQ.
func (a *Auditor) Handle(ctx context.Context, msg kafka.Message) error {
	var event events.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("malformed booking event at offset %d: %w", msg.Offset, err)
	}

	a.log.Info("booking audit event",
		"event_id", msg.GetEventID(),
		"event_type", msg.GetEventType(),
		"booking_id", event.BookingID,
		"date", event.Date.Format("2006-01-02"),
		"time", event.Time,
		"status", event.Status,
		"occurred_at", event.OccurredAt,
		"partition", msg.Partition,
		"offset", msg.Offset,
	)
	return nil
}
