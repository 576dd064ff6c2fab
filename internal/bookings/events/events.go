package events

import (
	"context"
	"time"

	"washq/pkg/kafka"
	"washq/pkg/logger"
	"washq/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"

	sourceService = "bookings"
)

// BookingEvent is the payload published for every booking lifecycle
// change. Deleted events carry only the booking id.
type BookingEvent struct {
	BookingID    string    `json:"bookingId"`
	Name         string    `json:"name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CarModel     string    `json:"carModel,omitempty"`
	LicensePlate string    `json:"licensePlate,omitempty"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time,omitempty"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Publisher emits booking lifecycle events. Implementations must be
// safe for concurrent use and must never block the request path beyond
// the caller's context deadline.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingStatusChanged(ctx context.Context, booking *model.Booking)
	BookingDeleted(ctx context.Context, booking *model.Booking)
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	logger   *logger.Logger
}

// NewKafkaPublisher wraps a Kafka producer. Publish failures are
// logged and dropped; event delivery is best effort and never fails
// the originating request.
func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		logger:   log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingCreated, booking)
}

func (p *kafkaPublisher) BookingStatusChanged(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingStatusChanged, booking)
}

func (p *kafkaPublisher) BookingDeleted(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingDeleted, booking)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := BookingEvent{
		BookingID:    booking.ID,
		Name:         booking.Name,
		Phone:        booking.Phone,
		CarModel:     booking.CarModel,
		LicensePlate: booking.LicensePlate,
		Date:         booking.Date,
		Time:         booking.Time,
		Status:       booking.Status.String(),
		OccurredAt:   time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(sourceService).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.logger.Error("failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}

	p.logger.Debug("published booking event",
		"event_type", eventType,
		"booking_id", booking.ID,
	)
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that discards all events. Used
// when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) BookingCreated(context.Context, *model.Booking) {}

func (noopPublisher) BookingStatusChanged(context.Context, *model.Booking) {}

func (noopPublisher) BookingDeleted(context.Context, *model.Booking) {}

func (noopPublisher) Close() error { return nil }
