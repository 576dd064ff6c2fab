package kafka

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBuilder(t *testing.T) {
	type payload struct {
		BookingID string `json:"bookingId"`
	}

	msg := NewMessage().
		WithKey("abc123").
		WithValue(payload{BookingID: "abc123"}).
		WithEventType("booking.created").
		WithSource("bookings").
		Build()

	assert.Equal(t, "abc123", msg.Key)
	assert.Equal(t, "booking.created", msg.GetEventType())
	assert.NotEmpty(t, msg.GetEventID(), "builder must assign an event id")
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])

	source, ok := msg.GetHeader(HeaderSource)
	require.True(t, ok)
	assert.Equal(t, "bookings", source)

	var decoded payload
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, "abc123", decoded.BookingID)
}

func TestMessage_RetryCount(t *testing.T) {
	msg := NewMessage().WithKey("k").WithValue("v").Build()
	assert.Equal(t, 0, msg.GetRetryCount())

	msg.IncrementRetryCount()
	msg.IncrementRetryCount()
	assert.Equal(t, 2, msg.GetRetryCount())

	msg.Headers[HeaderRetryCount] = "garbage"
	assert.Equal(t, 0, msg.GetRetryCount(), "unparseable retry count resets to zero")
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.True(t, IsTransient(errors.New("dial tcp: connection refused")))
	assert.True(t, IsTransient(errors.New("context deadline exceeded")))
	assert.True(t, IsTransient(errors.New("read: i/o timeout")))
	assert.False(t, IsTransient(errors.New("invalid message format")))
}

func TestShouldRetry(t *testing.T) {
	transient := errors.New("connection reset by peer")
	permanent := errors.New("schema mismatch")

	assert.True(t, ShouldRetry(transient, 0, 3))
	assert.True(t, ShouldRetry(transient, 2, 3))
	assert.False(t, ShouldRetry(transient, 3, 3), "retry budget exhausted")
	assert.False(t, ShouldRetry(permanent, 0, 3), "permanent errors go straight to the DLQ")
	assert.False(t, ShouldRetry(nil, 0, 3))
}
