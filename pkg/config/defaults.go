package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "washq"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	// Bookable time labels, matching the slots the booking page offers.
	DefaultSlotTimes = "10:00,11:00,13:00"

	DefaultAdminUsername = "admin"
	DefaultAdminTokenTTL = 12 * time.Hour

	DefaultBookingEventsTopic = "booking-events"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLogFileMaxSize = 50 // megabytes
	DefaultLogFileMaxAge  = 14 // days
)
