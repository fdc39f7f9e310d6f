package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "doctorsPortal"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "5001"

	DefaultAccessTokenTTL = 1 * time.Hour

	DefaultPaymentCurrency = "usd"

	DefaultKafkaBookingTopic = "doctors-portal.bookings"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLogLevel = "info"
)
