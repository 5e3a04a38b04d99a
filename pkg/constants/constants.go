package constants

import "time"

// Application constants
const (
	// Application metadata
	AppName        = "tabclean-server"
	AppDescription = "Tabular Dataset Cleaning Server"
	AppVersion     = "0.1.0"

	// API constants
	APIVersion = "v1"
	APIPrefix  = "/api/v1"

	// Default server configuration values
	DefaultPort            = 8080
	DefaultMetricsPort     = 9090
	DefaultHost            = "0.0.0.0"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	MaxUploadSize          = 64 << 20 // 64MB

	// Cleaning defaults. The winsorization threshold and multiplier are
	// fixed for behavioral compatibility with existing reports; change
	// them only through cleaner.Config.
	DefaultWinsorizeMinSamples = 5
	DefaultIQRMultiplier       = 1.5
	DefaultTextFill            = "Unknown"
	DefaultParallelWorkers     = 1

	// Storage defaults
	DefaultCacheTTL          = 30 * time.Minute
	DefaultStorageTimeout    = 30 * time.Second
	DefaultConnectionTimeout = 10 * time.Second
	DefaultCacheKeyPrefix    = "tabclean"
)

// HTTP header names
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
)

// Content types
const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
	ContentTypeText = "text/plain"
)
