package config

import "time"

// Generator API Constants
const (
	// DefaultAPIURL is the remote article generator endpoint
	DefaultAPIURL = "https://news-generator-api-l4yd.onrender.com"

	// DefaultAPITimeout bounds a single generator request
	DefaultAPITimeout = 10 * time.Second

	// APIKeyHeader carries the generator API key
	APIKeyHeader = "X-API-KEY"

	// DefaultAPIKey is the key the public generator endpoint accepts
	DefaultAPIKey = "test5678"
)

// Request Defaults
const (
	// DefaultCount is the number of articles requested per feed load
	DefaultCount = 12

	// DefaultMinLength is the minimum generated article length in characters
	DefaultMinLength = 1200

	// DefaultMaxLength is the maximum generated article length in characters
	DefaultMaxLength = 3000

	// DefaultImgWidth, DefaultImgHeight and DefaultImgQuality size article images
	DefaultImgWidth   = 800
	DefaultImgHeight  = 400
	DefaultImgQuality = 85

	// SearchCount is the batch size fetched before filtering search results
	SearchCount = 20
)

// Retry and Refresh Constants
const (
	// DefaultMaxAttempts caps remote fetch attempts before falling back
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the first backoff interval between attempts
	DefaultRetryDelay = 1 * time.Second

	// DefaultRefreshSchedule re-triggers a background load every 5 minutes
	DefaultRefreshSchedule = "@every 5m"
)

// Source Constants
const (
	SourceGenerator = "generator"
	SourceRSS       = "rss"
)

// Storage Constants
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendMongo  = "mongo"

	DefaultFilePath   = "./data/newsdesk.json"
	DefaultSQLitePath = "./data/newsdesk.db"
)
