package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, read from the environment
type Config struct {
	Port string

	API     APIConfig
	Fetch   FetchConfig
	Storage StorageConfig
	Kafka   KafkaConfig
}

// APIConfig configures the upstream article source
type APIConfig struct {
	URL       string
	Key       string
	Timeout   time.Duration
	Source    string // "generator" or "rss"
	FeedsFile string // optional YAML/TOML feed presets for the rss source
	Extract   bool   // pull full article text for the rss source
}

// FetchConfig configures request defaults, retries and background refresh
type FetchConfig struct {
	Count           int
	MinLength       int
	MaxLength       int
	ImgWidth        int
	ImgHeight       int
	ImgQuality      int
	MaxAttempts     int
	RetryDelay      time.Duration
	RefreshSchedule string
}

// StorageConfig selects and configures the persisted-state backend
type StorageConfig struct {
	Backend string
	Path    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	S3Bucket       string
	S3Prefix       string
	S3Region       string
	S3Profile      string
	S3UsePathStyle bool

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// KafkaConfig enables the refresh-request consumer when Brokers is non-empty
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Load reads .env (if present) and the process environment
func Load() Config {
	// Missing .env is fine
	_ = godotenv.Load()

	backend := strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", BackendFile))
	defaultPath := DefaultFilePath
	if backend == BackendSQLite {
		defaultPath = DefaultSQLitePath
	}

	cfg := Config{
		Port: getEnvOrDefault("PORT", "8080"),
		API: APIConfig{
			URL:       strings.TrimRight(getEnvOrDefault("NEWS_API_URL", DefaultAPIURL), "/"),
			Key:       getEnvOrDefault("NEWS_API_KEY", DefaultAPIKey),
			Timeout:   getEnvDurationOrDefault("NEWS_API_TIMEOUT", DefaultAPITimeout),
			Source:    strings.ToLower(getEnvOrDefault("NEWS_SOURCE", SourceGenerator)),
			FeedsFile: os.Getenv("NEWS_FEEDS_FILE"),
			Extract:   strings.EqualFold(strings.TrimSpace(os.Getenv("NEWS_FEEDS_EXTRACT")), "true"),
		},
		Fetch: FetchConfig{
			Count:           getEnvIntOrDefault("NEWS_DEFAULT_COUNT", DefaultCount),
			MinLength:       getEnvIntOrDefault("NEWS_MIN_LENGTH", DefaultMinLength),
			MaxLength:       getEnvIntOrDefault("NEWS_MAX_LENGTH", DefaultMaxLength),
			ImgWidth:        getEnvIntOrDefault("NEWS_IMG_WIDTH", DefaultImgWidth),
			ImgHeight:       getEnvIntOrDefault("NEWS_IMG_HEIGHT", DefaultImgHeight),
			ImgQuality:      getEnvIntOrDefault("NEWS_IMG_QUALITY", DefaultImgQuality),
			MaxAttempts:     getEnvIntOrDefault("FETCH_MAX_ATTEMPTS", DefaultMaxAttempts),
			RetryDelay:      getEnvDurationOrDefault("FETCH_RETRY_DELAY", DefaultRetryDelay),
			RefreshSchedule: getEnvOrDefault("REFRESH_SCHEDULE", DefaultRefreshSchedule),
		},
		Storage: StorageConfig{
			Backend:         backend,
			Path:            getEnvOrDefault("STORAGE_PATH", defaultPath),
			RedisAddr:       getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			RedisPassword:   os.Getenv("REDIS_PASSWORD"),
			RedisDB:         getEnvIntOrDefault("REDIS_DB", 0),
			RedisPrefix:     getEnvOrDefault("REDIS_PREFIX", "newsdesk:"),
			S3Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET")),
			S3Prefix:        strings.TrimSpace(os.Getenv("S3_PREFIX")),
			S3Region:        strings.TrimSpace(os.Getenv("S3_REGION")),
			S3Profile:       strings.TrimSpace(os.Getenv("S3_PROFILE")),
			S3UsePathStyle:  strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
			MongoURI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase:   getEnvOrDefault("MONGO_DATABASE", "newsdesk"),
			MongoCollection: getEnvOrDefault("MONGO_COLLECTION", "local_storage"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
			Topic:   getEnvOrDefault("KAFKA_TOPIC", "news-refresh-requests"),
			GroupID: getEnvOrDefault("KAFKA_GROUP_ID", "newsdesk-consumer-group"),
		},
	}

	if cfg.Fetch.MaxAttempts < 1 {
		cfg.Fetch.MaxAttempts = 1
	}
	return cfg
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// getEnvDurationOrDefault accepts Go durations ("15s") or plain seconds ("15")
func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
