package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// AuthConfig configures actor token validation.
type AuthConfig struct {
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

// PostgresConfig selects the durable store. An empty DSN runs in-memory.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	TxTimeout    time.Duration
}

// RedisConfig configures the descendant-set cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the audit outbox relay. Empty brokers disable it.
type KafkaConfig struct {
	Brokers       []string
	AuditTopic    string
	Partitions    int32
	RelayInterval time.Duration
	RelayBatch    int
}

// PIIConfig configures the vault.
type PIIConfig struct {
	// EncryptionKey is a base64 encoded 32 byte key. When empty a key is
	// derived from DevSeed, which is only acceptable outside production.
	EncryptionKey string
	DevSeed       string
	DefaultTTL    time.Duration
	PurgeSchedule string
}

// HierarchyConfig bounds tree traversal. BootstrapRootLogin, when set,
// ensures a SUPER ADMIN root with that login exists at startup.
type HierarchyConfig struct {
	MaxDepth           int
	BootstrapRootLogin string
}

type Config struct {
	Environment string
	LogLevel    string
	Server      Server
	Auth        AuthConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	PII         PIIConfig
	Hierarchy   HierarchyConfig
}

// IsProduction reports whether dev fallbacks must be refused.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// FromEnv builds the config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables win.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		Environment: getEnv("LEDGERGUARD_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: Server{
			Addr:              getEnv("LEDGERGUARD_ADDR", ":8080"),
			ReadHeaderTimeout: getDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:       getDuration("HTTP_IDLE_TIMEOUT", 2*time.Minute),
			ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			// Development default, must be overridden in production.
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     getEnv("JWT_ISSUER", "ledgerguard-login"),
			JWTAudience:   getEnv("JWT_AUDIENCE", "ledgerguard"),
		},
		Postgres: PostgresConfig{
			DSN:          getEnv("DATABASE_URL", ""),
			MaxOpenConns: getInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getInt("DATABASE_MAX_IDLE_CONNS", 5),
			TxTimeout:    getDuration("DATABASE_TX_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 500*time.Millisecond),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
			CacheTTL:     getDuration("DESCENDANT_CACHE_TTL", 10*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "")),
			AuditTopic:    getEnv("KAFKA_AUDIT_TOPIC", "ledgerguard.audit"),
			Partitions:    int32(getInt("KAFKA_AUDIT_PARTITIONS", 3)),
			RelayInterval: getDuration("OUTBOX_RELAY_INTERVAL", time.Second),
			RelayBatch:    getInt("OUTBOX_RELAY_BATCH", 100),
		},
		PII: PIIConfig{
			EncryptionKey: getEnv("PII_ENCRYPTION_KEY", ""),
			DevSeed:       getEnv("PII_DEV_SEED", "ledgerguard-dev-seed"),
			DefaultTTL:    getDuration("PII_DEFAULT_TTL", 365*24*time.Hour),
			PurgeSchedule: getEnv("PII_PURGE_SCHEDULE", "@every 1h"),
		},
		Hierarchy: HierarchyConfig{
			MaxDepth:           getInt("HIERARCHY_MAX_DEPTH", 1000),
			BootstrapRootLogin: getEnv("BOOTSTRAP_ROOT_LOGIN", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
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
