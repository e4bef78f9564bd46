package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Elastic   ElasticsearchConfig
	Storage   StorageConfig
	Site      SiteConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	AppEnv          string
	HTTPPort        string
	GRPCPort        string
	PublicBaseURL   string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	AdminRole string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Zero disables the public catalog cache.
	TTL time.Duration
}

type KafkaConfig struct {
	Brokers      []string
	EventsTopic  string
	InquiryTopic string
	GroupID      string
	Enabled      bool
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
	Enabled   bool
}

type StorageConfig struct {
	Driver        string // local or s3
	LocalDir      string
	PublicURL     string
	S3Endpoint    string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3UseSSL      bool
	S3Region      string
	AllowedFolder []string
}

type SiteConfig struct {
	ContentFile string
	CompanyName string
}

type RateLimitConfig struct {
	InquiriesPerMinute int
	Burst              int
	// TrustedProxies may report the client address through X-Forwarded-For.
	TrustedProxies []string
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "dev"
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "dev"),
			HTTPPort:        getEnv("HTTP_PORT", ":8080"),
			GRPCPort:        getEnv("GRPC_PORT", ":8082"),
			PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", 25<<20)),
			ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "equipment"),
			Password:        getEnv("POSTGRES_PASSWORD", "equipment"),
			DBName:          getEnv("POSTGRES_DB", "equipment_cms"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
			Issuer:    getEnv("JWT_ISSUER", ""),
			AdminRole: getEnv("JWT_ADMIN_ROLE", "admin"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:      getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			EventsTopic:  getEnv("KAFKA_TOPIC_CATALOG_EVENTS", "catalog.events"),
			InquiryTopic: getEnv("KAFKA_TOPIC_INQUIRIES", "web.inquiries"),
			GroupID:      getEnv("KAFKA_GROUP_INQUIRIES", "equipment-cms"),
			Enabled:      getEnvBool("KAFKA_ENABLED", false),
		},
		Elastic: ElasticsearchConfig{
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:     getEnv("ELASTICSEARCH_INDEX", "products"),
			Enabled:   getEnvBool("ELASTICSEARCH_ENABLED", false),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", "local"),
			LocalDir:      getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			PublicURL:     getEnv("STORAGE_PUBLIC_URL", "http://localhost:8080/uploads"),
			S3Endpoint:    getEnv("S3_ENDPOINT", ""),
			S3Bucket:      getEnv("S3_BUCKET", "media"),
			S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
			S3UseSSL:      getEnvBool("S3_USE_SSL", true),
			S3Region:      getEnv("S3_REGION", ""),
			AllowedFolder: getEnvSlice("STORAGE_FOLDERS", []string{"products", "components", "news", "media"}),
		},
		Site: SiteConfig{
			ContentFile: getEnv("SITE_CONTENT_FILE", ""),
			CompanyName: getEnv("SITE_COMPANY_NAME", "Forgeline Industrial"),
		},
		RateLimit: RateLimitConfig{
			InquiriesPerMinute: getEnvInt("RATE_LIMIT_INQUIRIES_PER_MINUTE", 5),
			Burst:              getEnvInt("RATE_LIMIT_INQUIRIES_BURST", 3),
			TrustedProxies:     getEnvSlice("RATE_LIMIT_TRUSTED_PROXIES", nil),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
