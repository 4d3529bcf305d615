package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type key string

const (
	KeyUUID   = key("uuid")
	KeyLogger = key("logger")
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type Config struct {
	Service   Service
	Postgres  ReadEnvDB
	Mongo     Mongo
	Redis     Redis
	Kafka     Kafka
	Logger    Logger
	Platform  Platform
	Realtime  Realtime
	RateLimit RateLimit
	Worker    Worker
}

type Service struct {
	Port    string `env:"SERVICE_PORT" env-default:"8080"`
	Name    string `env:"SERVICE_NAME" env-default:"skills-messenger"`
	Storage string `env:"SERVICE_STORAGE" env-default:"postgres"`
}

type ReadEnvDB struct {
	User     string `env:"MESSENGER_POSTGRES_USER"`
	Password string `env:"MESSENGER_POSTGRES_PASSWORD"`
	Database string `env:"MESSENGER_POSTGRES_DB"`
	Host     string `env:"MESSENGER_POSTGRES_HOST"`
	Port     string `env:"MESSENGER_POSTGRES_PORT" env-default:"5432"`
}

type Mongo struct {
	URI      string        `env:"MESSENGER_MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string        `env:"MESSENGER_MONGO_DB" env-default:"localskills"`
	Timeout  time.Duration `env:"MESSENGER_MONGO_TIMEOUT" env-default:"5s"`
}

// Redis mirrors presence for other instances. An empty host disables the mirror.
type Redis struct {
	Host        string        `env:"REDIS_HOST"`
	Port        string        `env:"REDIS_PORT" env-default:"6379"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB" env-default:"0"`
	Prefix      string        `env:"REDIS_PRESENCE_PREFIX" env-default:"messenger"`
	PresenceTTL time.Duration `env:"REDIS_PRESENCE_TTL" env-default:"2m"`
}

// Kafka publishes message events; an empty host disables publishing.
type Kafka struct {
	Host         string `env:"KAFKA_HOST"`
	Port         string `env:"KAFKA_PORT" env-default:"9092"`
	MessageTopic string `env:"MESSENGER_MESSAGE_TOPIC" env-default:"messenger.message"`
	UserTopic    string `env:"USER_UPDATE_TOPIC" env-default:"user.update"`
}

type Logger struct {
	Host string `env:"LOGGER_SERVICE_HOST"`
	Port string `env:"LOGGER_SERVICE_PORT"`
}

type Platform struct {
	Env string `env:"ENV" env-default:"dev"`
}

type Realtime struct {
	JWTSecret       string        `env:"REALTIME_JWT_SECRET" env-required:"true"`
	TokenTTL        time.Duration `env:"REALTIME_TOKEN_TTL" env-default:"30m"`
	AllowedOrigins  []string      `env:"REALTIME_ALLOWED_ORIGINS" env-separator:"," env-default:"localhost:5173"`
	SendBuffer      int           `env:"REALTIME_SEND_BUFFER" env-default:"64"`
	PingInterval    time.Duration `env:"REALTIME_PING_INTERVAL" env-default:"25s"`
	WriteTimeout    time.Duration `env:"REALTIME_WRITE_TIMEOUT" env-default:"10s"`
	EventTimeout    time.Duration `env:"REALTIME_EVENT_TIMEOUT" env-default:"5s"`
	MaxMessageBytes int64         `env:"REALTIME_MAX_MESSAGE_BYTES" env-default:"65536"`
	EventsPerSecond float64       `env:"REALTIME_EVENTS_PER_SECOND" env-default:"20"`
	EventBurst      int           `env:"REALTIME_EVENT_BURST" env-default:"40"`
}

// Worker configures the standalone Kafka workers.
type Worker struct {
	MetricsPort string `env:"WORKER_METRICS_PORT" env-default:"9101"`
}

type RateLimit struct {
	RPS   float64 `env:"HTTP_RATE_LIMIT_RPS" env-default:"10"`
	Burst int     `env:"HTTP_RATE_LIMIT_BURST" env-default:"30"`
}

func MustLoad() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.Fatalf("failed to read env variables: %s", err)
	}

	return cfg
}
