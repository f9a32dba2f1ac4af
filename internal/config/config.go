package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	Server   ServerConfig   `envPrefix:"SERVER_"`
	Store    StoreConfig
	DynamoDB DynamoDBConfig `envPrefix:"DYNAMODB_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	Client   ClientConfig   `envPrefix:"CATALOG_API_"`
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080" validate:"required"`
	Host         string        `env:"HOST" envDefault:"0.0.0.0"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	CORSOrigins  string        `env:"CORS_ORIGINS" envDefault:"*"`
	Pprof        bool          `env:"PPROF" envDefault:"false"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// StoreConfig selects the product store. TableName is the one variable the
// handler needs; it names the DynamoDB table or the MongoDB collection.
type StoreConfig struct {
	Driver    string `env:"STORE_DRIVER" envDefault:"dynamodb" validate:"oneof=dynamodb mongodb memory"`
	TableName string `env:"DYNAMODB_TABLE_NAME"`
}

// RequireTable reports a missing table name for drivers that need one.
// Commands that never open the store skip this check.
func (s StoreConfig) RequireTable() error {
	if s.Driver != DriverMemory && s.TableName == "" {
		return fmt.Errorf("DYNAMODB_TABLE_NAME is required for store driver %q", s.Driver)
	}
	return nil
}

type DynamoDBConfig struct {
	Region   string `env:"REGION" envDefault:"eu-north-1"`
	Endpoint string `env:"ENDPOINT"`
}

type DatabaseConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"catalog"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	AuthDB   string `env:"AUTH_DB" envDefault:"admin"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"product-events"`
	GroupID string   `env:"GROUP_ID" envDefault:"product-catalog"`
}

type ClientConfig struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:8080" validate:"url"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when kafka is enabled")
	}
	return nil
}
