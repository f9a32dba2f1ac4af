package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DYNAMODB_TABLE_NAME", "products-dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverDynamoDB, cfg.Store.Driver)
	assert.Equal(t, "products-dev", cfg.Store.TableName)
	assert.Equal(t, "eu-north-1", cfg.DynamoDB.Region)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "*", cfg.Server.CORSOrigins)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestRequireTable(t *testing.T) {
	t.Setenv("DYNAMODB_TABLE_NAME", "")
	t.Setenv("STORE_DRIVER", DriverMongoDB)

	cfg, err := Load()
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Store.RequireTable(), "DYNAMODB_TABLE_NAME")

	assert.NoError(t, StoreConfig{Driver: DriverMemory}.RequireTable())
	assert.NoError(t, StoreConfig{Driver: DriverDynamoDB, TableName: "products"}.RequireTable())
}

func TestLoadMemoryDriverWithoutTable(t *testing.T) {
	t.Setenv("DYNAMODB_TABLE_NAME", "")
	t.Setenv("STORE_DRIVER", DriverMemory)
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "driver", key: "STORE_DRIVER", value: "postgres"},
		{name: "log level", key: "LOG_LEVEL", value: "verbose"},
		{name: "client url", key: "CATALOG_API_BASE_URL", value: "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DYNAMODB_TABLE_NAME", "products")
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
