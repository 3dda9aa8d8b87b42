package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// CartStoreBackend selects the durable cart record: "redis" or "mongo".
	CartStoreBackend string `envconfig:"CART_STORE_BACKEND" default:"redis"`
	RedisAddr        string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword    string `envconfig:"REDIS_PASSWORD" default:""`
	MongoURI         string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName      string `envconfig:"MONGO_DB_NAME" default:"electromart"`

	CatalogDBPath  string `envconfig:"CATALOG_DB_PATH" default:"./internal/catalog/catalog.db"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"./internal/catalog/migrations"`

	ExportDir string `envconfig:"EXPORT_DIR" default:"./invoices"`

	// KafkaBrokers enables cart-event publishing when non-empty.
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
