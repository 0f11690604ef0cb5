// Package config loads client configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the base URLs of the backend services and client timeouts.
// Each URL carries its full path prefix; request paths are always relative.
type Config struct {
	UsersURL     string
	ProductsURL  string
	InventoryURL string
	OrdersURL    string

	RequestTimeout time.Duration
	AuthTimeout    time.Duration

	// DataDir overrides the default config-dir location of local state.
	DataDir string
}

// Load reads an optional .env file and then the environment, falling back to
// the local-gateway defaults.
func Load() *Config {
	_ = godotenv.Load() // best effort; env vars win anyway

	return &Config{
		UsersURL:       getEnv("STOREFRONT_USERS_URL", "http://localhost:8080/api/users"),
		ProductsURL:    getEnv("STOREFRONT_PRODUCTS_URL", "http://localhost:8080/api/products"),
		InventoryURL:   getEnv("STOREFRONT_INVENTORY_URL", "http://localhost:8080/api/inventory"),
		OrdersURL:      getEnv("STOREFRONT_ORDERS_URL", "http://localhost:8080/api/orders"),
		RequestTimeout: getDuration("STOREFRONT_REQUEST_TIMEOUT", 15*time.Second),
		AuthTimeout:    getDuration("STOREFRONT_AUTH_TIMEOUT", 5*time.Second),
		DataDir:        os.Getenv("STOREFRONT_DATA_DIR"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
