package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"STOREFRONT_USERS_URL", "STOREFRONT_PRODUCTS_URL", "STOREFRONT_INVENTORY_URL",
		"STOREFRONT_ORDERS_URL",
		"STOREFRONT_REQUEST_TIMEOUT", "STOREFRONT_AUTH_TIMEOUT", "STOREFRONT_DATA_DIR",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.UsersURL != "http://localhost:8080/api/users" {
		t.Fatalf("UsersURL = %q", cfg.UsersURL)
	}
	if cfg.OrdersURL != "http://localhost:8080/api/orders" {
		t.Fatalf("OrdersURL = %q", cfg.OrdersURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.AuthTimeout != 5*time.Second {
		t.Fatalf("AuthTimeout = %v", cfg.AuthTimeout)
	}
	if cfg.DataDir != "" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_USERS_URL", "https://shop.example.com/api/users")
	t.Setenv("STOREFRONT_AUTH_TIMEOUT", "2s")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "garbage")
	t.Setenv("STOREFRONT_DATA_DIR", "/tmp/shop")

	cfg := Load()
	if cfg.UsersURL != "https://shop.example.com/api/users" {
		t.Fatalf("UsersURL = %q", cfg.UsersURL)
	}
	if cfg.AuthTimeout != 2*time.Second {
		t.Fatalf("AuthTimeout = %v", cfg.AuthTimeout)
	}
	// unparseable durations fall back to the default
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.DataDir != "/tmp/shop" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
}
