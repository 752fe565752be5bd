package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadDefaults tests that default configuration values are loaded correctly.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}

	// Test Server defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected default server host '0.0.0.0', got '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Expected default server port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected default read timeout 30s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Expected default write timeout 30s, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Expected default shutdown timeout 10s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.Debug != false {
		t.Errorf("Expected default debug false, got %v", cfg.Server.Debug)
	}

	// Test Allocator defaults
	if cfg.Allocator.Subnet != "172.20.0.0/16" {
		t.Errorf("Expected default subnet '172.20.0.0/16', got '%s'", cfg.Allocator.Subnet)
	}

	// Test Seed defaults
	if cfg.Seed.Enabled != true {
		t.Errorf("Expected default seed enabled true, got %v", cfg.Seed.Enabled)
	}

	// Test Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default logging level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected default logging format 'json', got '%s'", cfg.Logging.Format)
	}

	// Test Security defaults
	if cfg.Security.RateLimit != 100 {
		t.Errorf("Expected default rate limit 100, got %d", cfg.Security.RateLimit)
	}
	if len(cfg.Security.AllowedOrigins) != 1 || cfg.Security.AllowedOrigins[0] != "*" {
		t.Errorf("Expected default allowed origins ['*'], got %v", cfg.Security.AllowedOrigins)
	}
}

// TestLoadFromFile tests loading configuration from a YAML file.
func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
server:
  host: 127.0.0.1
  port: 9090
  debug: true
allocator:
  subnet: 10.1.0.0/24
seed:
  enabled: false
security:
  rate_limit: 5
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected server host '127.0.0.1', got '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Expected server port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Debug != true {
		t.Errorf("Expected debug true, got %v", cfg.Server.Debug)
	}
	if cfg.Allocator.Subnet != "10.1.0.0/24" {
		t.Errorf("Expected subnet '10.1.0.0/24', got '%s'", cfg.Allocator.Subnet)
	}
	if cfg.Seed.Enabled != false {
		t.Errorf("Expected seed enabled false, got %v", cfg.Seed.Enabled)
	}
	if cfg.Security.RateLimit != 5 {
		t.Errorf("Expected rate limit 5, got %d", cfg.Security.RateLimit)
	}
}

// TestLoadEnvOverride tests that environment variables override defaults.
func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CACHIUM_SERVER_PORT", "6000")
	t.Setenv("CACHIUM_ALLOCATOR_SUBNET", "192.168.10.0/24")

	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 6000 {
		t.Errorf("Expected server port 6000 from env, got %d", cfg.Server.Port)
	}
	if cfg.Allocator.Subnet != "192.168.10.0/24" {
		t.Errorf("Expected subnet '192.168.10.0/24' from env, got '%s'", cfg.Allocator.Subnet)
	}
}

// TestLoadInvalidConfig tests validation of bad configuration values.
func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "port out of range",
			env:  map[string]string{"CACHIUM_SERVER_PORT": "99999"},
		},
		{
			name: "malformed subnet",
			env:  map[string]string{"CACHIUM_ALLOCATOR_SUBNET": "not-a-subnet"},
		},
		{
			name: "ipv6 subnet rejected",
			env:  map[string]string{"CACHIUM_ALLOCATOR_SUBNET": "fd00::/64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load("nonexistent.yaml"); err == nil {
				t.Error("Load() error = nil, want validation error")
			}
		})
	}
}
