package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SOURCE_URL", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Dashboard.SourceURL != "http://localhost:9090/v1/users" {
		t.Errorf("Unexpected source URL %q", cfg.Dashboard.SourceURL)
	}
	if cfg.Dashboard.SourceTimeout != 10*time.Second {
		t.Errorf("Expected 10s source timeout, got %v", cfg.Dashboard.SourceTimeout)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected json log format, got %q", cfg.Log.Format)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SOURCE_URL", "https://api.example.com/users")
	t.Setenv("SOURCE_TIMEOUT", "3s")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Dashboard.SourceURL != "https://api.example.com/users" {
		t.Errorf("Unexpected source URL %q", cfg.Dashboard.SourceURL)
	}
	if cfg.Dashboard.SourceTimeout != 3*time.Second {
		t.Errorf("Expected 3s, got %v", cfg.Dashboard.SourceTimeout)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("Invalid int should fall back to default, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Log.Format != "pretty" {
		t.Errorf("Expected pretty format in development, got %q", cfg.Log.Format)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Host: "localhost", Name: "db"},
			Dashboard: DashboardConfig{
				SourceURL:     "http://localhost:8080/v1/users",
				SourceTimeout: time.Second,
				Timezone:      "UTC",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: true},
		{name: "missing db name", mutate: func(c *Config) { c.Database.Name = "" }, wantErr: true},
		{name: "relative source url", mutate: func(c *Config) { c.Dashboard.SourceURL = "/v1/users" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Dashboard.SourceTimeout = 0 }, wantErr: true},
		{name: "unknown timezone", mutate: func(c *Config) { c.Dashboard.Timezone = "Mars/Olympus" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
