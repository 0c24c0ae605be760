package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/v1/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com/v1" {
		t.Errorf("APIBaseURL = %q, want trailing slash trimmed", cfg.APIBaseURL)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.APITimeout != 10*time.Second {
		t.Errorf("APITimeout = %s, want 10s", cfg.APITimeout)
	}
	if cfg.StorageEnabled() {
		t.Error("StorageEnabled() = true without R2 settings")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing base url", map[string]string{"API_BASE_URL": ""}},
		{"non http base url", map[string]string{"API_BASE_URL": "ftp://api"}},
		{"port out of range", map[string]string{"API_BASE_URL": "http://api", "SERVER_PORT": "70000"}},
		{"unknown log level", map[string]string{"API_BASE_URL": "http://api", "LOG_LEVEL": "trace"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("Load() error = nil, want error")
			}
		})
	}
}
