package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"CIVICFLOW_API_URL", "CIVICFLOW_APP_NAME", "CIVICFLOW_STATE_DIR", "CIVICFLOW_RUNTIME_DIR",
		"CIVICFLOW_LOG_LEVEL", "CIVICFLOW_LOG_FORMAT", "CIVICFLOW_HTTP_TIMEOUT",
		"CIVICFLOW_HTTP_RETRIES", "CIVICFLOW_LISTEN_ADDR",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Errorf("Load() = %+v, want %+v", c, Default())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CIVICFLOW_API_URL", "https://api.example.org")
	t.Setenv("CIVICFLOW_HTTP_TIMEOUT", "15s")
	t.Setenv("CIVICFLOW_HTTP_RETRIES", "0")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.APIURL != "https://api.example.org" {
		t.Errorf("APIURL = %q", c.APIURL)
	}
	if c.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v", c.HTTPTimeout)
	}
	if c.HTTPRetries != 0 {
		t.Errorf("HTTPRetries = %d", c.HTTPRetries)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	os.Unsetenv("CIVICFLOW_APP_NAME")
	t.Cleanup(func() { os.Unsetenv("CIVICFLOW_APP_NAME") })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CIVICFLOW_APP_NAME=cityops\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.AppName != "cityops" {
		t.Errorf("AppName = %q, want cityops", c.AppName)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"loopback http", func(c *Config) { c.APIURL = "http://127.0.0.1:8080" }, false},
		{"localhost http", func(c *Config) { c.APIURL = "http://localhost:3000" }, false},
		{"remote http", func(c *Config) { c.APIURL = "http://api.example.org" }, true},
		{"no host", func(c *Config) { c.APIURL = "https://" }, true},
		{"ftp", func(c *Config) { c.APIURL = "ftp://example.org" }, true},
		{"empty app", func(c *Config) { c.AppName = "" }, true},
		{"negative retries", func(c *Config) { c.HTTPRetries = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDirs(t *testing.T) {
	c := Default()
	c.StateDir = "/var/lib/civicflow"
	c.RuntimeDir = "/run/civicflow"
	if d, _ := c.DurableDir(); d != "/var/lib/civicflow" {
		t.Errorf("DurableDir = %q", d)
	}
	if d := c.EphemeralDir(); d != "/run/civicflow" {
		t.Errorf("EphemeralDir = %q", d)
	}

	c = Default()
	t.Setenv("HOME", "/home/ops")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	if d, _ := c.DurableDir(); d != filepath.Join("/home/ops", ".civicflow") {
		t.Errorf("DurableDir = %q", d)
	}
	if d := c.EphemeralDir(); d != filepath.Join("/run/user/1000", "civicflow") {
		t.Errorf("EphemeralDir = %q", d)
	}
}
