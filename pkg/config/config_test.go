package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/waterants/sketchcoach/pkg/analysis"
	"github.com/waterants/sketchcoach/pkg/tasks"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketchcoach.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// clearEnv blanks variables Load reads; empty values are ignored by env.Parse.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HOST", "PORT", "SKETCHCOACH_ALLOWED_ORIGIN", "SKETCHCOACH_STATIC_DIR",
		"SKETCHCOACH_CACHE", "SKETCHCOACH_CACHE_DIR", "SKETCHCOACH_REDIS_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.AllowedOrigin != DefaultAllowedOrigin {
		t.Errorf("AllowedOrigin = %q", cfg.AllowedOrigin)
	}
	if cfg.MaxImagePixels != analysis.DefaultMaxPixels {
		t.Errorf("MaxImagePixels = %d", cfg.MaxImagePixels)
	}
	if cfg.Prompt != tasks.DefaultPrompt {
		t.Errorf("Prompt = %+v", cfg.Prompt)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
host = "127.0.0.1"
port = 9090
allowed_origin = "http://localhost:3000"
shutdown_timeout = "3s"

[cache]
backend = "file"
dir = "/tmp/sketchcoach"

[next_task]
id = "sphere_001"
image_url = "/static/prompts/sphere_001.png"
`)

	clearEnv(t)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.AllowedOrigin != "http://localhost:3000" {
		t.Errorf("AllowedOrigin = %q", cfg.AllowedOrigin)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.Cache.Backend != "file" || cfg.Cache.Dir != "/tmp/sketchcoach" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.NextTask.ID != "sphere_001" {
		t.Errorf("NextTask = %+v", cfg.NextTask)
	}
	if cfg.Prompt != tasks.DefaultPrompt {
		t.Errorf("Prompt should keep its default, got %+v", cfg.Prompt)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port = 9090\n")
	clearEnv(t)
	t.Setenv("PORT", "7070")
	t.Setenv("HOST", "localhost")
	t.Setenv("SKETCHCOACH_CACHE", "redis")
	t.Setenv("SKETCHCOACH_REDIS_ADDR", "cache:6379")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr() != "localhost:7070" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	opts := cfg.CacheOptions()
	if opts.Backend != "redis" || opts.Redis.Addr != "cache:6379" {
		t.Errorf("CacheOptions = %+v", opts)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad toml", "port = ", "read config"},
		{"unknown key", "colour = \"blue\"\n", "unknown key"},
		{"bad port", "port = 70000\n", "port"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", "unknown cache backend"},
		{"file without dir", "[cache]\nbackend = \"file\"\n", "cache.dir"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", "cache.redis_addr"},
		{"prompt without url", "[prompt]\nid = \"x\"\nimage_url = \"\"\n", "prompt"},
		{"zero upload", "max_upload_bytes = 0\n", "max_upload_bytes"},
		{"zero shutdown timeout", "shutdown_timeout = \"0s\"\n", "shutdown_timeout"},
		{"negative pixel limit", "max_image_pixels = -1\n", "max_image_pixels"},
	}

	clearEnv(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestLoadBadEnv(t *testing.T) {
	t.Setenv("PORT", "eighty")
	if _, err := Load(""); err == nil {
		t.Error("non-numeric PORT should fail")
	}
}
