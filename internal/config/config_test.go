package config

import (
	"io"
	"log"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr=%q", cfg.HTTPAddr)
	}
	if cfg.StoreDriver != "postgres" {
		t.Fatalf("StoreDriver=%q", cfg.StoreDriver)
	}
	if cfg.JWTTTL != 7*24*time.Hour {
		t.Fatalf("JWTTTL=%s", cfg.JWTTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("CORSOrigins=%v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()
	if cfg.StoreDriver != "memory" {
		t.Fatalf("StoreDriver=%q", cfg.StoreDriver)
	}
	if cfg.JWTTTL != 2*time.Hour || !cfg.CookieSecure {
		t.Fatalf("ttl=%s secure=%t", cfg.JWTTTL, cfg.CookieSecure)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins=%v", cfg.CORSOrigins)
	}
}

func init() {
	log.SetOutput(io.Discard)
}
