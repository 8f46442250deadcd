package config

import (
	"testing"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/huffman"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "HUFF_ALPHABET", "RUN_CACHE_SIZE", "MQTT_BROKER", "MQTT_TOPIC", "MQTT_CLIENT_ID", "HUFF_SERVER", "HUFF_ROOT"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Alphabet != huffman.Text || cfg.RunCacheSize != 128 || cfg.MQTTTopic != "huff/runs" || cfg.Root != "." {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.DatabaseURL != "" || cfg.MQTTBroker != "" {
		t.Fatalf("optional backends set by default: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HUFF_ALPHABET", "bytes")
	t.Setenv("RUN_CACHE_SIZE", "16")
	t.Setenv("DATABASE_URL", "postgres://localhost/huff")
	t.Setenv("HUFF_ROOT", "/srv/huff")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" || cfg.Alphabet != huffman.Bytes || cfg.RunCacheSize != 16 || cfg.DatabaseURL != "postgres://localhost/huff" || cfg.Root != "/srv/huff" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string][2]string{
		"alphabet":   {"HUFF_ALPHABET", "latin1"},
		"cache size": {"RUN_CACHE_SIZE", "-3"},
		"cache nan":  {"RUN_CACHE_SIZE", "lots"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("Load accepted %s=%q", kv[0], kv[1])
			}
		})
	}
}
