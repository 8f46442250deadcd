package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/huffman"
)

type Config struct {
	Port         string
	DatabaseURL  string // 비어 있으면 메모리 저장소
	Alphabet     huffman.Alphabet
	RunCacheSize int
	MQTTBroker   string // 비어 있으면 알림 없음
	MQTTTopic    string
	MQTTClientID string
	ServerURL    string
	Root         string // 서버가 읽고 쓸 수 있는 디렉터리
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:         getenv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		MQTTBroker:   os.Getenv("MQTT_BROKER"),
		MQTTTopic:    getenv("MQTT_TOPIC", "huff/runs"),
		MQTTClientID: getenv("MQTT_CLIENT_ID", "huff-server"),
		ServerURL:    getenv("HUFF_SERVER", "http://localhost:8080"),
		Root:         getenv("HUFF_ROOT", "."),
	}

	a, err := huffman.ParseAlphabet(os.Getenv("HUFF_ALPHABET"))
	if err != nil {
		return Config{}, fmt.Errorf("HUFF_ALPHABET: %w", err)
	}
	cfg.Alphabet = a

	size, err := strconv.Atoi(getenv("RUN_CACHE_SIZE", "128"))
	if err != nil || size <= 0 {
		return Config{}, fmt.Errorf("RUN_CACHE_SIZE: want a positive integer, got %q", os.Getenv("RUN_CACHE_SIZE"))
	}
	cfg.RunCacheSize = size
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
