package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"

	"github.com/egonelbre/exp-huffman-compression/codec"
	"github.com/egonelbre/exp-huffman-compression/freq"
	"github.com/egonelbre/exp-huffman-compression/internal/logger"
)

// Prefix is prepended to every environment variable name.
const Prefix = "HUFF"

type Config struct {
	Workers   int    `envconfig:"WORKERS" default:"0"`
	ChunkSize int64  `envconfig:"CHUNK_SIZE" default:"1048576"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	Stats     bool   `envconfig:"STATS" default:"false"`
}

// Load reads the configuration from HUFF_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.ChunkSize <= 0 {
		return Config{}, fmt.Errorf("config: %s_CHUNK_SIZE must be positive, got %d", Prefix, cfg.ChunkSize)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) Level() (slog.Level, error) {
	return logger.ParseLevel(c.LogLevel)
}

// CodecOptions returns the codec options for this configuration.
func (c Config) CodecOptions(log logger.Logger) codec.Options {
	return codec.Options{
		Count: freq.Options{
			Workers:   c.Workers,
			ChunkSize: c.ChunkSize,
		},
		Log: log,
	}
}
