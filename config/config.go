// Package config loads raceroute settings from YAML.
//
//	routing:
//	  fill_limit: 0.4
//	  field_penalty: 3
//	worker:
//	  count: 4
//	  metrics_addr: ":9090"
//	log:
//	  level: debug
//	raceways:
//	  - {id: T1, start: [0,0,0], end: [40,0,0], width: 12, height: 4}
//
// Missing keys keep their defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/route"
)

// ErrBadConfig indicates a configuration value out of range.
var ErrBadConfig = errors.New("config: invalid configuration")

// Config is the full settings file.
type Config struct {
	Routing  route.Options      `yaml:"routing"`
	Worker   Worker             `yaml:"worker"`
	Log      Log                `yaml:"log"`
	Raceways []capacity.Raceway `yaml:"raceways,omitempty"`
}

// Worker configures the serve command.
type Worker struct {
	Count       int    `yaml:"count"`
	QueueSize   int    `yaml:"queue_size"`
	CacheSize   int    `yaml:"cache_size"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Routing: route.DefaultOptions(),
		Worker: Worker{
			Count:     runtime.NumCPU(),
			QueueSize: 64,
			CacheSize: 16,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Routing = cfg.Routing.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Routing.Validate(); err != nil {
		return err
	}
	if c.Worker.Count < 1 {
		return fmt.Errorf("%w: worker.count %d < 1", ErrBadConfig, c.Worker.Count)
	}
	if c.Worker.QueueSize < 0 || c.Worker.CacheSize < 0 {
		return fmt.Errorf("%w: negative worker.queue_size or worker.cache_size", ErrBadConfig)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrBadConfig, c.Log.Level)
	}
	return nil
}

// Logger builds a zap logger for l: JSON production output, or
// human-readable development output.
func (l Log) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log.level %q", ErrBadConfig, l.Level)
	}
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	// stdout carries responses.
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
