package config

import "fmt"

var DefaultConfig = []byte(`
application: "fee-calculator"

logger:
  level: "info"

server:
  addr: ":8080"

metrics:
  addr: ":9090"

engine:
  cache_ttl_minutes: 30
  max_batch_workers: 32
  max_batch_size: 10000

history:
  max_entries: 10000
  trim_batch: 1000
  max_page_size: 1000

signing:
  secret_key: ""
`)

type Config struct {
	Application string  `koanf:"application"`
	Logger      Logger  `koanf:"logger"`
	Server      Server  `koanf:"server"`
	Metrics     Metrics `koanf:"metrics"`
	Engine      Engine  `koanf:"engine"`
	History     History `koanf:"history"`
	Signing     Signing `koanf:"signing"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Metrics struct {
	Addr string `koanf:"addr"`
}

type Engine struct {
	CacheTTLMinutes int `koanf:"cache_ttl_minutes"`
	MaxBatchWorkers int `koanf:"max_batch_workers"`
	MaxBatchSize    int `koanf:"max_batch_size"`
}

type History struct {
	MaxEntries  int `koanf:"max_entries"`
	TrimBatch   int `koanf:"trim_batch"`
	MaxPageSize int `koanf:"max_page_size"`
}

type Signing struct {
	SecretKey string `koanf:"secret_key"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Application == "" {
		return fmt.Errorf("application cannot be empty")
	}
	if c.Logger.Level == "" {
		return fmt.Errorf("logger.level cannot be empty")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Engine.CacheTTLMinutes <= 0 {
		return fmt.Errorf("engine.cache_ttl_minutes must be positive")
	}
	if c.Engine.MaxBatchWorkers <= 0 {
		return fmt.Errorf("engine.max_batch_workers must be positive")
	}
	if c.Engine.MaxBatchSize <= 0 {
		return fmt.Errorf("engine.max_batch_size must be positive")
	}
	if c.History.MaxEntries <= 0 || c.History.TrimBatch <= 0 {
		return fmt.Errorf("history limits must be positive")
	}
	if c.History.TrimBatch > c.History.MaxEntries {
		return fmt.Errorf("history.trim_batch cannot exceed history.max_entries")
	}
	return nil
}
