// Package config loads runtime settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"mortgage-afford/domain"
)

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Capacity  int           `yaml:"capacity"`
	Window    time.Duration `yaml:"window"`
	Backend   string        `yaml:"backend"` // "memory" or "redis"
	RedisAddr string        `yaml:"redis_addr"`
}

type RateFeedConfig struct {
	URL     string             `yaml:"url"`
	Timeout time.Duration      `yaml:"timeout"`
	Static  []domain.RateQuote `yaml:"static"`
}

type AdvisorConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Defaults seed requests that leave fields out, mirroring the initial
// slider positions of the calculator.
type Defaults struct {
	TermYears         int     `yaml:"term_years"`
	MaxMonthlyPayment float64 `yaml:"max_monthly_payment"`
	DownPayment       float64 `yaml:"down_payment"`
}

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	RateFeed  RateFeedConfig  `yaml:"rate_feed"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
	Log       LogConfig       `yaml:"log"`
	Defaults  Defaults        `yaml:"defaults"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Capacity:  5,
			Window:    time.Minute,
			Backend:   "memory",
			RedisAddr: "localhost:6379",
		},
		RateFeed: RateFeedConfig{
			URL:     "https://themortgagereports.com/mortgage-rates-now",
			Timeout: 10 * time.Second,
		},
		Advisor: AdvisorConfig{
			Model: "gpt-4o-mini",
		},
		Log: LogConfig{
			Level: "info",
		},
		Defaults: Defaults{
			TermYears:         30,
			MaxMonthlyPayment: 5_000,
			DownPayment:       100_000,
		},
	}
}

// Load builds the configuration. An empty path skips the YAML file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Defaults.TermYears <= 0 {
		return errors.New("defaults.term_years must be positive")
	}
	if !nonNegative(c.Defaults.MaxMonthlyPayment) {
		return errors.New("defaults.max_monthly_payment must be a non-negative number")
	}
	if !nonNegative(c.Defaults.DownPayment) {
		return errors.New("defaults.down_payment must be a non-negative number")
	}
	if c.RateLimit.Capacity <= 0 {
		return errors.New("rate_limit.capacity must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("rate_limit.window must be positive")
	}
	switch c.RateLimit.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("rate_limit.backend %q not supported", c.RateLimit.Backend)
	}
	return nil
}

func applyEnv(c *Config) {
	c.HTTP.Addr = getenv("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.ShutdownTimeout = durenvs("SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)

	c.RateLimit.Capacity = atoienv("RATE_LIMIT_CAPACITY", c.RateLimit.Capacity)
	c.RateLimit.Window = durenvs("RATE_LIMIT_WINDOW", c.RateLimit.Window)
	c.RateLimit.Backend = getenv("RATE_LIMIT_BACKEND", c.RateLimit.Backend)
	c.RateLimit.RedisAddr = getenv("REDIS_ADDR", c.RateLimit.RedisAddr)

	c.RateFeed.URL = getenv("RATE_FEED_URL", c.RateFeed.URL)
	c.RateFeed.Timeout = durenvs("RATE_FEED_TIMEOUT", c.RateFeed.Timeout)

	c.Advisor.APIKey = getenv("OPENAI_API_KEY", c.Advisor.APIKey)
	c.Advisor.Model = getenv("OPENAI_MODEL", c.Advisor.Model)

	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = boolenv("LOG_PRETTY", c.Log.Pretty)

	c.Defaults.TermYears = atoienv("DEFAULT_TERM_YEARS", c.Defaults.TermYears)
	c.Defaults.MaxMonthlyPayment = floatenv("DEFAULT_MAX_MONTHLY_PAYMENT", c.Defaults.MaxMonthlyPayment)
	c.Defaults.DownPayment = floatenv("DEFAULT_DOWN_PAYMENT", c.Defaults.DownPayment)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func floatenv(key string, def float64) float64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// durenvs reads a whole number of seconds.
func durenvs(key string, def time.Duration) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	sec, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(sec) * time.Second
}
