package model

import "time"

// Default master data endpoints
const (
	DefaultCardsURL    = "https://sekaimaster.exmeaning.com/master/cards.json"
	DefaultSuppliesURL = "https://sekaimaster.exmeaning.com/master/cardSupplies.json"
)

// Config holds the complete supplycheck configuration
type Config struct {
	Sources      SourceConfig    `yaml:"sources" mapstructure:"sources"`
	HTTP         HTTPConfig      `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig    `yaml:"output" mapstructure:"output"`
}

// SourceConfig names the datasets to fetch
type SourceConfig struct {
	CardsURL    string `yaml:"cards_url" mapstructure:"cards_url"`
	SuppliesURL string `yaml:"supplies_url" mapstructure:"supplies_url"`
}

// HTTPConfig configures the dataset fetcher
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`         // Per request
	RunTimeout   time.Duration `yaml:"run_timeout" mapstructure:"run_timeout"` // Whole run
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// RateLimitConfig paces requests to a single host
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls diagnostic output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Sources: SourceConfig{
			CardsURL:    DefaultCardsURL,
			SuppliesURL: DefaultSuppliesURL,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			RunTimeout:   2 * time.Minute,
			UserAgent:    "supplycheck/0.1 (+https://github.com/ppiankov/supplycheck)",
			MaxBodyBytes: 64 << 20,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         2,
		},
	}
}
