package model

import "time"

// Config is the effective configuration after defaults, config file,
// environment and flags have been merged.
type Config struct {
	G2P          G2PConfig          `yaml:"g2p" mapstructure:"g2p"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// G2PConfig controls sentence conversion
type G2PConfig struct {
	SingleOutput     bool `yaml:"single_output" mapstructure:"single_output"`
	MergeConjunction bool `yaml:"merge_conjunction" mapstructure:"merge_conjunction"`
	ConvertNumbers   bool `yaml:"convert_numbers" mapstructure:"convert_numbers"`
}

// CacheConfig controls the Word Cache. Dir enables the persistent layer.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// HTTPConfig controls URL inputs
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// RateLimitingConfig limits requests per host
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // text, json or markdown
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// Output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		G2P: G2PConfig{
			SingleOutput:     true,
			MergeConjunction: true,
			ConvertNumbers:   false,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     0,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		HTTP: HTTPConfig{
			Timeout:       15 * time.Second,
			UserAgent:     "kurdg2p/0.1 (+https://github.com/ppiankov/kurdg2p)",
			MaxBodyBytes:  5 * 1024 * 1024,
			RespectRobots: true,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}
