package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/slotgate/internal/domain/match"
)

// Config holds the slotgate API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Gate    GateConfig    `yaml:"gate"`
	Compare CompareConfig `yaml:"compare"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// GateConfig holds slot gate settings.
type GateConfig struct {
	MatchStrategy    string `yaml:"match_strategy"`     // exact, substring (default), fuzzy
	FuzzyMaxDistance int    `yaml:"fuzzy_max_distance"` // fuzzy only
	MaxBatchSize     int    `yaml:"max_batch_size"`
}

// CompareConfig holds settings for the similarity-vs-gate comparison endpoint.
type CompareConfig struct {
	MockScore *float64 `yaml:"mock_score"` // score given to documents without one; unset = 0.92
	MinScore  float64  `yaml:"min_score"`  // default post-filter, 0 = off
}

const defaultMockScore = 0.92

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 4 << 20
	}
	if c.Gate.MatchStrategy == "" {
		c.Gate.MatchStrategy = string(match.Substring)
	}
	if c.Gate.FuzzyMaxDistance <= 0 {
		c.Gate.FuzzyMaxDistance = match.DefaultFuzzyMaxDistance
	}
	if c.Gate.MaxBatchSize <= 0 {
		c.Gate.MaxBatchSize = 500
	}
	if c.Compare.MockScore == nil {
		score := defaultMockScore
		c.Compare.MockScore = &score
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if _, err := match.ParseStrategy(c.Gate.MatchStrategy); err != nil {
		return fmt.Errorf("gate.match_strategy: %w", err)
	}
	if s := c.Compare.MockScore; s != nil && (*s < 0 || *s > 1) {
		return fmt.Errorf("compare.mock_score must be within [0, 1], got %g", *s)
	}
	if c.Compare.MinScore < 0 || c.Compare.MinScore > 1 {
		return fmt.Errorf("compare.min_score must be within [0, 1], got %g", c.Compare.MinScore)
	}
	return nil
}

// Matcher builds the configured constraint matcher.
func (g GateConfig) Matcher() (match.Matcher, error) {
	st, err := match.ParseStrategy(g.MatchStrategy)
	if err != nil {
		return match.Matcher{}, err
	}
	return match.New(st, g.FuzzyMaxDistance)
}

// findConfigPath locates config/<env>.yaml in the working directory or the project root.
func findConfigPath(env string) string {
	filename := env + ".yaml"

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(m []byte) []byte {
		expr := string(m[2 : len(m)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
