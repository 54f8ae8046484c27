package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/facegate/facegate/internal/detect"
)

//go:embed thresholds.yaml
var thresholdsYAML []byte

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Model    ModelConfig
	Match    MatchConfig
	Detect   detect.Config
}

type ServerConfig struct {
	Host string // defaults to 0.0.0.0
	Port int    // defaults to 8080
}

// Addr returns the host:port listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type ModelConfig struct {
	URL string // defaults to http://localhost:8000
	Dim int    // defaults to 512
}

type MatchConfig struct {
	Threshold float64 // cosine similarity cutoff, defaults to 0.6
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float in (0, 1].
// Returns the default value if the env var is unset, empty, or out of range.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
		return f
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	// Embedded yaml overlays the compiled defaults, so a knob missing from
	// the file keeps its default instead of zeroing out.
	detectCfg := detect.DefaultConfig()
	if err := yaml.Unmarshal(thresholdsYAML, &detectCfg); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded thresholds.yaml: " + err.Error())
	}

	return &Config{
		Server: ServerConfig{
			Host: envString("SERVER_HOST", "0.0.0.0"),
			Port: envInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Model: ModelConfig{
			URL: envString("MODEL_URL", "http://localhost:8000"),
			Dim: envInt("MODEL_DIM", 512),
		},
		Match: MatchConfig{
			Threshold: envFloat("MATCH_THRESHOLD", 0.6),
		},
		Detect: detectCfg,
	}
}
