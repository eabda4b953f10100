package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration, loaded from a TOML file
// with environment overrides applied afterwards so deployments can supply
// secrets without touching the file.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Web      WebConfig      `toml:"web"`
	DB       DBConfig       `toml:"db"`
	Adapters AdaptersConfig `toml:"adapters"`
	Spaces   SpacesConfig   `toml:"spaces"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DBConfig points at the MongoDB deployment. An empty URI means the store
// is not configured; the server still starts and the diagnostic endpoint
// reports the state.
type DBConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// AdaptersConfig selects mock or live behavior per external provider.
// The choice is made once at startup; adapters never branch at runtime.
type AdaptersConfig struct {
	UseMocks   bool             `toml:"use_mocks"`
	PokemonTCG PokemonTCGConfig `toml:"pokemontcg"`
	TCGPlayer  TCGPlayerConfig  `toml:"tcgplayer"`
}

type PokemonTCGConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

type TCGPlayerConfig struct {
	TokenURL   string `toml:"token_url"`
	BaseURL    string `toml:"base_url"`
	PublicKey  string `toml:"public_key"`
	PrivateKey string `toml:"private_key"`
}

// SpacesConfig configures the optional scan-image archive bucket.
type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	ScanRoot string `toml:"scanroot"`
}

const (
	defaultPokemonTCGBaseURL = "https://api.pokemontcg.io/v2"
	defaultTCGPlayerTokenURL = "https://api.tcgplayer.com/token"
	defaultTCGPlayerBaseURL  = "https://api.tcgplayer.com/pricing"
)

// LoadConfig reads the TOML file at path. A missing file is not an error:
// the defaults plus environment overrides are enough to run in mock mode.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	applyEnvOverrides(cfg)
	cfg.applyDefaults()
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Web: WebConfig{Host: "0.0.0.0", Port: 8000},
		Adapters: AdaptersConfig{
			UseMocks: true,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Adapters.PokemonTCG.BaseURL == "" {
		c.Adapters.PokemonTCG.BaseURL = defaultPokemonTCGBaseURL
	}
	if c.Adapters.TCGPlayer.TokenURL == "" {
		c.Adapters.TCGPlayer.TokenURL = defaultTCGPlayerTokenURL
	}
	if c.Adapters.TCGPlayer.BaseURL == "" {
		c.Adapters.TCGPlayer.BaseURL = defaultTCGPlayerBaseURL
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8000
	}
}

func applyEnvOverrides(c *Config) {
	if v := os.Getenv("MONGODB_URI"); v != "" {
		c.DB.URI = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" && c.DB.URI == "" {
		c.DB.URI = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		c.DB.Database = v
	}
	if v := os.Getenv("USE_MOCK_ADAPTERS"); v != "" {
		c.Adapters.UseMocks = parseBool(v)
	}
	if v := os.Getenv("POKEMONTCG_API_KEY"); v != "" {
		c.Adapters.PokemonTCG.APIKey = v
	}
	if v := os.Getenv("TCGPLAYER_PUBLIC_KEY"); v != "" {
		c.Adapters.TCGPlayer.PublicKey = v
	}
	if v := os.Getenv("TCGPLAYER_PRIVATE_KEY"); v != "" {
		c.Adapters.TCGPlayer.PrivateKey = v
	}
	if v := os.Getenv("SPACES_KEY"); v != "" {
		c.Spaces.Key = v
	}
	if v := os.Getenv("SPACES_SECRET"); v != "" {
		c.Spaces.Secret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Web.Port = p
		}
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// StoreConfigured reports whether a document store was configured at all.
func (c *Config) StoreConfigured() bool {
	return c.DB.URI != "" && c.DB.Database != ""
}

// SpacesConfigured reports whether the scan archive bucket is usable.
func (c *Config) SpacesConfigured() bool {
	return c.Spaces.Key != "" && c.Spaces.Secret != "" && c.Spaces.Bucket != "" && c.Spaces.Region != ""
}
