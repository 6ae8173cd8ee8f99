// Package config loads the scanner configuration from a YAML file.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"triscan/internal/domain"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageJournal  = "journal"
)

// Config is the resolved application configuration.
type Config struct {
	HTTPAddr        string
	TLSDomain       string
	ScanInterval    time.Duration
	ScanConcurrency int
	Storage         Storage

	// Connections and Bots are only used with the journal backend;
	// with postgres both live in the database.
	Connections []domain.APIConnection
	Bots        []domain.BotConfig
}

// Storage selects the persistence backend.
type Storage struct {
	Backend string `yaml:"backend"`
	// DSN is the postgres connection string.
	DSN string `yaml:"dsn"`
	// Dir is the journal WAL directory.
	Dir string `yaml:"dir"`
}

type configYAML struct {
	HTTPAddr        string           `yaml:"http_addr"`
	TLSDomain       string           `yaml:"tls_domain"`
	ScanInterval    time.Duration    `yaml:"scan_interval"`
	ScanConcurrency int              `yaml:"scan_concurrency"`
	Storage         Storage          `yaml:"storage"`
	Connections     []connectionYAML `yaml:"connections"`
	Bots            []botYAML        `yaml:"bots"`
}

type connectionYAML struct {
	ID           string `yaml:"id"`
	OwnerID      string `yaml:"owner_id"`
	Platform     string `yaml:"platform"`
	Label        string `yaml:"label"`
	APIKey       string `yaml:"api_key"`
	APISecret    string `yaml:"api_secret"`
	APIKeyEnv    string `yaml:"api_key_env"`
	APISecretEnv string `yaml:"api_secret_env"`
	IsTestnet    bool   `yaml:"is_testnet"`
	IsActive     *bool  `yaml:"is_active"`
}

type botYAML struct {
	ID                string   `yaml:"id"`
	OwnerID           string   `yaml:"owner_id"`
	Name              string   `yaml:"name"`
	EnabledCurrencies []string `yaml:"enabled_currencies"`
	MinProfitPercent  string   `yaml:"min_profit_percent"`
	IsActive          *bool    `yaml:"is_active"`
}

// Get parses the --config flag and loads the configuration.
func Get() (Config, error) {
	path := flag.String("config", "config.yaml", "path to yaml config")
	flag.Parse()
	return Load(*path)
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var parsed configYAML
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Config{
		HTTPAddr:        parsed.HTTPAddr,
		TLSDomain:       parsed.TLSDomain,
		ScanInterval:    parsed.ScanInterval,
		ScanConcurrency: parsed.ScanConcurrency,
		Storage:         parsed.Storage,
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = 5 * time.Minute
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = StorageJournal
	}

	switch cfg.Storage.Backend {
	case StoragePostgres:
		if cfg.Storage.DSN == "" {
			return Config{}, fmt.Errorf("storage backend %q requires 'dsn'", StoragePostgres)
		}
	case StorageJournal:
		if cfg.Storage.Dir == "" {
			cfg.Storage.Dir = "./wal/triscan"
		}
	default:
		return Config{}, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}

	now := time.Now().UTC()
	for i, c := range parsed.Connections {
		conn, err := c.toDomain(now.Add(time.Duration(i) * time.Millisecond))
		if err != nil {
			return Config{}, fmt.Errorf("connection %d: %w", i, err)
		}
		cfg.Connections = append(cfg.Connections, conn)
	}
	for i, b := range parsed.Bots {
		bot, err := b.toDomain(now)
		if err != nil {
			return Config{}, fmt.Errorf("bot %d: %w", i, err)
		}
		cfg.Bots = append(cfg.Bots, bot)
	}

	return cfg, nil
}

func (c connectionYAML) toDomain(createdAt time.Time) (domain.APIConnection, error) {
	switch c.Platform {
	case domain.PlatformBinance, domain.PlatformBybit, domain.PlatformHyperliquid:
	default:
		return domain.APIConnection{}, fmt.Errorf("unsupported platform: %s", c.Platform)
	}

	apiKey := c.APIKey
	if c.APIKeyEnv != "" {
		apiKey = os.Getenv(c.APIKeyEnv)
	}
	apiSecret := c.APISecret
	if c.APISecretEnv != "" {
		apiSecret = os.Getenv(c.APISecretEnv)
	}
	if apiSecret == "" {
		return domain.APIConnection{}, fmt.Errorf("missing API secret for connection %q", c.ID)
	}

	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return domain.APIConnection{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Platform:  c.Platform,
		Label:     c.Label,
		APIKey:    apiKey,
		APISecret: apiSecret,
		IsTestnet: c.IsTestnet,
		IsActive:  active,
		CreatedAt: createdAt,
	}, nil
}

func (b botYAML) toDomain(createdAt time.Time) (domain.BotConfig, error) {
	threshold := decimal.Zero
	if b.MinProfitPercent != "" {
		var err error
		threshold, err = decimal.NewFromString(b.MinProfitPercent)
		if err != nil {
			return domain.BotConfig{}, fmt.Errorf("incorrect 'min_profit_percent' (must be a decimal): %w", err)
		}
	}

	active := true
	if b.IsActive != nil {
		active = *b.IsActive
	}

	return domain.BotConfig{
		ID:                b.ID,
		OwnerID:           b.OwnerID,
		Name:              b.Name,
		EnabledCurrencies: b.EnabledCurrencies,
		MinProfitPercent:  threshold,
		IsActive:          active,
		CreatedAt:         createdAt,
	}, nil
}
