package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del buyer.
type Config struct {
	Buyer   BuyerConfig   `yaml:"buyer"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Discord DiscordConfig `yaml:"discord"`
	Log     LogConfig     `yaml:"log"`
}

// BuyerConfig controla qué items se escanean y qué órdenes se aceptan.
type BuyerConfig struct {
	IntervalSeconds  int      `yaml:"interval_seconds"`
	Workers          int      `yaml:"workers"`            // items evaluados en paralelo
	ItemNameContains string   `yaml:"item_name_contains"` // "" = todos los items
	OnlyVaulted      bool     `yaml:"only_vaulted"`
	MaxItems         int      `yaml:"max_items"` // 0 = sin límite
	Items            []string `yaml:"items"`     // slugs explícitos; si hay, ignora el resto de criterios de item

	MaxPlatinum   int    `yaml:"max_platinum"` // 0 = sin límite
	OnlyOnline    bool   `yaml:"only_online"`
	Platform      string `yaml:"platform"` // filtra órdenes por plataforma, "" = cualquiera
	MinReputation int    `yaml:"min_reputation"`
	VaultedBonus  int    `yaml:"vaulted_bonus"` // se suma al score de items vaulted
}

// APIConfig contiene el base URL y las cabeceras de warframe.market.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Platform       string `yaml:"platform"` // cabecera Platform: pc | ps4 | xbox | switch
	Language       string `yaml:"language"`
}

// StorageConfig controla la cache local del catálogo de items.
type StorageConfig struct {
	DSN             string `yaml:"dsn"` // ruta al archivo SQLite, ":memory:" o "" para desactivar
	CatalogTTLHours int    `yaml:"catalog_ttl_hours"`
}

// DiscordConfig activa el envío de los mensajes a un webhook de Discord.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// Parse interpreta YAML ya leído, aplica overrides de entorno y defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg, nil
}

// ScanInterval devuelve el intervalo entre pasadas como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Buyer.IntervalSeconds) * time.Second
}

// APITimeout devuelve el timeout HTTP como time.Duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CatalogTTL devuelve cuánto tiempo es válido el catálogo cacheado.
func (c *Config) CatalogTTL() time.Duration {
	return time.Duration(c.Storage.CatalogTTLHours) * time.Hour
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("WFM_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("WFM_PLATFORM"); v != "" {
		cfg.API.Platform = v
	}
	if v := os.Getenv("BUYER_MAX_PLATINUM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Buyer.MaxPlatinum = n
		}
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Discord.WebhookURL = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Buyer.IntervalSeconds <= 0 {
		cfg.Buyer.IntervalSeconds = 300
	}
	if cfg.Buyer.Workers <= 0 {
		cfg.Buyer.Workers = 1
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.warframe.market/v1"
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 10
	}
	if cfg.API.Platform == "" {
		cfg.API.Platform = "pc"
	}
	if cfg.API.Language == "" {
		cfg.API.Language = "en"
	}
	if cfg.Storage.CatalogTTLHours <= 0 {
		cfg.Storage.CatalogTTLHours = 24
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
