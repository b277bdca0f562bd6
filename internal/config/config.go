package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Vault    VaultConfig
	Seed     SeedConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// VaultConfig locates the PIN verifier file.
type VaultConfig struct {
	Path string
}

// SeedConfig selects the recovery phrase generator: "bip39" or "placeholder".
type SeedConfig struct {
	Generator string
}

// UIConfig holds terminal shell settings.
type UIConfig struct {
	LogFile   string `mapstructure:"log_file"`
	Clipboard bool
	AltScreen bool `mapstructure:"alt_screen"`
}

// Dir is the per-user novara directory holding config.toml and pin.json.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "novara")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "novara")
}

// Path returns the config file location: $NOVARA_CONFIG or Dir()/config.toml.
func Path() string {
	if p := os.Getenv("NOVARA_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

func defaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "novara", "novara.db"))
	v.SetDefault("database.migrations", filepath.Join("internal", "database", "migrations"))
	v.SetDefault("vault.path", filepath.Join(Dir(), "pin.json"))
	v.SetDefault("seed.generator", "bip39")
	v.SetDefault("ui.log_file", "")
	v.SetDefault("ui.clipboard", true)
	v.SetDefault("ui.alt_screen", true)
}

// Load reads configuration from .env, file and env. Env var overrides use prefix NOVARA_.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	defaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("NOVARA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Seed.Generator)) {
	case "bip39", "placeholder":
	default:
		return fmt.Errorf("config: unknown seed.generator %q", c.Seed.Generator)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path is empty")
	}
	if strings.TrimSpace(c.Vault.Path) == "" {
		return fmt.Errorf("config: vault.path is empty")
	}
	return nil
}

// Save writes the provided config to Path(), creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("vault.path", cfg.Vault.Path)
	v.Set("seed.generator", cfg.Seed.Generator)
	v.Set("ui.log_file", cfg.UI.LogFile)
	v.Set("ui.clipboard", cfg.UI.Clipboard)
	v.Set("ui.alt_screen", cfg.UI.AltScreen)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
