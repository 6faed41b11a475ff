package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultConfigDir  = ".scansec"
	DefaultConfigFile = "config.json"
	DefaultDBFile     = ".scansec/scansec.db"
)

// Load reads the config file and returns a populated Config with defaults
// applied. configPath may override the default location; a missing file is
// not an error.
func Load(configPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("scansec")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(home, DefaultConfigDir))
	}

	setDefaults(v, home)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config yet; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	expandPaths(&cfg, home)
	return &cfg, nil
}

// Save writes the config to disk as indented JSON.
func Save(cfg *Config, configPath string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialising config: %w", err)
	}
	return os.WriteFile(configPath, data, 0o600)
}

// CloneTimeout returns the configured clone timeout as a duration.
func (c *Config) CloneTimeout() time.Duration {
	if c.Clone.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Clone.TimeoutSeconds) * time.Second
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("engine.size_limit_bytes", int64(1<<20))
	v.SetDefault("engine.excluded_dirs", []string{})
	v.SetDefault("engine.workers", 0)
	v.SetDefault("engine.rules_dir", filepath.Join(home, DefaultConfigDir, "rules"))

	v.SetDefault("clone.timeout_seconds", 300)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", filepath.Join(home, DefaultDBFile))
	v.SetDefault("database.dsn", "")

	v.SetDefault("server.port", 8480)
	v.SetDefault("server.schedule_cron", "")
	v.SetDefault("server.schedule_repos", []string{})
}

// expandPaths resolves "~/" prefixes in path-valued settings.
func expandPaths(cfg *Config, home string) {
	cfg.Database.Path = expandHome(cfg.Database.Path, home)
	cfg.Engine.RulesDir = expandHome(cfg.Engine.RulesDir, home)
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func isNotExist(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file")
}
