// munui/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"munui/utils"
)

const (
	AppVersion = "1.2.0"

	// Form & Post Limits
	MaxNameLen    = 100
	MaxTitleLen   = 200
	MaxContentLen = 8000

	// MaxBodyBytes caps JSON request bodies at 1MB.
	MaxBodyBytes = 1 << 20

	// Default markers substituted at the write boundary.
	DefaultStatus      = "접수됨"
	DefaultReplyAuthor = "관리자"

	// Rate Limiting Defaults
	DefaultRateLimitEvery  = "30s"
	DefaultRateLimitBurst  = 3
	DefaultRateLimitPrune  = "1h"
	DefaultRateLimitExpire = "24h"
)

// Config holds the runtime settings for the server. Values resolve in three
// layers: built-in defaults, an optional YAML file, then environment
// variables.
type Config struct {
	Addr         string `yaml:"addr"`
	DBPath       string `yaml:"db_path"`
	PublicDir    string `yaml:"public_dir"`
	BackupDir    string `yaml:"backup_dir"`
	AdminKey     string `yaml:"admin_key"`
	AdminKeyHash string `yaml:"admin_key_hash"`
	RateEvery    string `yaml:"rate_every"`
	RateBurst    int    `yaml:"rate_burst"`
	RatePrune    string `yaml:"rate_prune"`
	RateExpire   string `yaml:"rate_expire"`
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:       ":3000",
		DBPath:     "./munui.db?_journal_mode=WAL&_foreign_keys=on",
		PublicDir:  "./public",
		BackupDir:  "./backups",
		AdminKey:   "changeme",
		RateEvery:  DefaultRateLimitEvery,
		RateBurst:  DefaultRateLimitBurst,
		RatePrune:  DefaultRateLimitPrune,
		RateExpire: DefaultRateLimitExpire,
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open config file %s: %w", path, err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
	}

	cfg.Addr = utils.GetEnv("MUNUI_ADDR", cfg.Addr)
	cfg.DBPath = utils.GetEnv("MUNUI_DB_PATH", cfg.DBPath)
	cfg.PublicDir = utils.GetEnv("MUNUI_PUBLIC_DIR", cfg.PublicDir)
	cfg.BackupDir = utils.GetEnv("MUNUI_BACKUP_DIR", cfg.BackupDir)
	cfg.AdminKey = utils.GetEnv("MUNUI_ADMIN_KEY", cfg.AdminKey)
	cfg.AdminKeyHash = utils.GetEnv("MUNUI_ADMIN_KEY_HASH", cfg.AdminKeyHash)
	cfg.RateEvery = utils.GetEnv("MUNUI_RATE_EVERY", cfg.RateEvery)
	cfg.RatePrune = utils.GetEnv("MUNUI_RATE_PRUNE", cfg.RatePrune)
	cfg.RateExpire = utils.GetEnv("MUNUI_RATE_EXPIRE", cfg.RateExpire)
	if v := os.Getenv("MUNUI_RATE_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MUNUI_RATE_BURST %q: %w", v, err)
		}
		cfg.RateBurst = burst
	}

	return cfg, nil
}
