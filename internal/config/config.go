package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port   int    `yaml:"port"`
		APIKey string `yaml:"api_key"`
	} `yaml:"server"`

	Hub struct {
		BaseURL         string `yaml:"base_url"`
		ClientID        string `yaml:"client_id"`
		ClientSecret    string `yaml:"client_secret"`
		TokenURL        string `yaml:"token_url"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"hub"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Storage struct {
		SettingsPath string `yaml:"settings_path"`
	} `yaml:"storage"`

	Audit struct {
		Enabled               bool   `yaml:"enabled"`
		DBPath                string `yaml:"db_path"`
		RetentionDays         int    `yaml:"retention_days"`
		SheetsSpreadsheetID   string `yaml:"sheets_spreadsheet_id"`
		GoogleCredentialsFile string `yaml:"google_credentials_file"`
		SyncIntervalHours     int    `yaml:"sync_interval_hours"`
	} `yaml:"audit"`

	Notify struct {
		Channel       string `yaml:"channel"`
		RatePerMinute int    `yaml:"rate_per_minute"`
		Telegram      struct {
			BotToken string `yaml:"bot_token"`
			ChatID   int64  `yaml:"chat_id"`
		} `yaml:"telegram"`
	} `yaml:"notify"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Hub.BaseURL == "" {
		return nil, fmt.Errorf("hub.base_url is required")
	}
	if cfg.Storage.SettingsPath == "" {
		cfg.Storage.SettingsPath = "data/settings"
	}
	if cfg.Audit.DBPath == "" {
		cfg.Audit.DBPath = "data/meetbook_audit.db"
	}
	if cfg.Notify.Channel == "" {
		cfg.Notify.Channel = "chat"
	}
	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8081
	}
	if cfg.Monitoring.PrometheusPort == 0 {
		cfg.Monitoring.PrometheusPort = 9090
	}

	for _, dir := range []string{cfg.Storage.SettingsPath, filepath.Dir(cfg.Audit.DBPath)} {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// HubCacheTTL is how long hub responses stay in the Redis cache.
func (c *Config) HubCacheTTL() time.Duration {
	if c.Hub.CacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Hub.CacheTTLSeconds) * time.Second
}

// AuditRetention returns how long audit entries are kept, zero meaning
// forever.
func (c *Config) AuditRetention() time.Duration {
	if c.Audit.RetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.Audit.RetentionDays) * 24 * time.Hour
}

// SheetsSyncInterval is how often the audit trail is mirrored to Google
// Sheets.
func (c *Config) SheetsSyncInterval() time.Duration {
	if c.Audit.SyncIntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Audit.SyncIntervalHours) * time.Hour
}
