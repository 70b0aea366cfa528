package config

import "time"

// Config is the root application configuration.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Auth  AuthConfig  `yaml:"auth"`
	Scan  ScanConfig  `yaml:"scan"`
	Feed  FeedConfig  `yaml:"feed"`
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`
}

// APIConfig holds remote meal/scan API settings.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"API_BASE_URL"        env-required:"true"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"API_REQUEST_TIMEOUT" env-default:"15s"`
	UploadTimeout  time.Duration `yaml:"upload_timeout"  env:"API_UPLOAD_TIMEOUT"  env-default:"60s"`
}

// AuthConfig holds the backend bearer token. The token is a Firebase ID
// token minted outside this process; either the literal token or a file
// containing it must be provided.
type AuthConfig struct {
	IDToken     string `yaml:"id_token"      env:"AUTH_ID_TOKEN"`
	IDTokenFile string `yaml:"id_token_file" env:"AUTH_ID_TOKEN_FILE"`
}

// ScanConfig bounds the scan polling state machine.
// MaxAttempts * PollInterval is the hard completion ceiling (~80s at defaults).
type ScanConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"  env:"SCAN_MAX_ATTEMPTS"  env-default:"40"`
	PollInterval time.Duration `yaml:"poll_interval" env:"SCAN_POLL_INTERVAL" env-default:"2s"`
}

// FeedConfig tunes the daily feed poller. ImageGenBudget is independent
// of the scan polling ceiling; the two are deliberately separate knobs.
type FeedConfig struct {
	PollInterval   time.Duration `yaml:"poll_interval"    env:"FEED_POLL_INTERVAL"    env-default:"4s"`
	ImageGenBudget time.Duration `yaml:"image_gen_budget" env:"FEED_IMAGE_GEN_BUDGET" env-default:"5m"`
}

// CacheConfig holds local persistence settings: the embedded result
// cache database and the kept-photo directory with its retention window.
type CacheConfig struct {
	DBPath         string        `yaml:"db_path"         env:"CACHE_DB_PATH"         env-default:"./mealscan.db"`
	ImageDir       string        `yaml:"image_dir"       env:"CACHE_IMAGE_DIR"       env-default:"./scan-images"`
	ImageRetention time.Duration `yaml:"image_retention" env:"CACHE_IMAGE_RETENTION" env-default:"1h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
