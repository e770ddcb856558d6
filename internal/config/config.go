package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath     = "config.yaml"
	DefaultDatabase = "jobs.db"
)

// Config is the root configuration for the remotefeed daemon.
type Config struct {
	Telegram         TelegramConfig
	Sources          SourcesConfig
	Database         string
	PollInterval     time.Duration
	MaxPostsPerCycle int
	Delays           DelaysConfig
	Retry            RetryConfig
	Filters          FilterConfig
}

// TelegramConfig holds the bot credentials and the target channel.
type TelegramConfig struct {
	BotToken    string
	ChannelID   string // "@username" or numeric chat id
	AdminUserID int64  // 0 = every user may run admin commands
	PollTimeout int    // getUpdates long-poll timeout, seconds
}

// SourcesConfig selects the job boards and carries their credentials.
type SourcesConfig struct {
	Enabled         []string // adapter names; empty = all
	SuperJobAPIKey  string
	AdzunaAppID     string
	AdzunaAppKey    string
	AdzunaCountries []string
}

// DelaysConfig holds every wait used by the pipeline.
type DelaysConfig struct {
	BetweenSources    time.Duration
	Jitter            time.Duration
	AfterError        time.Duration
	DefaultRetryAfter time.Duration
	BetweenPosts      time.Duration
	Cooldown          time.Duration
	PauseCheck        time.Duration
}

type RetryConfig struct {
	MaxAttempts int
}

// FilterConfig overrides the built-in keyword lists. Empty lists keep the defaults.
type FilterConfig struct {
	Remote  []string
	ITRoles []string
	Junior  []string
	Middle  []string
	Exclude []string
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Telegram         rawTelegramConfig `yaml:"telegram"`
	Sources          rawSourcesConfig  `yaml:"sources"`
	Database         string            `yaml:"database"`
	PollInterval     string            `yaml:"poll_interval"`
	MaxPostsPerCycle int               `yaml:"max_posts_per_cycle"`
	Delays           rawDelaysConfig   `yaml:"delays"`
	Retry            rawRetryConfig    `yaml:"retry"`
	Filters          rawFilterConfig   `yaml:"filters"`
}

type rawTelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	ChannelID   string `yaml:"channel_id"`
	AdminUserID int64  `yaml:"admin_user_id"`
	PollTimeout *int   `yaml:"poll_timeout"`
}

type rawSourcesConfig struct {
	Enabled        []string        `yaml:"enabled"`
	SuperJobAPIKey string          `yaml:"superjob_api_key"`
	Adzuna         rawAdzunaConfig `yaml:"adzuna"`
}

type rawAdzunaConfig struct {
	AppID     string   `yaml:"app_id"`
	AppKey    string   `yaml:"app_key"`
	Countries []string `yaml:"countries"`
}

type rawDelaysConfig struct {
	BetweenSources    string `yaml:"between_sources"`
	Jitter            string `yaml:"jitter"`
	AfterError        string `yaml:"after_error"`
	DefaultRetryAfter string `yaml:"default_retry_after"`
	BetweenPosts      string `yaml:"between_posts"`
	Cooldown          string `yaml:"cooldown"`
	PauseCheck        string `yaml:"pause_check"`
}

type rawRetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

type rawFilterConfig struct {
	Remote  []string `yaml:"remote"`
	ITRoles []string `yaml:"it_roles"`
	Junior  []string `yaml:"junior"`
	Middle  []string `yaml:"middle"`
	Exclude []string `yaml:"exclude"`
}

// ResolvePath picks the config file: the flag value, then REMOTEFEED_CONFIG,
// then ./config.yaml if it exists. An empty result means "no file".
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv("REMOTEFEED_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	return ""
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then .env and environment overrides, then keyring
// lookups for credentials still missing. The result is validated.
func Load(path string) (*Config, error) {
	var raw rawConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg, err := fromRaw(raw)
	if err != nil {
		return nil, err
	}

	// A missing .env is the normal case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyKeyring(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromRaw(raw rawConfig) (*Config, error) {
	var err error
	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:    raw.Telegram.BotToken,
			ChannelID:   raw.Telegram.ChannelID,
			AdminUserID: raw.Telegram.AdminUserID,
			PollTimeout: 30,
		},
		Sources: SourcesConfig{
			Enabled:         raw.Sources.Enabled,
			SuperJobAPIKey:  raw.Sources.SuperJobAPIKey,
			AdzunaAppID:     raw.Sources.Adzuna.AppID,
			AdzunaAppKey:    raw.Sources.Adzuna.AppKey,
			AdzunaCountries: raw.Sources.Adzuna.Countries,
		},
		Database:         raw.Database,
		MaxPostsPerCycle: raw.MaxPostsPerCycle,
		Retry:            RetryConfig{MaxAttempts: raw.Retry.MaxAttempts},
		Filters: FilterConfig{
			Remote:  raw.Filters.Remote,
			ITRoles: raw.Filters.ITRoles,
			Junior:  raw.Filters.Junior,
			Middle:  raw.Filters.Middle,
			Exclude: raw.Filters.Exclude,
		},
	}
	if raw.Telegram.PollTimeout != nil {
		cfg.Telegram.PollTimeout = *raw.Telegram.PollTimeout
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.MaxPostsPerCycle == 0 {
		cfg.MaxPostsPerCycle = 15
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}

	durations := []struct {
		name string
		raw  string
		def  time.Duration
		dst  *time.Duration
	}{
		{"poll_interval", raw.PollInterval, 30 * time.Minute, &cfg.PollInterval},
		{"delays.between_sources", raw.Delays.BetweenSources, 5 * time.Second, &cfg.Delays.BetweenSources},
		{"delays.jitter", raw.Delays.Jitter, 2 * time.Second, &cfg.Delays.Jitter},
		{"delays.after_error", raw.Delays.AfterError, 30 * time.Second, &cfg.Delays.AfterError},
		{"delays.default_retry_after", raw.Delays.DefaultRetryAfter, 60 * time.Second, &cfg.Delays.DefaultRetryAfter},
		{"delays.between_posts", raw.Delays.BetweenPosts, 3 * time.Second, &cfg.Delays.BetweenPosts},
		{"delays.cooldown", raw.Delays.Cooldown, 5 * time.Minute, &cfg.Delays.Cooldown},
		{"delays.pause_check", raw.Delays.PauseCheck, time.Minute, &cfg.Delays.PauseCheck},
	}
	for _, d := range durations {
		*d.dst = d.def
		if d.raw == "" {
			continue
		}
		*d.dst, err = time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", d.name, d.raw, err)
		}
	}
	return cfg, nil
}

// applyEnv overlays environment variables on top of the file values.
func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"TELEGRAM_BOT_TOKEN": &cfg.Telegram.BotToken,
		"CHANNEL_ID":         &cfg.Telegram.ChannelID,
		"SUPERJOB_API_KEY":   &cfg.Sources.SuperJobAPIKey,
		"ADZUNA_APP_ID":      &cfg.Sources.AdzunaAppID,
		"ADZUNA_APP_KEY":     &cfg.Sources.AdzunaAppKey,
		"REMOTEFEED_DB":      &cfg.Database,
	}
	for key, dst := range strs {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse CHECK_INTERVAL %q: %w", v, err)
		}
		cfg.PollInterval = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("MAX_POSTS_PER_CYCLE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse MAX_POSTS_PER_CYCLE %q: %w", v, err)
		}
		cfg.MaxPostsPerCycle = n
	}
	if v := os.Getenv("ADMIN_USER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse ADMIN_USER_ID %q: %w", v, err)
		}
		cfg.Telegram.AdminUserID = id
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", cfg.PollInterval)
	}
	if cfg.MaxPostsPerCycle <= 0 {
		return fmt.Errorf("max_posts_per_cycle must be positive, got %d", cfg.MaxPostsPerCycle)
	}
	if cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Telegram.PollTimeout < 0 {
		return fmt.Errorf("telegram.poll_timeout must not be negative, got %d", cfg.Telegram.PollTimeout)
	}

	d := cfg.Delays
	for name, v := range map[string]time.Duration{
		"between_sources":     d.BetweenSources,
		"jitter":              d.Jitter,
		"after_error":         d.AfterError,
		"default_retry_after": d.DefaultRetryAfter,
		"between_posts":       d.BetweenPosts,
	} {
		if v < 0 {
			return fmt.Errorf("delays.%s must not be negative, got %v", name, v)
		}
	}
	if d.Cooldown <= 0 || d.PauseCheck <= 0 {
		return fmt.Errorf("delays.cooldown and delays.pause_check must be positive")
	}
	return nil
}

// RequireTelegram reports an error when the bot token or channel is missing.
// Commands that publish call it; read-only commands do not.
func (c *Config) RequireTelegram() error {
	var missing []string
	if c.Telegram.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if c.Telegram.ChannelID == "" {
		missing = append(missing, "CHANNEL_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
