package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// DefaultSlots is the canonical bookable slot list.
var DefaultSlots = []string{
	"9:00 AM", "10:30 AM", "12:00 PM", "1:30 PM",
	"3:00 PM", "4:30 PM", "6:00 PM", "7:30 PM",
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Flash     FlashConfig     `mapstructure:"flash"`
	Booking   BookingConfig   `mapstructure:"booking"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Outbox    OutboxConfig    `mapstructure:"outbox"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Seed   bool   `mapstructure:"seed"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
}

type FlashConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type BookingConfig struct {
	Slots []string `mapstructure:"slots"`
	// WeekdaySlots overrides Slots for a lowercase weekday name, e.g. "sunday".
	WeekdaySlots      map[string][]string `mapstructure:"weekday_slots"`
	ExclusiveOffering bool                `mapstructure:"exclusive_offering"`
	StrictPhone       bool                `mapstructure:"strict_phone"`
}

type AdminConfig struct {
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// Enabled reports whether admin login is possible at all.
func (c AdminConfig) Enabled() bool {
	return c.Username != "" && (c.Password != "" || c.PasswordHash != "")
}

type CacheConfig struct {
	CatalogTTL      time.Duration `mapstructure:"catalog_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type OutboxConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	Channel      string        `mapstructure:"channel"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// secrets are read from the plain environment names the deployment already uses.
type secrets struct {
	AdminUser         string `envconfig:"ADMIN_USER"`
	AdminPassword     string `envconfig:"ADMIN_PASSWORD"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string `envconfig:"JWT_SECRET"`
	RedisURL          string `envconfig:"REDIS_URL"`
	DatabasePassword  string `envconfig:"DATABASE_PASSWORD"`
	SMTPPassword      string `envconfig:"SMTP_PASSWORD"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 15*time.Second)

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.seed", true)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "zen_spa")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("flash.ttl", 10*time.Minute)

	v.SetDefault("booking.slots", DefaultSlots)
	v.SetDefault("booking.exclusive_offering", false)
	v.SetDefault("booking.strict_phone", false)

	v.SetDefault("admin.token_ttl", 12*time.Hour)
	v.SetDefault("admin.cookie_secure", false)

	v.SetDefault("cache.catalog_ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 1.0)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("outbox.enabled", true)
	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.poll_interval", 2*time.Second)
	v.SetDefault("outbox.max_attempts", 5)
	v.SetDefault("outbox.channel", "spa.events")

	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "bookings@zenspa.local")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}

// LoadConfig reads .env, then config.yml (optional unless path is given), then
// SPA_* environment overrides, then the plain secret variables.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SPA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var s secrets
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	cfg.applySecrets(s)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applySecrets(s secrets) {
	if s.AdminUser != "" {
		c.Admin.Username = s.AdminUser
	}
	if s.AdminPassword != "" {
		c.Admin.Password = s.AdminPassword
	}
	if s.AdminPasswordHash != "" {
		c.Admin.PasswordHash = s.AdminPasswordHash
	}
	if s.JWTSecret != "" {
		c.Admin.JWTSecret = s.JWTSecret
	}
	if s.RedisURL != "" {
		c.Redis.URL = s.RedisURL
	}
	if s.DatabasePassword != "" {
		c.Database.Password = s.DatabasePassword
	}
	if s.SMTPPassword != "" {
		c.SMTP.Password = s.SMTPPassword
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if err := validateSlots("booking.slots", c.Booking.Slots); err != nil {
		return err
	}
	for day, slots := range c.Booking.WeekdaySlots {
		if _, ok := ParseWeekday(day); !ok {
			return fmt.Errorf("booking.weekday_slots: unknown weekday %q", day)
		}
		if err := validateSlots("booking.weekday_slots."+day, slots); err != nil {
			return err
		}
	}

	if c.Admin.Enabled() && c.Admin.JWTSecret == "" {
		return fmt.Errorf("admin.jwt_secret is required when admin credentials are set")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	return nil
}

func validateSlots(key string, slots []string) error {
	if len(slots) == 0 {
		return fmt.Errorf("%s must not be empty", key)
	}
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s contains an empty label", key)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%s contains duplicate label %q", key, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// ParseWeekday maps "monday".."sunday" (any case) onto time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, true
		}
	}
	return 0, false
}

// Weekdays converts WeekdaySlots into a weekday keyed map. Validate has already rejected bad names.
func (c BookingConfig) Weekdays() map[time.Weekday][]string {
	out := make(map[time.Weekday][]string, len(c.WeekdaySlots))
	for name, slots := range c.WeekdaySlots {
		if d, ok := ParseWeekday(name); ok {
			out[d] = slots
		}
	}
	return out
}
