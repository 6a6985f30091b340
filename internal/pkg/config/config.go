package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Environment
	Environment string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	Cleaner  CleanerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Queue    QueueConfig
	Storage  StorageConfig

	// File Processing
	MaxFileSize int64 `mapstructure:"MAX_FILE_SIZE_MB"`
}

// CleanerConfig selects the cleaner profile and where its overrides come from
type CleanerConfig struct {
	Profile      string `mapstructure:"CLEANER_PROFILE"`
	ProfileFile  string `mapstructure:"CLEANER_PROFILE_FILE"`
	HTMLSelector string `mapstructure:"HTML_CONTENT_SELECTOR"`
	TextFields   []string
}

// DatabaseConfig configures the PostgreSQL connection
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	LogLevel        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // minutes
	MaxConnIdleTime int // minutes
}

// CacheConfig configures the Redis result cache
type CacheConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	DB           int
	DialTimeout  int // seconds
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	PoolSize     int
	MinIdleConns int
	TTL          time.Duration
}

// QueueConfig configures the asynq client and worker
type QueueConfig struct {
	RedisHost      string
	RedisPort      int
	RedisPassword  string
	RedisDB        int
	DialTimeout    int // seconds
	ReadTimeout    int // seconds
	WriteTimeout   int // seconds
	Concurrency    int
	MaxRetries     int
	StrictPriority bool
}

// StorageConfig configures local storage of uploads and cleaned outputs
type StorageConfig struct {
	BasePath string
}

// Options control Load
type Options struct {
	// EnvFiles are loaded with godotenv before reading the environment; missing files are skipped
	EnvFiles []string
	// RequireDatabase makes DB_USER and DB_PASSWORD mandatory
	RequireDatabase bool
}

// Load loads configuration from environment variables and .env files
func Load(opts Options) (*Config, error) {
	envFiles := opts.EnvFiles
	if envFiles == nil {
		envFiles = []string{".env", "../.env"}
	}
	loaded := false
	for _, f := range envFiles {
		if err := godotenv.Load(f); err == nil {
			loaded = true
			break
		}
	}
	if !loaded {
		slog.Debug("no .env file found, using environment variables only")
	}

	v := viper.New()
	setDefaults(v)

	// Bind environment variables
	v.AutomaticEnv()

	config := &Config{
		Environment: v.GetString("ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		MaxFileSize: v.GetInt64("MAX_FILE_SIZE_MB"),
		Cleaner: CleanerConfig{
			Profile:      v.GetString("CLEANER_PROFILE"),
			ProfileFile:  v.GetString("CLEANER_PROFILE_FILE"),
			HTMLSelector: v.GetString("HTML_CONTENT_SELECTOR"),
			TextFields:   v.GetStringSlice("CLEANER_TEXT_FIELDS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
			MaxConnections:  v.GetInt("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt("DB_MIN_CONNECTIONS"),
			MaxConnLifetime: v.GetInt("DB_MAX_CONN_LIFETIME_MINUTES"),
			MaxConnIdleTime: v.GetInt("DB_MAX_CONN_IDLE_MINUTES"),
		},
		Cache: CacheConfig{
			Enabled:      v.GetBool("CACHE_ENABLED"),
			Host:         v.GetString("REDIS_HOST"),
			Port:         v.GetInt("REDIS_PORT"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			DialTimeout:  v.GetInt("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetInt("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetInt("REDIS_WRITE_TIMEOUT"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
			TTL:          time.Duration(v.GetInt("CACHE_TTL_MINUTES")) * time.Minute,
		},
		Queue: QueueConfig{
			RedisHost:      v.GetString("REDIS_HOST"),
			RedisPort:      v.GetInt("REDIS_PORT"),
			RedisPassword:  v.GetString("REDIS_PASSWORD"),
			RedisDB:        v.GetInt("QUEUE_REDIS_DB"),
			DialTimeout:    v.GetInt("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:    v.GetInt("REDIS_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("REDIS_WRITE_TIMEOUT"),
			Concurrency:    v.GetInt("WORKER_CONCURRENCY"),
			MaxRetries:     v.GetInt("WORKER_MAX_RETRIES"),
			StrictPriority: v.GetBool("WORKER_STRICT_PRIORITY"),
		},
		Storage: StorageConfig{
			BasePath: v.GetString("STORAGE_BASE_PATH"),
		},
	}

	if opts.RequireDatabase {
		if err := config.Database.Validate(); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("MAX_FILE_SIZE_MB", 100)

	// Cleaner defaults
	v.SetDefault("CLEANER_PROFILE", "v1")
	v.SetDefault("CLEANER_PROFILE_FILE", "")
	v.SetDefault("HTML_CONTENT_SELECTOR", "div.content-text")
	v.SetDefault("CLEANER_TEXT_FIELDS", []string{"text"})

	// Database defaults
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "textcleaner")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 2)
	v.SetDefault("DB_MAX_CONN_LIFETIME_MINUTES", 30)
	v.SetDefault("DB_MAX_CONN_IDLE_MINUTES", 5)

	// Redis defaults
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("QUEUE_REDIS_DB", 1)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5)
	v.SetDefault("REDIS_READ_TIMEOUT", 3)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_TTL_MINUTES", 24*60)

	// Worker defaults
	v.SetDefault("WORKER_CONCURRENCY", 10)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_STRICT_PRIORITY", false)

	v.SetDefault("STORAGE_BASE_PATH", "/tmp/textcleaner")
}

// Validate checks the credentials needed to open a connection
func (c DatabaseConfig) Validate() error {
	if c.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return nil
}

// DSN constructs the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Addr returns the Redis address
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Addr returns the Redis address used by the queue
func (c QueueConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LogConfig logs the configuration (hiding sensitive data)
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("environment", c.Environment),
		slog.String("profile", c.Cleaner.Profile),
		slog.String("profile_file", c.Cleaner.ProfileFile),
		slog.String("database", fmt.Sprintf("%s:%d/%s", c.Database.Host, c.Database.Port, c.Database.Database)),
		slog.String("redis", c.Cache.Addr()),
		slog.Bool("cache_enabled", c.Cache.Enabled),
		slog.Int("worker_concurrency", c.Queue.Concurrency),
		slog.String("storage", c.Storage.BasePath))

	// Check credentials without revealing them
	if c.Database.Password != "" {
		logger.Info("database password [CONFIGURED]")
	} else {
		logger.Info("database password [NOT SET]")
	}
}
