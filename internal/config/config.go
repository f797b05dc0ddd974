package config

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const envPrefix = "CMS"

type Config struct {
	Env      string
	LogLevel string

	GrpcPort string
	HttpPort string

	DB     DBConfig
	Redis  RedisConfig
	Cache  CacheConfig
	Queue  QueueConfig
	Kafka  KafkaConfig
	Jobs   JobsConfig
	Schema SchemaConfig
}

type DBConfig struct {
	Driver   string // postgres or sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled     bool
	Driver      string // redis or memory
	TTL         time.Duration
	Compression string
}

type QueueConfig struct {
	Driver string // nop, redis or kafka
	Stream string
}

type KafkaConfig struct {
	Brokers string
	Topic   string
}

type JobsConfig struct {
	Enabled       bool
	CacheSyncCron string
	StatsCron     string
}

type SchemaConfig struct {
	DefaultLanguage string
	Strict          bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("grpc_port", "4020")
	v.SetDefault("http_port", "4021")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "emrgen")
	v.SetDefault("db.password", "emrgen")
	v.SetDefault("db.name", "cms")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "./.tmp/db/cms.db")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.driver", "redis")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.compression", "lz4")

	v.SetDefault("queue.driver", "nop")
	v.SetDefault("queue.stream", "cms:content:events")

	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "cms.content.events")

	v.SetDefault("jobs.enabled", false)
	v.SetDefault("jobs.cache_sync_cron", "@every 30s")
	v.SetDefault("jobs.stats_cron", "@every 5m")

	v.SetDefault("schema.default_language", "en")
	v.SetDefault("schema.strict", false)
}

// LoadConfig reads the configuration from CMS_* environment variables, a .env
// file is loaded first when present. Nested keys use underscores, e.g.
// CMS_DB_DRIVER or CMS_SCHEMA_DEFAULT_LANGUAGE.
func LoadConfig() *Config {
	cfg, err := Load(viper.New())
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	return cfg
}

func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Env:      v.GetString("env"),
		LogLevel: v.GetString("log_level"),
		GrpcPort: v.GetString("grpc_port"),
		HttpPort: v.GetString("http_port"),
		DB: DBConfig{
			Driver:   v.GetString("db.driver"),
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
			Path:     v.GetString("db.path"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			Enabled:     v.GetBool("cache.enabled"),
			Driver:      v.GetString("cache.driver"),
			TTL:         v.GetDuration("cache.ttl"),
			Compression: v.GetString("cache.compression"),
		},
		Queue: QueueConfig{
			Driver: v.GetString("queue.driver"),
			Stream: v.GetString("queue.stream"),
		},
		Kafka: KafkaConfig{
			Brokers: v.GetString("kafka.brokers"),
			Topic:   v.GetString("kafka.topic"),
		},
		Jobs: JobsConfig{
			Enabled:       v.GetBool("jobs.enabled"),
			CacheSyncCron: v.GetString("jobs.cache_sync_cron"),
			StatsCron:     v.GetString("jobs.stats_cron"),
		},
		Schema: SchemaConfig{
			DefaultLanguage: v.GetString("schema.default_language"),
			Strict:          v.GetBool("schema.strict"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver: %q", c.DB.Driver)
	}

	switch c.Queue.Driver {
	case "nop", "redis", "kafka":
	default:
		return fmt.Errorf("unsupported queue driver: %q", c.Queue.Driver)
	}

	switch c.Cache.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("unsupported cache driver: %q", c.Cache.Driver)
	}

	if c.Schema.DefaultLanguage == "" {
		return fmt.Errorf("default language must not be empty")
	}

	if c.Env == "production" && c.DB.Driver == "postgres" && c.DB.Password == "emrgen" {
		return fmt.Errorf("CMS_DB_PASSWORD must be set in production")
	}

	return nil
}

// DSN returns the connection string of the configured driver.
func (c *Config) DSN() string {
	if c.DB.Driver == "sqlite" {
		return fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate&_foreign_keys=on", c.DB.Path)
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode,
	)
}

// ConfigureLogger applies the configured log level to logrus.
func (c *Config) ConfigureLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// GetDb opens the configured database. Errors are fatal, the process cannot do
// anything without its store.
func GetDb(cfg *Config) *gorm.DB {
	db, err := OpenDb(cfg)
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}
	return db
}

func OpenDb(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		dialector = sqlite.Open(cfg.DSN())
	}

	logLevel := logger.Warn
	if cfg.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("database connected: %s", cfg.DB.Driver)
	return db, nil
}
