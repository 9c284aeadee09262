package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type App struct {
	Name               string `yaml:"name"`
	Env                string `yaml:"env"`
	Port               int    `yaml:"port"`
	ShutdownTimeoutSec int    `yaml:"shutdown_timeout_seconds"`
}

func (a *App) PortString() string { return fmt.Sprintf("%d", a.Port) }

func (a *App) Development() bool { return a.Env != "production" }

func (a *App) ShutdownTimeout() time.Duration {
	return time.Duration(a.ShutdownTimeoutSec) * time.Second
}

type Mongo struct {
	URI               string `yaml:"uri"`
	Database          string `yaml:"database"`
	UserCollection    string `yaml:"user_collection"`
	MessageCollection string `yaml:"message_collection"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Kafka struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type JWT struct {
	Secret       string `yaml:"secret"`
	AccessTTLMin int    `yaml:"access_ttl_minutes"`
}

type RateLimit struct {
	PerMinute int    `yaml:"per_minute"`
	Prefix    string `yaml:"prefix"`
}

type WS struct {
	PingIntervalSec  int   `yaml:"ping_interval_seconds"`
	WriteDeadlineSec int   `yaml:"write_deadline_seconds"`
	MaxMsgBytes      int64 `yaml:"max_msg_bytes"`
}

func (w *WS) PingInterval() time.Duration {
	return time.Duration(w.PingIntervalSec) * time.Second
}

func (w *WS) WriteDeadline() time.Duration {
	return time.Duration(w.WriteDeadlineSec) * time.Second
}

type Config struct {
	App       App       `yaml:"app"`
	Mongo     Mongo     `yaml:"mongo"`
	Redis     Redis     `yaml:"redis"`
	Kafka     Kafka     `yaml:"kafka"`
	JWT       JWT       `yaml:"jwt"`
	RateLimit RateLimit `yaml:"rate_limit"`
	WS        WS        `yaml:"ws"`
}

// Load reads the YAML file at path, applies env-var overrides and defaults,
// and validates the result. The returned config is read-only after startup.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load()
	overrideFromEnv(cfg)
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.App.Env = v
	}
	if v := os.Getenv("SERVICE_PORT"); v != "" {
		n, _ := strconv.Atoi(v)
		cfg.App.Port = n
	}

	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB"); v != "" {
		cfg.Mongo.Database = v
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"); v != "" {
		cfg.Kafka.NotificationsTopic = v
	}

	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "you-app-backend"
	}
	if cfg.App.ShutdownTimeoutSec == 0 {
		cfg.App.ShutdownTimeoutSec = 10
	}
	if cfg.Mongo.UserCollection == "" {
		cfg.Mongo.UserCollection = "users"
	}
	if cfg.Mongo.MessageCollection == "" {
		cfg.Mongo.MessageCollection = "messages"
	}
	if cfg.JWT.AccessTTLMin == 0 {
		cfg.JWT.AccessTTLMin = 60
	}
	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = 120
	}
	if cfg.RateLimit.Prefix == "" {
		cfg.RateLimit.Prefix = "rl"
	}
	if cfg.WS.PingIntervalSec == 0 {
		cfg.WS.PingIntervalSec = 30
	}
	if cfg.WS.WriteDeadlineSec == 0 {
		cfg.WS.WriteDeadlineSec = 10
	}
	if cfg.WS.MaxMsgBytes == 0 {
		cfg.WS.MaxMsgBytes = 4096
	}
}

func validate(cfg *Config) error {
	if cfg.App.Port == 0 {
		return errors.New("app.port missing or invalid")
	}
	if cfg.Mongo.URI == "" {
		return errors.New("mongo.uri missing")
	}
	if cfg.Mongo.Database == "" {
		return errors.New("mongo.database missing")
	}
	if cfg.Redis.Addr == "" {
		return errors.New("redis.addr missing")
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers missing")
	}
	if cfg.Kafka.NotificationsTopic == "" {
		return errors.New("kafka.notifications_topic missing")
	}
	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret missing")
	}
	return nil
}
