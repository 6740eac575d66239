// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// EnvLocal локальный запуск, текстовые логи уровня debug.
	EnvLocal = "local"
	// EnvProd боевой запуск, JSON-логи уровня info.
	EnvProd = "prod"

	// StorageRedis хранит сессию в redis.
	StorageRedis = "redis"
	// StorageMemory хранит сессию в памяти процесса.
	StorageMemory = "memory"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	Session         `yaml:"session"`
	RedisConnection `yaml:"redis_connection"`
	JWTToken        `yaml:"jwttoken"`
	Auth            `yaml:"auth"`
	Gesture         `yaml:"gesture"`
	RateLimit       `yaml:"rate_limit"`
	RabbitMQ        `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Session структура для настройки слота, в котором хранится сессия
type Session struct {
	Storage string `yaml:"storage" env:"SESSION_STORAGE" env-default:"memory"`
	SlotKey string `yaml:"slot_key" env-default:"authState"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Auth структура для настройки имитации сервиса аутентификации
type Auth struct {
	DemoPassword string        `yaml:"demo_password" env:"DEMO_PASSWORD" env-default:"demo123"`
	LoginDelay   time.Duration `yaml:"login_delay" env-default:"1s"`
	UpgradeDelay time.Duration `yaml:"upgrade_delay" env-default:"1500ms"`
}

// Gesture структура для настройки имитации распознавания жестов
type Gesture struct {
	Interval     time.Duration `yaml:"interval" env-default:"3s"`
	Duration     time.Duration `yaml:"duration" env-default:"15s"`
	CameraDenied bool          `yaml:"camera_denied" env:"CAMERA_DENIED"`
	Voices       []string      `yaml:"voices" env-default:"Google UK English Female,Google UK English Male"`
}

// RateLimit структура для ограничения частоты запросов входа и регистрации
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"3"`
}

// RabbitMQ структура для настройки публикации событий о премиуме.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"premium"`
	RoutingKey string        `yaml:"routing_key" env-default:"activated"`
	Retries    int           `yaml:"retries" env-default:"3"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Load читает конфиг из файла path и проверяет его.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageMemory:
	case StorageRedis:
		if c.AddressRedis == "" {
			return errors.New("redis session storage requires redis_connection.addressredis")
		}
	default:
		return fmt.Errorf("unknown session storage %q", c.Storage)
	}
	if c.JWTSecretKey == "" {
		return errors.New("jwttoken.jwt_secret_key is required")
	}
	if c.Interval <= 0 || c.Duration <= 0 {
		return errors.New("gesture interval and duration must be positive")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  Storage: %s\n"+
			"  SlotKey: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"Auth:\n"+
			"  LoginDelay: %s\n"+
			"  UpgradeDelay: %s\n"+
			"Gesture:\n"+
			"  Interval: %s\n"+
			"  Duration: %s\n"+
			"RabbitMQ enabled: %t\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Storage,
		c.SlotKey,
		c.AddressRedis,
		c.DB,
		c.LoginDelay,
		c.UpgradeDelay,
		c.Interval,
		c.Duration,
		c.URL != "",
	)
}
