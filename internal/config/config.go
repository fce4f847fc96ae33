// Package config предоставляет структуры и функции для загрузки конфига.
// Значения читаются из YAML-файла и могут быть переопределены переменными окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Бэкенды хранения изображений.
const (
	ImagesLocal = "local"
	ImagesS3    = "s3"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	StaticDir               string `yaml:"static_dir" env:"STATIC_DIR" env-default:"./web/public"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Session                 Session   `yaml:"session"`
	Hashing                 Hashing   `yaml:"password"`
	Images                  Images    `yaml:"images"`
	RateLimit               RateLimit `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":3000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT"`
}

// Session настройки cookie и времени жизни сессии.
type Session struct {
	CookieName   string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"ambuhub_session"`
	CookieSecure bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE"`
	TTL          time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
}

// Hashing настройки bcrypt.
type Hashing struct {
	Cost int `yaml:"cost" env:"PASSWORD_COST" env-default:"10"`
}

// Images настройки хранения загруженных изображений товаров.
type Images struct {
	Backend        string `yaml:"backend" env:"IMAGES_BACKEND" env-default:"local"`
	Dir            string `yaml:"dir" env:"IMAGES_DIR" env-default:"./web/public/uploads"`
	URLPrefix      string `yaml:"url_prefix" env:"IMAGES_URL_PREFIX" env-default:"/uploads"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"IMAGES_MAX_UPLOAD_BYTES" env-default:"5242880"`
	S3             S3     `yaml:"s3"`
}

// S3 параметры S3-совместимого хранилища (MinIO, AWS).
type S3 struct {
	Bucket       string `yaml:"bucket" env:"S3_BUCKET"`
	Region       string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	BaseEndpoint string `yaml:"base_endpoint" env:"S3_BASE_ENDPOINT"`
	AccessKey    string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey    string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	PublicURL    string `yaml:"public_url" env:"S3_PUBLIC_URL"`
}

// RateLimit ограничение частоты запросов на вход и регистрацию.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"1"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"5"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла, применяет переменные окружения и проверяет значения.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек.
// В prod cookie сессии обязаны быть secure.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	if c.StorageConnectionString == "" {
		return errors.New("storage_connection_string is required")
	}
	if c.Env == EnvProd && !c.Session.CookieSecure {
		return errors.New("session.cookie_secure must be true in prod")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	switch c.Images.Backend {
	case ImagesLocal:
	case ImagesS3:
		if c.Images.S3.Bucket == "" {
			return errors.New("images.s3.bucket is required for s3 backend")
		}
	default:
		return fmt.Errorf("unknown images backend %q", c.Images.Backend)
	}
	return nil
}
