package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Переменные окружения, переопределяющие секреты из файла
const (
	EnvDBPassword    = "DB_PASSWORD"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRabbitMQURL   = "RABBITMQ_URL"
	EnvHTTPPort      = "HTTP_PORT"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Redis       RedisConfig       `toml:"redis"`
	RabbitMQ    RabbitMQConfig    `toml:"rabbitmq"`
	Restaurant  RestaurantConfig  `toml:"restaurant"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UserServiceConfig настройки клиента UserService (timeout в секундах)
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// RedisConfig настройки кеша доступности (ttl в секундах)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"`
}

// CacheTTL время жизни закешированной доступности
func (c RedisConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// RabbitMQConfig настройки публикации доменных событий
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// RestaurantConfig часовой пояс ресторана и значения профиля для первого запуска
type RestaurantConfig struct {
	Timezone                string `toml:"timezone"`
	Name                    string `toml:"name"`
	Address                 string `toml:"address"`
	PhoneNumber             string `toml:"phone_number"`
	OpeningTime             string `toml:"opening_time"`
	ClosingTime             string `toml:"closing_time"`
	SlotIntervalMinutes     int    `toml:"slot_interval_minutes"`
	DefaultMaxGuestsPerSlot int    `toml:"default_max_guests_per_slot"`
}

// Location загружает часовой пояс ресторана
func (c RestaurantConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: restaurant.timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// DefaultProfile профиль ресторана, которым заполняется пустая БД
func (c RestaurantConfig) DefaultProfile() *domain.RestaurantProfile {
	return &domain.RestaurantProfile{
		Name:                    c.Name,
		Address:                 c.Address,
		PhoneNumber:             c.PhoneNumber,
		OpeningTime:             types.TimeString(c.OpeningTime),
		ClosingTime:             types.TimeString(c.ClosingTime),
		SlotIntervalMinutes:     c.SlotIntervalMinutes,
		DefaultMaxGuestsPerSlot: c.DefaultMaxGuestsPerSlot,
	}
}

// Load читает TOML файл, затем применяет переменные окружения (.env, если есть)
func Load(path string) (*Config, error) {
	// .env необязателен, переменные могут прийти из окружения
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reservation-service",
		},
		UserService: UserServiceConfig{
			Timeout: 5,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  60,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "reservations",
		},
		Restaurant: RestaurantConfig{
			Timezone:                domain.DefaultTimezone,
			Name:                    domain.DefaultRestaurantName,
			OpeningTime:             domain.DefaultOpeningTime.String(),
			ClosingTime:             domain.DefaultClosingTime.String(),
			SlotIntervalMinutes:     domain.DefaultSlotIntervalMinutes,
			DefaultMaxGuestsPerSlot: domain.DefaultMaxGuestsPerSlot,
		},
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		c.Redis.Password = v
	}
	if v, ok := os.LookupEnv(EnvRabbitMQURL); ok {
		c.RabbitMQ.URL = v
	}
	if v, ok := os.LookupEnv(EnvHTTPPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет обязательные секции
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("%w: database.host, database.dbname and database.user are required", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Redis.Enabled && (c.Redis.Addr == "" || c.Redis.TTL <= 0) {
		return fmt.Errorf("%w: redis.addr and positive redis.ttl are required when redis is enabled", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && (c.RabbitMQ.URL == "" || c.RabbitMQ.Exchange == "") {
		return fmt.Errorf("%w: rabbitmq.url and rabbitmq.exchange are required when rabbitmq is enabled", ErrInvalidConfig)
	}
	if _, err := c.Restaurant.Location(); err != nil {
		return err
	}

	profile := c.Restaurant.DefaultProfile()
	if err := profile.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: restaurant.opening_time: %v", ErrInvalidConfig, err)
	}
	if err := profile.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: restaurant.closing_time: %v", ErrInvalidConfig, err)
	}
	if !profile.OpeningTime.IsBefore(profile.ClosingTime) {
		return fmt.Errorf("%w: restaurant.opening_time must be before closing_time", ErrInvalidConfig)
	}
	if profile.SlotIntervalMinutes <= 0 || profile.DefaultMaxGuestsPerSlot <= 0 {
		return fmt.Errorf("%w: restaurant slot interval and max guests must be positive", ErrInvalidConfig)
	}

	return nil
}
