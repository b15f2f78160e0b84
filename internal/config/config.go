package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/eduhub/WSB-BookingService/internal/domain"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Booking     BookingConfig     `toml:"booking"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig настройки подключения к postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения. Пароль можно переопределить
// переменной окружения DB_PASSWORD (подхватывается из .env при старте).
func (d DatabaseConfig) DSN() string {
	password := d.Password
	if env := os.Getenv("DB_PASSWORD"); env != "" {
		password = env
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UserServiceConfig настройки клиента UserService
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// BookingConfig параметры политик бронирования.
// Значения по умолчанию — платформенные правила; здесь их можно
// переопределить для конкретного центра.
type BookingConfig struct {
	OpenTime                string `toml:"open_time"`
	CloseTime               string `toml:"close_time"`
	SlotDurationMinutes     int    `toml:"slot_duration_minutes"`
	StudentMaxDurationHours int    `toml:"student_max_duration_hours"`
	MaxDurationHours        int    `toml:"max_duration_hours"`
	CooldownMinutes         int    `toml:"cooldown_minutes"`
	CancellationLockMinutes int    `toml:"cancellation_lock_minutes"`
	MinNoticeMinutes        int    `toml:"min_notice_minutes"`
	// AutoConfirm true — самостоятельные брони сразу confirmed,
	// false — создаются pending и ждут подтверждения модератором
	AutoConfirm bool `toml:"auto_confirm"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "wsb-booking-service",
		},
		UserService: UserServiceConfig{
			Timeout: 5,
		},
		Booking: BookingConfig{
			OpenTime:                domain.DefaultOpenTime,
			CloseTime:               domain.DefaultCloseTime,
			SlotDurationMinutes:     domain.DefaultSlotDurationMinutes,
			StudentMaxDurationHours: domain.DefaultStudentMaxDurationHours,
			MaxDurationHours:        domain.DefaultMaxDurationHours,
			CooldownMinutes:         domain.DefaultCooldownMinutes,
			CancellationLockMinutes: domain.DefaultCancellationLockMinutes,
			MinNoticeMinutes:        domain.DefaultMinNoticeMinutes,
			AutoConfirm:             true,
		},
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid http_port %d", c.Server.HTTPPort)
	}
	if c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database user and dbname are required")
	}
	if c.UserService.URL == "" {
		return fmt.Errorf("config: user_service.url is required")
	}
	if c.Booking.SlotDurationMinutes <= 0 {
		return fmt.Errorf("config: booking.slot_duration_minutes must be positive")
	}
	if c.Booking.StudentMaxDurationHours <= 0 || c.Booking.MaxDurationHours <= 0 {
		return fmt.Errorf("config: booking duration limits must be positive")
	}
	if c.Booking.CooldownMinutes < 0 || c.Booking.CancellationLockMinutes < 0 || c.Booking.MinNoticeMinutes < 0 {
		return fmt.Errorf("config: booking windows must not be negative")
	}
	return nil
}
