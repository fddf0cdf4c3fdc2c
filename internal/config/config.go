// Package config загрузка конфигурации сервиса из TOML-файла
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/camp-taezhny/BookingService/internal/domain"
	"github.com/camp-taezhny/BookingService/pkg/types"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Push      PushConfig      `toml:"push"`
	Admin     AdminConfig     `toml:"admin"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
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

// BookingConfig бизнес-настройки бронирования
type BookingConfig struct {
	MaxPerSlot int    `toml:"max_per_slot"` // максимум подтвержденных бронирований на слот
	DaysAhead  int    `toml:"days_ahead"`   // окно бронирования вперед, дней
	OpenTime   string `toml:"open_time"`    // начало рабочего окна, "HH:MM"
	CloseTime  string `toml:"close_time"`   // конец рабочего окна, "HH:MM" (не включается)

	Camps []string `toml:"camps"` // допустимые лагеря

	DefaultRequiredDocuments []string `toml:"default_required_documents"`

	// Явные приоритеты отображения услуг (имя -> позиция) вместо
	// зашитой в код таблицы; применяются при создании услуги
	ServicePriorities map[string]int `toml:"service_priorities"`
}

// TimeSlots генерирует сетку 15-минутных слотов рабочего окна [open_time, close_time)
func (b BookingConfig) TimeSlots() ([]types.TimeString, error) {
	open, err := types.NewTimeStringFromString(b.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("config: invalid open_time: %w", err)
	}
	closeT, err := types.NewTimeStringFromString(b.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("config: invalid close_time: %w", err)
	}
	if !open.IsBefore(closeT) {
		return nil, fmt.Errorf("config: open_time %s must be before close_time %s", open, closeT)
	}

	slots := make([]types.TimeString, 0)
	current := open
	for current.IsBefore(closeT) {
		slots = append(slots, current)
		next, err := current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			return nil, fmt.Errorf("config: failed to build slot grid: %w", err)
		}
		current = next
	}

	return slots, nil
}

// DisplayOrderFor возвращает приоритет отображения для имени услуги
func (b BookingConfig) DisplayOrderFor(name string) int {
	if order, ok := b.ServicePriorities[name]; ok {
		return order
	}
	return domain.DefaultDisplayOrder
}

// PushConfig настройки web-push (VAPID)
type PushConfig struct {
	VAPIDPublicKey  string `toml:"vapid_public_key"`
	VAPIDPrivateKey string `toml:"vapid_private_key"`
	Subscriber      string `toml:"subscriber"` // mailto:...
	TTLSeconds      int    `toml:"ttl_seconds"`
}

// Enabled возвращает true, если заданы VAPID-ключи
func (p PushConfig) Enabled() bool {
	return p.VAPIDPublicKey != "" && p.VAPIDPrivateKey != ""
}

// AdminConfig учетная запись администратора и время жизни сессии
type AdminConfig struct {
	BootstrapUsername string `toml:"bootstrap_username"`
	BootstrapPassword string `toml:"bootstrap_password"`
	SessionTTLHours   int    `toml:"session_ttl_hours"`
}

// SessionTTL возвращает время жизни сессии администратора
func (a AdminConfig) SessionTTL() time.Duration {
	hours := a.SessionTTLHours
	if hours <= 0 {
		hours = 2
	}
	return time.Duration(hours) * time.Hour
}

// SchedulerConfig настройки фонового планировщика напоминаний
type SchedulerConfig struct {
	IntervalMinutes int `toml:"interval_minutes"`
}

// Interval возвращает период запуска проверки напоминаний
func (s SchedulerConfig) Interval() time.Duration {
	minutes := s.IntervalMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// Load читает и валидирует конфигурацию из файла
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Booking: BookingConfig{
			MaxPerSlot: domain.DefaultMaxBookingsPerSlot,
			DaysAhead:  domain.DefaultCalendarDaysAhead,
			OpenTime:   "09:00",
			CloseTime:  "17:00",
		},
		Logs: LogsConfig{Level: "info"},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Booking.MaxPerSlot <= 0 {
		return nil, fmt.Errorf("config: booking.max_per_slot must be positive")
	}
	if cfg.Booking.DaysAhead <= 0 {
		return nil, fmt.Errorf("config: booking.days_ahead must be positive")
	}
	if len(cfg.Booking.Camps) == 0 {
		return nil, fmt.Errorf("config: booking.camps must not be empty")
	}
	if _, err := cfg.Booking.TimeSlots(); err != nil {
		return nil, err
	}

	return cfg, nil
}
