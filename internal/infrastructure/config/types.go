package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Database drivers accepted by database.driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN builds the driver-specific connection string.
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database)
	case DriverSQLite:
		return d.SQLitePath
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

type TelegramConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	BotToken            string `mapstructure:"bot_token"`
	ContractorChannelID int64  `mapstructure:"contractor_channel_id"`
}

type NotificationConfig struct {
	BufferSize      int    `mapstructure:"buffer_size"`
	DedupTTLMinutes int    `mapstructure:"dedup_ttl_minutes"`
	DefaultLocale   string `mapstructure:"default_locale"`
}

func (n *NotificationConfig) DedupTTL() time.Duration {
	return time.Duration(n.DedupTTLMinutes) * time.Minute
}

type WorkflowConfig struct {
	StaleRequestAfterHours  int `mapstructure:"stale_request_after_hours"`
	ReminderIntervalMinutes int `mapstructure:"reminder_interval_minutes"`
}

func (w *WorkflowConfig) StaleRequestAfter() time.Duration {
	return time.Duration(w.StaleRequestAfterHours) * time.Hour
}

func (w *WorkflowConfig) ReminderInterval() time.Duration {
	return time.Duration(w.ReminderIntervalMinutes) * time.Minute
}

type RBACConfig struct {
	PolicyFile string `mapstructure:"policy_file"`
}

// RateLimitConfig caps write endpoints per user. Requires redis.
type RateLimitConfig struct {
	Enabled               bool `mapstructure:"enabled"`
	CreateRequestsPerHour int  `mapstructure:"create_requests_per_hour"`
	ResponsesPerHour      int  `mapstructure:"responses_per_hour"`
}
