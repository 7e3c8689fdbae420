package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Jobs     JobsConfig
	Calendar CalendarConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// RedisConfig drives the realtime notification channel (pub/sub).
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type SMTPConfig struct {
	Host string `envconfig:"SMTP_HOST" default:"localhost"`
	Port string `envconfig:"SMTP_PORT" default:"25"`
	From string `envconfig:"SMTP_FROM" default:"noreply@scenario-booking.local"`
}

// JobsConfig controls the periodic scheduler. Intervals are overridable so
// tests and staging can tighten them.
type JobsConfig struct {
	AlertProcessInterval time.Duration `envconfig:"JOBS_ALERT_PROCESS_INTERVAL" default:"5m"`
	AlertSweepInterval   time.Duration `envconfig:"JOBS_ALERT_SWEEP_INTERVAL" default:"1h"`
	GenerateInterval     time.Duration `envconfig:"JOBS_GENERATE_INTERVAL" default:"24h"`
	SafetyPassInterval   time.Duration `envconfig:"JOBS_SAFETY_PASS_INTERVAL" default:"1h"`
	LookaheadDays        int           `envconfig:"JOBS_LOOKAHEAD_DAYS" default:"7"`
	DispatchTimeout      time.Duration `envconfig:"JOBS_DISPATCH_TIMEOUT" default:"10s"`
}

type CalendarConfig struct {
	DayStartHour      int `envconfig:"CALENDAR_DAY_START_HOUR" default:"8"`
	DayEndHour        int `envconfig:"CALENDAR_DAY_END_HOUR" default:"18"`
	SlotDurationHours int `envconfig:"CALENDAR_SLOT_DURATION_HOURS" default:"2"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Jobs: JobsConfig{
			AlertProcessInterval: time.Minute,
			AlertSweepInterval:   time.Minute,
			GenerateInterval:     time.Minute,
			SafetyPassInterval:   time.Minute,
			LookaheadDays:        7,
			DispatchTimeout:      time.Second,
		},
		Calendar: CalendarConfig{
			DayStartHour:      8,
			DayEndHour:        18,
			SlotDurationHours: 2,
		},
	}
}
