package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config содержит все настройки загрузчика, читаемые из окружения.
type Config struct {
	Host     string `mapstructure:"db_host" validate:"required"`
	Port     int    `mapstructure:"db_port" validate:"required,min=1,max=65535"`
	User     string `mapstructure:"db_user" validate:"required"`
	Password string `mapstructure:"db_password"`
	Database string `mapstructure:"db_name" validate:"required"`

	SourceTable string `mapstructure:"source_table" validate:"required"`
	TargetTable string `mapstructure:"target_table" validate:"required,nefield=SourceTable"`

	TotalRecords int64 `mapstructure:"total_records" validate:"min=0"`
	BatchSize    int   `mapstructure:"batch_size" validate:"required,min=1"`
	Threads      int   `mapstructure:"threads" validate:"required,min=1"`

	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
	LogFormat   string `mapstructure:"log_format" validate:"required,oneof=json console"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Load читает конфигурацию из переменных окружения с дефолтами.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "guardian")
	v.SetDefault("source_table", "channel_txn")
	v.SetDefault("target_table", "channel_txn_temp")
	v.SetDefault("total_records", 17_000_000)
	v.SetDefault("batch_size", 50_000)
	v.SetDefault("threads", 4)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("metrics_addr", ":8091")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DatabaseURL собирает строку подключения для pgx.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Database)
}
