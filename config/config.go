package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Uploads  UploadConfig
	Logging  LoggingConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port int
	Mode string // debug, release, test
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds JWT session settings
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// UploadConfig holds document upload settings
type UploadConfig struct {
	Dir       string
	MaxSizeMB int64
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string
	File  string // when set, logs rotate in this file instead of stdout
}

// NewRelicConfig holds the New Relic configuration
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// InitConfig initializes the configuration using Viper
func InitConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/absuma")
		viper.SetConfigName("config")
	}

	// Env overrides: ABSUMA_SERVER_PORT overrides server.port
	viper.SetEnvPrefix("ABSUMA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, defaults and environment variables apply
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "absuma")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("auth.jwtsecret", "")
	viper.SetDefault("auth.tokenttlhours", 72)

	viper.SetDefault("uploads.dir", "./uploads")
	viper.SetDefault("uploads.maxsizemb", 10)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")

	viper.SetDefault("newrelic.appname", "Absuma Backoffice")
	viper.SetDefault("newrelic.licensekey", "")
	viper.SetDefault("newrelic.enabled", false)
}

// Load builds a Config from the current Viper state
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("server.port"),
			Mode: viper.GetString("server.mode"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("database.host"),
			Port:     viper.GetInt("database.port"),
			User:     viper.GetString("database.user"),
			Password: viper.GetString("database.password"),
			DBName:   viper.GetString("database.dbname"),
			SSLMode:  viper.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Auth: AuthConfig{
			JWTSecret:     viper.GetString("auth.jwtsecret"),
			TokenTTLHours: viper.GetInt("auth.tokenttlhours"),
		},
		Uploads: UploadConfig{
			Dir:       viper.GetString("uploads.dir"),
			MaxSizeMB: viper.GetInt64("uploads.maxsizemb"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("logging.level"),
			File:  viper.GetString("logging.file"),
		},
		NewRelic: NewRelicConfig{
			AppName:    viper.GetString("newrelic.appname"),
			LicenseKey: viper.GetString("newrelic.licensekey"),
			Enabled:    viper.GetBool("newrelic.enabled"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwtsecret (ABSUMA_AUTH_JWTSECRET) must be set")
	}

	return cfg, nil
}
