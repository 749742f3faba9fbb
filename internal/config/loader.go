package config

import (
	"fmt"

	"github.com/rkaranja/facility-registry/internal/db"
	"github.com/spf13/viper"
)

// Config holds the full service configuration.
type Config struct {
	ServerAddr    string
	AllowedOrigin string
	LogLevel      string
	LogFormat     string
	Database      db.Config
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		ServerAddr:    ":8080",
		AllowedOrigin: "http://localhost:3000",
		LogLevel:      "info",
		LogFormat:     "json",
		Database:      db.DefaultConfig(),
	}
}

// Load reads config.yaml from configPath, allowing environment overrides
// (APP_SERVER_ADDR, APP_DATABASE_HOST, ...) on top of the defaults.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")

	v.BindEnv("server.addr")
	v.BindEnv("server.allowed_origin")
	v.BindEnv("log.level")
	v.BindEnv("log.format")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.ServerAddr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origin") {
		cfg.AllowedOrigin = v.GetString("server.allowed_origin")
	}
	if v.IsSet("log.level") {
		cfg.LogLevel = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		cfg.LogFormat = v.GetString("log.format")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}

	return cfg, nil
}
