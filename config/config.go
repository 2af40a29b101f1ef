package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Server  ServerConfig
	JWT     JWTConfig
	Weather WeatherConfig
	Models  ModelConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Data    DataConfig
}

type ServerConfig struct {
	Port        int    `validate:"gt=0,lte=65535"`
	Environment string `validate:"oneof=development production"`
	LogLevel    string `validate:"oneof=debug info warn error"`
}

type JWTConfig struct {
	Secret string
	// DevMode disables token validation entirely. Security-relevant: it must
	// stay off in production deployments.
	DevMode bool
}

type WeatherConfig struct {
	APIKey     string
	BaseURL    string `validate:"url"`
	Lat        float64
	Lon        float64
	TimeoutSec int `validate:"gt=0"`
}

// Configured reports whether a provider key is present; surfaced by /health.
func (w WeatherConfig) Configured() bool { return w.APIKey != "" }

type ModelConfig struct {
	TaxiURL    string `validate:"omitempty,url"`
	SubwayURL  string `validate:"omitempty,url"`
	TimeoutSec int    `validate:"gt=0"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins string
}

type DataConfig struct {
	ZonesPath       string `validate:"required"`
	StationsPath    string `validate:"required"`
	StationZonePath string `validate:"required"`
	TaxiStatsPath   string `validate:"required"`
	SubwayStatsPath string `validate:"required"`
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 5000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	weatherTimeout, err := getIntEnv("WEATHER_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_TIMEOUT_SEC: %w", err)
	}
	modelTimeout, err := getIntEnv("MODEL_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid MODEL_TIMEOUT_SEC: %w", err)
	}
	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        serverPort,
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret:  getEnv("JWT_SECRET", ""),
			DevMode: getBoolEnv("DEV_MODE", false),
		},
		Weather: WeatherConfig{
			APIKey:     getEnv("OPENWEATHER_API_KEY", ""),
			BaseURL:    getEnv("OPENWEATHER_BASE_URL", "http://api.openweathermap.org/data/2.5"),
			Lat:        40.75,
			Lon:        -73.99,
			TimeoutSec: weatherTimeout,
		},
		Models: ModelConfig{
			TaxiURL:    getEnv("TAXI_MODEL_URL", "http://localhost:8501/v1/taxi"),
			SubwayURL:  getEnv("SUBWAY_MODEL_URL", "http://localhost:8501/v1/subway"),
			TimeoutSec: modelTimeout,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Data: DataConfig{
			ZonesPath:       getEnv("ZONES_CSV", "./data/manhattan_taxi_zones.csv"),
			StationsPath:    getEnv("STATIONS_CSV", "./data/subway_stations.csv"),
			StationZonePath: getEnv("STATION_ZONE_CSV", "./data/station_to_zone_mapping.csv"),
			TaxiStatsPath:   getEnv("TAXI_STATS_CSV", "./data/zone_taxi_busyness_stats.csv"),
			SubwayStatsPath: getEnv("SUBWAY_STATS_CSV", "./data/zone_subway_busyness_stats.csv"),
		},
	}

	if !cfg.JWT.DevMode && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required unless DEV_MODE=true")
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(key string, fallback bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value == "true" || value == "1"
}
