package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Tracker TrackerConfig
	Alerts  AlertsConfig
	Cache   CacheConfig
	Redis   RedisConfig
	MQTT    MQTTConfig
	Storage StorageConfig
	Log     LogConfig
}

// ServerConfig - локальный API для companion-интерфейса
type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type GatewayConfig struct {
	BaseURL        string
	Language       string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
}

type TrackerConfig struct {
	Provider          string // "mqtt" или "replay"
	ReplayPath        string
	MinDistanceMeters float64
	MinInterval       time.Duration
	MaxAccuracyM      float64
	ResolutionMode    string // "local" или "remote"
}

type AlertsConfig struct {
	RefreshInterval time.Duration
	ReportInterval  time.Duration
}

// CacheConfig - кеш ответов бэкенда: "memory" (freecache) по умолчанию,
// "redis" для shared-развёртываний
type CacheConfig struct {
	Backend      string
	MemorySizeMB int
	BeachTTL     time.Duration
	AlertTTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type MQTTConfig struct {
	Enabled        bool
	Broker         string
	ClientID       string
	LocationTopic  string
	AlertTopic     string
	ConnectTimeout time.Duration
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env опционален: агент может конфигурироваться чисто окружением
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Gateway: GatewayConfig{
			BaseURL:        viper.GetString("GATEWAY_BASE_URL"),
			Language:       viper.GetString("GATEWAY_LANGUAGE"),
			RequestTimeout: time.Duration(viper.GetInt("GATEWAY_REQUEST_TIMEOUT")) * time.Second,
			MaxRetries:     viper.GetInt("GATEWAY_MAX_RETRIES"),
			RetryBackoff:   time.Duration(viper.GetInt("GATEWAY_RETRY_BACKOFF")) * time.Second,
		},
		Tracker: TrackerConfig{
			Provider:          viper.GetString("TRACKER_PROVIDER"),
			ReplayPath:        viper.GetString("TRACKER_REPLAY_PATH"),
			MinDistanceMeters: viper.GetFloat64("TRACKER_MIN_DISTANCE_M"),
			MinInterval:       time.Duration(viper.GetInt("TRACKER_MIN_INTERVAL")) * time.Second,
			MaxAccuracyM:      viper.GetFloat64("TRACKER_MAX_ACCURACY_M"),
			ResolutionMode:    viper.GetString("TRACKER_RESOLUTION_MODE"),
		},
		Alerts: AlertsConfig{
			RefreshInterval: time.Duration(viper.GetInt("ALERTS_REFRESH_INTERVAL")) * time.Second,
			ReportInterval:  time.Duration(viper.GetInt("LOCATION_REPORT_INTERVAL")) * time.Second,
		},
		Cache: CacheConfig{
			Backend:      viper.GetString("CACHE_BACKEND"),
			MemorySizeMB: viper.GetInt("CACHE_MEMORY_SIZE_MB"),
			BeachTTL:     time.Duration(viper.GetInt("CACHE_BEACH_TTL")) * time.Second,
			AlertTTL:     time.Duration(viper.GetInt("CACHE_ALERT_TTL")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		MQTT: MQTTConfig{
			Enabled:        viper.GetBool("MQTT_ENABLED"),
			Broker:         viper.GetString("MQTT_BROKER"),
			ClientID:       viper.GetString("MQTT_CLIENT_ID"),
			LocationTopic:  viper.GetString("MQTT_LOCATION_TOPIC"),
			AlertTopic:     viper.GetString("MQTT_ALERT_TOPIC"),
			ConnectTimeout: time.Duration(viper.GetInt("MQTT_CONNECT_TIMEOUT")) * time.Second,
		},
		Storage: StorageConfig{
			DataDir: viper.GetString("DATA_DIR"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8787
	}
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = "http://localhost:8080"
	}
	if cfg.Gateway.Language == "" {
		cfg.Gateway.Language = "en"
	}
	if cfg.Gateway.RequestTimeout == 0 {
		cfg.Gateway.RequestTimeout = 10 * time.Second
	}
	if cfg.Gateway.MaxRetries == 0 {
		cfg.Gateway.MaxRetries = 3
	}
	if cfg.Gateway.RetryBackoff == 0 {
		cfg.Gateway.RetryBackoff = 2 * time.Second
	}
	if cfg.Tracker.Provider == "" {
		cfg.Tracker.Provider = "mqtt"
	}
	if cfg.Tracker.MinDistanceMeters == 0 {
		cfg.Tracker.MinDistanceMeters = 25
	}
	if cfg.Tracker.MinInterval == 0 {
		cfg.Tracker.MinInterval = 5 * time.Second
	}
	if cfg.Tracker.ResolutionMode == "" {
		cfg.Tracker.ResolutionMode = "local"
	}
	if cfg.Alerts.RefreshInterval == 0 {
		cfg.Alerts.RefreshInterval = 5 * time.Minute
	}
	if cfg.Alerts.ReportInterval == 0 {
		cfg.Alerts.ReportInterval = 30 * time.Second
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.MemorySizeMB == 0 {
		cfg.Cache.MemorySizeMB = 16
	}
	if cfg.Cache.BeachTTL == 0 {
		cfg.Cache.BeachTTL = time.Hour
	}
	if cfg.Cache.AlertTTL == 0 {
		cfg.Cache.AlertTTL = 5 * time.Minute
	}
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "beach-safety-agent"
	}
	if cfg.MQTT.LocationTopic == "" {
		cfg.MQTT.LocationTopic = "beach/location"
	}
	if cfg.MQTT.AlertTopic == "" {
		cfg.MQTT.AlertTopic = "beach/alerts"
	}
	if cfg.MQTT.ConnectTimeout == 0 {
		cfg.MQTT.ConnectTimeout = 10 * time.Second
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "./data"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
