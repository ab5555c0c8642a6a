package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppHost      string `mapstructure:"APP_HOST"`
	AppPort      int    `mapstructure:"APP_PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisPrefix   string `mapstructure:"REDIS_PREFIX"`

	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	LogLevel        string `mapstructure:"LOG_LEVEL"`
	LogFile         string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB    int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups   int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays   int    `mapstructure:"LOG_MAX_AGE_DAYS"`
	DefaultLanguage string `mapstructure:"DEFAULT_LANGUAGE"`
	DefaultTheme    string `mapstructure:"DEFAULT_THEME"`

	SearchDebounce time.Duration `mapstructure:"SEARCH_DEBOUNCE"`
	SearchMinChars int           `mapstructure:"SEARCH_MIN_CHARS"`
	SearchLimit    int           `mapstructure:"SEARCH_LIMIT"`
	HistoryWindow  int           `mapstructure:"HISTORY_WINDOW"`

	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
	BridgeBuffer   int      `mapstructure:"BRIDGE_BUFFER"`

	// ConfigFile is the .env file that was read, empty when only the
	// environment and defaults were used.
	ConfigFile string `mapstructure:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	v := newViper()
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// LoadConfig reads <path>/.env when it exists and overlays the environment.
// An empty path searches the working directory.
func LoadConfig(path string) (*Config, error) {
	v := newViper()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	if path != "" {
		v.AddConfigPath(path)
	} else {
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("APP_HOST", "127.0.0.1")
	v.SetDefault("APP_PORT", 8000)
	v.SetDefault("DATABASE_PATH", "./data/weather-chatbot.db")
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "weather-chatbot:")
	v.SetDefault("API_BASE_URL", "http://localhost:3001/api")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 10)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("DEFAULT_LANGUAGE", "")
	v.SetDefault("DEFAULT_THEME", "light")
	v.SetDefault("SEARCH_DEBOUNCE", "300ms")
	v.SetDefault("SEARCH_MIN_CHARS", 2)
	v.SetDefault("SEARCH_LIMIT", 5)
	v.SetDefault("HISTORY_WINDOW", 10)
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173"})
	v.SetDefault("BRIDGE_BUFFER", 64)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}
