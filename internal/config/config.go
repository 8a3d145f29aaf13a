package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	Redis        RedisConfig
	Gemini       GeminiConfig
	YouTube      YouTubeConfig
	Auth         AuthConfig
	Logger       LoggerConfig
	CourseSearch CourseSearchConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GeminiConfig holds the generative-language API settings. The key is never
// defaulted; missing credentials are a startup failure, not a runtime guess.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type YouTubeConfig struct {
	APIKey string
}

type AuthConfig struct {
	// JWTSecret verifies tokens issued by the hosted auth provider.
	JWTSecret string
}

type LoggerConfig struct {
	Level string
	Env   string
}

type CourseSearchConfig struct {
	CacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("db.ssl_mode", "require")
	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("gemini.timeout", 45)
	viper.SetDefault("course_search.cache_ttl", 600)
	viper.SetDefault("logger.level", "info")

	// The config file is optional; everything can come from the environment.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.ssl_mode"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Gemini: GeminiConfig{
			APIKey:  viper.GetString("gemini.api_key"),
			Model:   viper.GetString("gemini.model"),
			Timeout: viper.GetDuration("gemini.timeout") * time.Second,
		},
		YouTube: YouTubeConfig{
			APIKey: viper.GetString("youtube.api_key"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("auth.jwt_secret"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		CourseSearch: CourseSearchConfig{
			CacheTTL: viper.GetDuration("course_search.cache_ttl") * time.Second,
		},
	}

	// Environment overrides for deployments that do not ship a config file.
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT %q: %w", port, err)
		}
		config.DB.Port = p
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		config.Gemini.APIKey = geminiKey
	}
	if youtubeKey := os.Getenv("YOUTUBE_API_KEY"); youtubeKey != "" {
		config.YouTube.APIKey = youtubeKey
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.Auth.JWTSecret = jwtSecret
	}

	return config, nil
}

// Validate rejects configurations that would only fail later at request time.
// Credential material has no fallback value on purpose.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api key is not configured (set GEMINI_API_KEY)")
	}
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("youtube api key is not configured (set YOUTUBE_API_KEY)")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret is not configured (set JWT_SECRET)")
	}
	if c.DB.Host == "" || c.DB.DBName == "" {
		return fmt.Errorf("database connection is not configured")
	}
	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
