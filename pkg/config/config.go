package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Storage     StorageConfig
	Media       MediaConfig
	FFmpeg      FFmpegConfig
	Transcriber TranscriberConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CacheConfig selects the processing-lock store backend
type CacheConfig struct {
	// Driver is "redis" or "memory". Memory is only meant for local
	// development where a Redis instance is not running.
	Driver  string
	LockTTL time.Duration
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
	PresignExpiry   time.Duration
}

// MediaConfig constrains uploaded media files
type MediaConfig struct {
	MaxUploadBytes    int64
	AllowedExtensions []string
}

// FFmpegConfig holds audio extraction configuration
type FFmpegConfig struct {
	BinaryPath string
	SampleRate int
	Timeout    time.Duration
	// Extensions that are already audio-only and skip extraction entirely.
	AudioExtensions []string
}

// TranscriberConfig selects the chunker engine
type TranscriberConfig struct {
	// Engine is "dummy" (default) or "assemblyai".
	Engine         string
	AssemblyAPIKey string
	ProcessTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", "http://localhost:5173"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "vodcomms"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Driver:  getEnv("CACHE_DRIVER", "redis"),
			LockTTL: getEnvAsDuration("PROCESS_LOCK_TTL", "10m"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "vodcomms"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
			PresignExpiry:   getEnvAsDuration("STORAGE_PRESIGN_EXPIRY", "1h"),
		},
		Media: MediaConfig{
			MaxUploadBytes:    getEnvAsInt64("MEDIA_MAX_UPLOAD_BYTES", 2<<30),
			AllowedExtensions: getEnvAsSlice("MEDIA_ALLOWED_EXTENSIONS", ".mp4,.mkv,.mov,.webm,.avi,.wav,.mp3,.m4a,.ogg,.flac"),
		},
		FFmpeg: FFmpegConfig{
			BinaryPath:      getEnv("FFMPEG_PATH", "ffmpeg"),
			SampleRate:      getEnvAsInt("FFMPEG_SAMPLE_RATE", 16000),
			Timeout:         getEnvAsDuration("FFMPEG_TIMEOUT", "10m"),
			AudioExtensions: getEnvAsSlice("FFMPEG_AUDIO_EXTENSIONS", ".wav,.mp3,.m4a,.ogg,.flac"),
		},
		Transcriber: TranscriberConfig{
			Engine:         getEnv("TRANSCRIBER_ENGINE", "dummy"),
			AssemblyAPIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
			ProcessTimeout: getEnvAsDuration("PROCESS_TIMEOUT", "15m"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("CACHE_DRIVER must be redis or memory, got %q", c.Cache.Driver)
	}
	switch c.Transcriber.Engine {
	case "dummy":
	case "assemblyai":
		if c.Transcriber.AssemblyAPIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required when TRANSCRIBER_ENGINE=assemblyai")
		}
	default:
		return fmt.Errorf("TRANSCRIBER_ENGINE must be dummy or assemblyai, got %q", c.Transcriber.Engine)
	}
	if c.Media.MaxUploadBytes <= 0 {
		return fmt.Errorf("MEDIA_MAX_UPLOAD_BYTES must be positive")
	}
	if c.FFmpeg.SampleRate <= 0 {
		return fmt.Errorf("FFMPEG_SAMPLE_RATE must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsSlice(key string, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
