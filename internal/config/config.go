package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout int
	Timeout     int
	Prefix      string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
}

type AppConfig struct {
	OutputDir  string
	Seed       uint64
	LogLevel   string
	ExportXLSX bool
	Redis      RedisConfig
	S3         S3Config
}

// S3Enabled reports whether generated files should also be published to a bucket.
func (c AppConfig) S3Enabled() bool {
	return c.S3.Endpoint != ""
}

// RedisEnabled reports whether run status should be tracked in redis.
func (c AppConfig) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid int value %q", s)
	}
	return i
}

func mustUint64(s string) uint64 {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid unsigned value %q", s)
	}
	return u
}

func mustBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid bool value %q", s)
	}
	return b
}

func Load() AppConfig {
	return AppConfig{
		OutputDir:  getenv("OUTPUT_DIR", "."),
		Seed:       mustUint64(getenv("GENERATOR_SEED", "0")),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		ExportXLSX: mustBool(getenv("EXPORT_XLSX", "false")),
		Redis: RedisConfig{
			Addr:        getenv("REDIS_ADDR", ""),
			Password:    getenv("REDIS_PASSWORD", ""),
			DB:          mustAtoi(getenv("REDIS_DB", "0")),
			MaxRetries:  mustAtoi(getenv("REDIS_MAX_RETRIES", "5")),
			DialTimeout: mustAtoi(getenv("REDIS_DIAL_TIMEOUT", "10")),
			Timeout:     mustAtoi(getenv("REDIS_TIMEOUT", "5")),
			Prefix:      getenv("REDIS_PREFIX", "cardgen_"),
		},
		S3: S3Config{
			Endpoint:        getenv("S3_ENDPOINT", ""),
			AccessKeyID:     getenv("S3_ACCESS_KEY", "minio"),
			SecretAccessKey: getenv("S3_SECRET_KEY", "minio123"),
			Bucket:          getenv("S3_BUCKET", "fixtures"),
			Region:          getenv("S3_REGION", "us-east-1"),
			UseSSL:          mustBool(getenv("S3_USE_SSL", "false")),
			Prefix:          getenv("S3_PREFIX", ""),
		},
	}
}
