package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingBucket is returned when neither S3_BUCKET_NAME nor AWS_BUCKET_NAME is set
var ErrMissingBucket = errors.New("missing required environment variable (S3_BUCKET_NAME)")

type Config struct {
	// Storage
	Driver             string
	BucketName         string
	AccessKeyID        string
	SecretAccessKey    string
	SessionToken       string
	LambdaFunctionName string
	Region             string
	Endpoint           string // Custom endpoint for S3-compatible storage
	LocalRoot          string
	ListPageSize       int32

	// S3 HTTP client tuning
	S3ConnectTimeout time.Duration
	S3RequestTimeout time.Duration
	S3MaxIdleConns   int

	// Local HTTP server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ListCacheTTL      time.Duration
	ListCacheMaxSize  int64

	LogLevel string
}

func Load() *Config {
	return &Config{
		Driver:             strings.ToLower(getEnv("STORAGE_DRIVER", "s3")),
		BucketName:         firstEnv("S3_BUCKET_NAME", "AWS_BUCKET_NAME"),
		AccessKeyID:        os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:       os.Getenv("AWS_SESSION_TOKEN"),
		LambdaFunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:             getEnv("AWS_REGION", getEnv("AWS_DEFAULT_REGION", "us-east-1")),
		Endpoint:           os.Getenv("S3_ENDPOINT"),
		LocalRoot:          getEnv("LOCAL_STORAGE_ROOT", "./data"),
		ListPageSize:       int32(min(getEnvInt("S3_LIST_PAGE_SIZE", 1000), 1000)), // S3 caps pages at 1000 keys
		S3ConnectTimeout:   getEnvDurationSeconds("S3_CONNECT_TIMEOUT_SECONDS", 10),
		S3RequestTimeout:   getEnvDurationSeconds("S3_REQUEST_TIMEOUT_SECONDS", 30),
		S3MaxIdleConns:     getEnvInt("S3_MAX_IDLE_CONNS", 100),
		Port:               getEnv("PORT", "8080"),
		ReadTimeout:        getEnvDurationSeconds("HTTP_READ_TIMEOUT_SECONDS", 5),
		ReadHeaderTimeout:  getEnvDurationSeconds("HTTP_READ_HEADER_TIMEOUT_SECONDS", 2),
		WriteTimeout:       getEnvDurationSeconds("HTTP_WRITE_TIMEOUT_SECONDS", 60),
		IdleTimeout:        getEnvDurationSeconds("HTTP_IDLE_TIMEOUT_SECONDS", 120),
		ListCacheTTL:       time.Duration(getEnvNonNegativeInt("LIST_CACHE_TTL_SECONDS", 0)) * time.Second,
		ListCacheMaxSize:   int64(getEnvInt("LIST_CACHE_MAX_SIZE_MB", 64)) * 1024 * 1024,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// InLambda reports whether the process runs inside the Lambda runtime,
// where the execution role provides credentials
func (c *Config) InLambda() bool {
	return c.LambdaFunctionName != ""
}

// HasStaticCredentials reports whether both halves of an access key pair are set
func (c *Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

func (c *Config) Validate() error {
	if c.BucketName == "" {
		return ErrMissingBucket
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}

	return parsed
}

// getEnvNonNegativeInt is like getEnvInt but accepts 0 as an explicit "off"
func getEnvNonNegativeInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return defaultValue
	}

	return parsed
}

func getEnvDurationSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}
