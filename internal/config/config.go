package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Storage    StorageConfig
	AI         AIConfig
	GitHub     GitHubConfig
	Upload     UploadConfig
	Extraction ExtractionConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type StorageConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// Two logical buckets: raw resumes/CVs and other source documents.
	ResumeBucket   string
	DocumentBucket string
}

type AIConfig struct {
	APIKey string
	Model  string
}

type GitHubConfig struct {
	APIBase  string
	Token    string
	CacheTTL time.Duration
}

type UploadConfig struct {
	MaxFileBytes     int64
	BatchSize        int
	BatchParallelism int
}

type ExtractionConfig struct {
	// DeriveExplicit forces threshold-derived explicitness even when the
	// extractor supplies its own flag.
	DeriveExplicit bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := opt(key)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return def
		}
		return d
	}
	optInt := func(key string, def int) int {
		v := opt(key)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	}
	optBool := func(key string, def bool) bool {
		v := strings.ToLower(opt(key))
		if v == "" {
			return def
		}
		return v == "1" || v == "true" || v == "yes"
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                optDefault("DB_HOST", "localhost"),
		DBPort:                optDefault("DB_PORT", "5432"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		MigrationsDir:         opt("DB_MIGRATIONS_DIR"),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Storage = StorageConfig{
		Endpoint:       opt("STORAGE_ENDPOINT"),
		Region:         optDefault("STORAGE_REGION", "auto"),
		AccessKey:      opt("STORAGE_ACCESS_KEY"),
		SecretKey:      opt("STORAGE_SECRET_KEY"),
		ResumeBucket:   optDefault("STORAGE_RESUME_BUCKET", "resumes"),
		DocumentBucket: optDefault("STORAGE_DOCUMENT_BUCKET", "documents"),
	}

	cfg.AI = AIConfig{
		APIKey: opt("AI_API_KEY"),
		Model:  optDefault("AI_MODEL", "gemini-2.0-flash"),
	}

	cfg.GitHub = GitHubConfig{
		APIBase:  optDefault("GITHUB_API_BASE", "https://api.github.com"),
		Token:    opt("GITHUB_TOKEN"),
		CacheTTL: optDuration("GITHUB_CACHE_TTL", 30*time.Minute),
	}

	cfg.Upload = UploadConfig{
		MaxFileBytes:     int64(optInt("UPLOAD_MAX_FILE_BYTES", 10<<20)),
		BatchSize:        optInt("UPLOAD_BATCH_SIZE", 10),
		BatchParallelism: optInt("UPLOAD_BATCH_PARALLELISM", 3),
	}

	cfg.Extraction = ExtractionConfig{
		DeriveExplicit: optBool("EXTRACTION_DERIVE_EXPLICIT", false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
