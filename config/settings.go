package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type DBSettings struct {
	Driver   string // mysql | postgres | sqlite
	URL      string // MYSQL_URL / DATABASE_URL, driver specific
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Path     string // sqlite file
	LogLevel string
}

type RedisSettings struct {
	Addr     string
	Password string
	DB       int
}

type UploadSettings struct {
	Driver  string // local | s3
	Dir     string
	BaseURL string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

type AdminSettings struct {
	Email    string
	Password string
	Name     string
}

type Settings struct {
	Port         string
	CORSOrigins  []string
	JWTSecret    string
	CookieSecure bool
	SeedOnStart  bool

	DB     DBSettings
	Redis  RedisSettings
	Upload UploadSettings
	Admin  AdminSettings
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(envOrDefault(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Load reads .env (optional) and the process environment.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	dbURL := envOrDefault("MYSQL_URL", envOrDefault("DATABASE_URL", ""))
	redisDB, _ := strconv.Atoi(envOrDefault("REDIS_DB", "0"))

	s := &Settings{
		Port:         envOrDefault("PORT", "8080"),
		CORSOrigins:  parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		JWTSecret:    envOrDefault("JWT_SECRET", ""),
		CookieSecure: envBool("COOKIE_SECURE", false),
		SeedOnStart:  envBool("SEED_ON_START", false),
		DB: DBSettings{
			Driver:   strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
			URL:      dbURL,
			Host:     envOrDefault("DB_HOST", "127.0.0.1"),
			Port:     envOrDefault("DB_PORT", "3306"),
			User:     envOrDefault("DB_USER", "root"),
			Password: envOrDefault("DB_PASS", ""),
			Name:     envOrDefault("DB_NAME", "rentals"),
			Path:     envOrDefault("DB_PATH", "rentals.db"),
			LogLevel: strings.ToLower(envOrDefault("GORM_LOG_LEVEL", "warn")),
		},
		Redis: RedisSettings{
			Addr:     envOrDefault("REDIS_ADDR", ""),
			Password: envOrDefault("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Upload: UploadSettings{
			Driver:            strings.ToLower(envOrDefault("UPLOAD_DRIVER", "local")),
			Dir:               envOrDefault("UPLOAD_DIR", "./uploads"),
			BaseURL:           envOrDefault("UPLOAD_BASE_URL", "/uploads"),
			S3Bucket:          envOrDefault("S3_BUCKET", ""),
			S3Region:          envOrDefault("S3_REGION", "us-east-1"),
			S3Endpoint:        envOrDefault("S3_ENDPOINT", ""),
			S3AccessKeyID:     envOrDefault("S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: envOrDefault("S3_SECRET_ACCESS_KEY", ""),
			S3PublicBaseURL:   envOrDefault("S3_PUBLIC_BASE_URL", ""),
		},
		Admin: AdminSettings{
			Email:    envOrDefault("ADMIN_EMAIL", ""),
			Password: envOrDefault("ADMIN_PASSWORD", ""),
			Name:     envOrDefault("ADMIN_NAME", "Admin"),
		},
	}

	if s.JWTSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("❌ cannot generate session secret: %v", err)
		}
		s.JWTSecret = hex.EncodeToString(b)
		log.Println("⚠️  JWT_SECRET not set; using a random secret, admin sessions end on restart")
	}

	return s
}
