package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env              string
	HTTPPort         string
	DatabaseURL      string
	MigrationsPath   string
	MediaStoragePath string
	MaxUploadSizeMB  int64
	AllowedOrigins   []string
	RateLimitLimit   int64
	RateLimitPeriod  time.Duration
	JobsPageSize     int
	ArtisansPageSize int
	ProductsPageSize int
	WaitlistDelay    time.Duration
	SubmitTimeout    time.Duration
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	return FromEnv()
}

// FromEnv собирает конфигурацию из уже загруженного окружения.
func FromEnv() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:              env,
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseURL:      getDatabaseURL(),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
		MediaStoragePath: getEnv("MEDIA_STORAGE_PATH", "./storage/media"),
	}

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	} else {
		for _, origin := range strings.Split(originsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	var err error
	if cfg.MaxUploadSizeMB, err = parseInt64("MAX_UPLOAD_MB", "10"); err != nil {
		return nil, err
	}
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", "10"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = parseDuration("RATE_LIMIT_PERIOD", "1m"); err != nil {
		return nil, err
	}
	if cfg.WaitlistDelay, err = parseDuration("WAITLIST_DELAY", "1500ms"); err != nil {
		return nil, err
	}
	if cfg.SubmitTimeout, err = parseDuration("SUBMIT_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.JobsPageSize, err = parseInt("JOBS_PAGE_SIZE", "3"); err != nil {
		return nil, err
	}
	if cfg.ArtisansPageSize, err = parseInt("ARTISANS_PAGE_SIZE", "6"); err != nil {
		return nil, err
	}
	if cfg.ProductsPageSize, err = parseInt("PRODUCTS_PAGE_SIZE", "6"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getDatabaseURL возвращает DATABASE_URL либо из переменной, либо собирает из отдельных переменных.
// Пустая строка означает, что заявки пишутся только в лог.
func getDatabaseURL() string {
	if dbURL := getEnv("DATABASE_URL", ""); dbURL != "" {
		return dbURL
	}

	host := getEnv("POSTGRESQL_HOST", "")
	port := getEnv("POSTGRESQL_PORT", "5432")
	user := getEnv("POSTGRESQL_USER", "")
	password := getEnv("POSTGRESQL_PASSWORD", "")
	dbname := getEnv("POSTGRESQL_DBNAME", "")

	if host != "" && user != "" && dbname != "" {
		// url.UserPassword корректно кодирует спецсимволы в логине и пароле
		userInfo := url.UserPassword(user, password)
		return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable",
			userInfo.String(), host, port, dbname)
	}

	return ""
}

// parseDuration читает длительность из окружения.
func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить длительность %s=%q: %w", key, v, err)
	}
	if dur < 0 {
		return 0, fmt.Errorf("config: %s не может быть отрицательным", key)
	}
	return dur, nil
}

// parseInt64 читает целое число из окружения.
func parseInt64(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить число %s=%q: %w", key, v, err)
	}
	return num, nil
}

// parseInt читает положительный размер страницы.
func parseInt(key, fallback string) (int, error) {
	num, err := parseInt64(key, fallback)
	if err != nil {
		return 0, err
	}
	if num <= 0 {
		return 0, fmt.Errorf("config: %s должен быть положительным", key)
	}
	return int(num), nil
}
