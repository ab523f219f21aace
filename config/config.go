package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port          string
	MySQLDSN      string
	MigrationsDir string
	JWTSecret     string
	JWTExpiry     time.Duration
	BcryptCost    int
	KafkaBrokers  []string
	KafkaTopic    string
	LogLevel      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env file")
	}

	return &Config{
		Port:          getEnv("APP_PORT", "8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:pass@tcp(mysql:3306)/catalog?parseTime=true"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiry:     getDuration("JWT_EXPIRY", 24*time.Hour),
		BcryptCost:    getInt("BCRYPT_COST", 0),
		KafkaBrokers:  splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:    getEnv("KAFKA_ORDER_TOPIC", "catalog.orders"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("invalid %s %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.Warnf("invalid %s %q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
