package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var AppEnv Config

type Config struct {
	Port              string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	AccessTokenTTL    time.Duration

	BankName          string
	BankAccountName   string
	BankAccountNumber string
	QRImage           string

	VapidPublic  string
	VapidPrivate string
	VapidSubject string

	DataFile  string
	UploadDir string
	LogLevel  string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug(".env not loaded")
	}
	AppEnv = Config{
		Port:              getEnvOrDefault("PORT", "3000"),
		AdminPassword:     getEnvOrDefault("ADMIN_PASSWORD", "admin123"),
		AdminPasswordHash: getEnvOrDefault("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", "changeme"),
		AccessTokenTTL:    getDurationEnv("ACCESS_TOKEN_TTL", 12, time.Hour),

		BankName:          getEnvOrDefault("BANK_NAME", "BVBank"),
		BankAccountName:   getEnvOrDefault("BANK_ACCOUNT_NAME", "TRUONG LUU QUAN"),
		BankAccountNumber: getEnvOrDefault("BANK_ACCOUNT_NUMBER", "0336440523"),
		QRImage:           getEnvOrDefault("VIETQR_IMAGE", "/img/vietqr.png"),

		VapidPublic:  getEnvOrDefault("VAPID_PUBLIC", ""),
		VapidPrivate: getEnvOrDefault("VAPID_PRIVATE", ""),
		VapidSubject: getEnvOrDefault("VAPID_SUBJECT", "mailto:admin@example.com"),

		DataFile:  getEnvOrDefault("DATA_FILE", "/data/db.json"),
		UploadDir: getEnvOrDefault("UPLOAD_DIR", "/data/uploads"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
