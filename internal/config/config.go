package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	RedisAddr string
	CartTTL   time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// WhatsAppNumber is the store owner number order notifications are
	// addressed to, in international format without the plus sign.
	WhatsAppNumber string
	OrderPrefix    string
	StoreName      string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "khattakmart"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),

		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		CartTTL:   getDurationEnv("CART_TTL", 7, 24*time.Hour),

		MinioEndpoint:  getEnvOrDefault("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "payment-proofs"),
		MinioUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		WhatsAppNumber: getEnvOrDefault("WHATSAPP_NUMBER", "923155770026"),
		OrderPrefix:    getEnvOrDefault("ORDER_PREFIX", "KM"),
		StoreName:      getEnvOrDefault("STORE_NAME", "Khattak MART"),
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

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
