package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress string
	MongoURI      string
	MongoDB       string

	JWTSecret     string
	JWTExpiration time.Duration

	// AuthProvider selects the token scheme: "jwt" (self-issued, default)
	// or "firebase" (verify Firebase ID tokens instead).
	AuthProvider            string
	FirebaseProjectID       string
	FirebaseCredentialsJSON string

	// WhatsAppNumber is the business number bookings are handed off to,
	// digits only with country code.
	WhatsAppNumber string

	// AllowAdminBootstrap enables POST /api/create-admin. Development only.
	AllowAdminBootstrap bool

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		ServerAddress:           getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:                getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:                 getEnv("MONGODB_DB", "shutterhub"),
		JWTSecret:               getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:           24 * time.Hour,
		AuthProvider:            getEnv("AUTH_PROVIDER", "jwt"),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		WhatsAppNumber:          getEnv("WHATSAPP_NUMBER", "919940423791"),
		AllowAdminBootstrap:     getEnv("ALLOW_ADMIN_BOOTSTRAP", "false") == "true",
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
