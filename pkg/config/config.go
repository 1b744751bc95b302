package config

import (
	"os"
	"time"
)

type Config struct {
	Port                    string
	Env                     string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	JWTSecret               string
	FirebaseCredentialsPath string
	StorageBucket           string
	FeedCacheTTL            time.Duration
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "screams"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		StorageBucket:           getEnv("STORAGE_BUCKET", ""),
		FeedCacheTTL:            getDuration("FEED_CACHE_TTL", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
