package globals

import (
	"context"
	"os"
)

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()

// Config holds every environment-derived setting. It is built once in main;
// aggregate logic never reads the environment on its own.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	JwtSecret     []byte
	AdminEmail    string
	AdminPassword string
	BusinessName  string
}

var Conf *Config

func LoadConfig() *Config {
	cfg := &Config{
		Port:          getenv("PORT", ":8080"),
		MongoURI:      getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGODB_DB", "rongchapa"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		JwtSecret:     []byte(getenv("JWT_SECRET", "change_this_secret")),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		BusinessName:  getenv("BUSINESS_NAME", "Rong Chapa"),
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}
	Conf = cfg
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
