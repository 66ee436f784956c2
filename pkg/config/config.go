package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendMemory    = "memory"

	devJWTSecret = "dev-only-jwt-secret"
)

type Config struct {
	Port                    string
	Env                     string
	StoreBackend            string
	FirebaseCredentialsPath string
	FirebaseProjectID       string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	CORSOrigins             []string
	SiteURL                 string
	RateLimitPerMinute      int
}

// Load reads configuration from the environment, after loading a .env file if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	explicitEnv := os.Getenv("ENV")
	env := getEnv("ENV", "development")
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     env,
		StoreBackend:            strings.ToLower(getEnv("STORE_BACKEND", BackendFirestore)),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "youdeservebetter"),
		JWTSecret:               getEnv("JWT_SECRET", defaultJWTSecret(explicitEnv)),
		CORSOrigins:             splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SiteURL:                 strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),
		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 20),
	}
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// defaultJWTSecret supplies a well-known secret only when ENV is explicitly
// "development". Every other environment must set JWT_SECRET.
func defaultJWTSecret(explicitEnv string) string {
	if explicitEnv != "development" || os.Getenv("JWT_SECRET") != "" {
		return ""
	}
	log.Println("WARNING: JWT_SECRET not set, signing tokens with the development secret.")
	return devJWTSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
