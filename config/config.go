package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/models"
)

// Config holds the project config values
type Config struct {
	URL            string
	DatabaseName   string
	BaseURL        string
	Port           string
	Environment    string
	BackendURL     string
	BackendTimeout time.Duration
	SimulatorURL   string
	AllowedOrigins []string
	PingSchedule   string
	RequestTimeout time.Duration
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "production")

	//setup zap logger and replace default logger
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:            os.Getenv("DB_URI"),
		DatabaseName:   getEnv("DB_NAME", "cordial"),
		BaseURL:        os.Getenv("BASE_URL"),
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		BackendURL:     getEnv("CORDIAL_API_URL", "http://127.0.0.1:5000/api"),
		BackendTimeout: getDurationEnv("CORDIAL_API_TIMEOUT", 10*time.Second),
		SimulatorURL:   getEnv("SIMULATOR_URL", "http://localhost:8000"),
		AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"*"}),
		PingSchedule:   getEnv("BACKEND_PING_SCHEDULE", "@every 1m"),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 30*time.Second),
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err. The cause is only logged, never written.
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With("error", err).Error(message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_ = json.NewEncoder(w).Encode(models.ErrorMessageResponse{Response: message})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getListEnv(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
