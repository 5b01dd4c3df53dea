package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultLLMBaseURL = "https://api.groq.com/openai/v1"
	DefaultLLMModel   = "qwen/qwen3-32b"
)

// Environment holds validated environment configuration
type Environment struct {
	GitHubToken string
	LLMKey      string
	LLMBaseURL  string
	LLMModel    string
	Temperature float64

	Host  string
	Port  string
	Debug bool

	RequestTimeout    time.Duration
	GenerationTimeout time.Duration
	ShutdownTimeout   time.Duration

	WalkMaxDepth    int
	WalkMaxEntries  int
	WalkConcurrency int
	GitHubRPS       float64

	AllowedOrigins []string
}

// Capabilities says which optional backends the credentials unlock
type Capabilities struct {
	// AuthenticatedSource raises the GitHub rate limit; absence only slows things down.
	AuthenticatedSource bool
	// Generation gates the completion call; without it the fallback template is used.
	Generation bool
}

// Load reads .env.local and .env (both optional) and then the process environment
func Load() (*Environment, error) {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", file, err)
			}
		}
	}

	env := &Environment{
		GitHubToken:       os.Getenv("GITHUB_TOKEN"),
		LLMKey:            getEnv("GROQ_API_KEY", os.Getenv("OPENAI_API_KEY")),
		LLMBaseURL:        getEnv("LLM_BASE_URL", DefaultLLMBaseURL),
		LLMModel:          getEnv("LLM_MODEL", DefaultLLMModel),
		Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.7),
		Host:              getEnv("HOST", "0.0.0.0"),
		Port:              getEnv("PORT", "8080"),
		Debug:             getEnvAsBool("DEBUG", false),
		RequestTimeout:    time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 120)) * time.Second,
		GenerationTimeout: time.Duration(getEnvAsInt("GENERATION_TIMEOUT_SECONDS", 90)) * time.Second,
		ShutdownTimeout:   time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 5)) * time.Second,
		WalkMaxDepth:      getEnvAsInt("WALK_MAX_DEPTH", 8),
		WalkMaxEntries:    getEnvAsInt("WALK_MAX_ENTRIES", 2000),
		WalkConcurrency:   getEnvAsInt("WALK_CONCURRENCY", 8),
		GitHubRPS:         getEnvAsFloat("GITHUB_REQUESTS_PER_SECOND", 10),
		AllowedOrigins:    getEnvAsSlice("CORS_ALLOWED_ORIGINS", ",", []string{"*"}),
	}

	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return env, nil
}

// Validate checks limits and timeouts
func (e *Environment) Validate() error {
	if e.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if e.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT_SECONDS must be positive")
	}
	if e.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}
	if e.WalkMaxDepth <= 0 {
		return fmt.Errorf("WALK_MAX_DEPTH must be positive")
	}
	if e.WalkMaxEntries <= 0 {
		return fmt.Errorf("WALK_MAX_ENTRIES must be positive")
	}
	if e.WalkConcurrency <= 0 {
		return fmt.Errorf("WALK_CONCURRENCY must be positive")
	}
	if e.GitHubRPS <= 0 {
		return fmt.Errorf("GITHUB_REQUESTS_PER_SECOND must be positive")
	}
	if e.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

// Capabilities derives the credential-gated feature flags
func (e *Environment) Capabilities() Capabilities {
	return Capabilities{
		AuthenticatedSource: e.GitHubToken != "",
		Generation:          e.LLMKey != "",
	}
}

// Address returns host:port for the HTTP listener
func (e *Environment) Address() string {
	return fmt.Sprintf("%s:%s", e.Host, e.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsSlice(key, separator string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, separator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
