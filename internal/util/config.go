package util

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

//nolint:gochecknoglobals // here its ok
var once sync.Once

func init() {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	})
}

const (
	defaultServerAddr      = "localhost:8080"
	defaultWriteTimeout    = 10 * time.Second
	defaultReadTimeout     = 10 * time.Second
	defaultIdleTimeout     = 30 * time.Second
	defaultGracefulTimeout = 5 * time.Second

	defaultAPITimeout      = 10 * time.Second
	defaultSessionMaxAge   = 30 * 24 * time.Hour
	defaultRefetchInterval = 4 * time.Minute

	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"

	RefreshTransportBody   = "body"
	RefreshTransportCookie = "cookie"

	JWTLeeWay = 5 * time.Second
)

type ServerConfig struct {
	ServerAddr      string
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

func NewServerConfig() *ServerConfig {
	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = defaultServerAddr
	}

	return &ServerConfig{
		ServerAddr:      addr,
		WriteTimeout:    parseDurationOrDefault("WRITE_TIMEOUT", defaultWriteTimeout),
		ReadTimeout:     parseDurationOrDefault("READ_TIMEOUT", defaultReadTimeout),
		IdleTimeout:     parseDurationOrDefault("IDLE_TIMEOUT", defaultIdleTimeout),
		GracefulTimeout: parseDurationOrDefault("GRACEFUL_TIMEOUT", defaultGracefulTimeout),
	}
}

// BackendConfig describes the remote REST API every call is forwarded to.
type BackendConfig struct {
	APIURL           string
	Timeout          time.Duration
	RefreshTransport string
}

func NewBackendConfig() *BackendConfig {
	apiURL := strings.TrimRight(os.Getenv("API_URL"), "/")
	if apiURL == "" {
		log.Fatal("API_URL is not set")
	}

	transport := strings.ToLower(os.Getenv("REFRESH_TRANSPORT"))
	switch transport {
	case "":
		transport = RefreshTransportBody
	case RefreshTransportBody, RefreshTransportCookie:
	default:
		log.Printf("Invalid REFRESH_TRANSPORT: %s, using default %s", transport, RefreshTransportBody)
		transport = RefreshTransportBody
	}

	return &BackendConfig{
		APIURL:           apiURL,
		Timeout:          parseDurationOrDefault("API_TIMEOUT", defaultAPITimeout),
		RefreshTransport: transport,
	}
}

type SessionConfig struct {
	Secret          []byte
	MaxAge          time.Duration
	RefetchInterval time.Duration
	SecureCookie    bool
	Store           string
	WebhookURL      string
}

func NewSessionConfig() *SessionConfig {
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		log.Fatal("AUTH_SECRET is not set")
	}

	store := strings.ToLower(os.Getenv("SESSION_STORE"))
	switch store {
	case "":
		store = StoreMemory
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		log.Fatalf("Invalid SESSION_STORE: %s", store)
	}

	return &SessionConfig{
		Secret:          []byte(secret),
		MaxAge:          parseDurationOrDefault("SESSION_MAX_AGE", defaultSessionMaxAge),
		RefetchInterval: parseDurationOrDefault("SESSION_REFETCH_INTERVAL", defaultRefetchInterval),
		SecureCookie:    IsProduction(),
		Store:           store,
		WebhookURL:      os.Getenv("SESSION_WEBHOOK_URL"),
	}
}

func IsProduction() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "production")
}

func parseDurationOrDefault(varName string, def time.Duration) time.Duration {
	if v := os.Getenv(varName); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("Invalid duration in %s: %s, using default %s", varName, v, def)
	}
	return def
}
