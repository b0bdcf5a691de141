package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Drivers de persistência aceitos para o store de blobs.
const (
	DriverMemoria  = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port          int
	StorageDriver string
	StorageStrict bool
	RedisURL      string
	DBDSN         string

	JWTSecret    string
	JWTAccessTTL time.Duration

	AllowOrigins []string

	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig

	AnexoMaxBytes int64
	AnexoDir      string
	AnexoBaseURL  string

	// AdminPasswordHash, quando presente, exige senha nos logins
	// administrativos. Vazio preserva o login por e-mail do portal original.
	AdminPasswordHash string
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", DriverMemoria)))
	switch cfg.StorageDriver {
	case DriverMemoria:
	case DriverRedis:
		cfg.RedisURL = getEnv("REDIS_URL", "")
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL obrigatório com STORAGE_DRIVER=redis")
		}
	case DriverPostgres:
		cfg.DBDSN = getEnv("DB_DSN", "")
		if cfg.DBDSN == "" {
			return nil, errors.New("DB_DSN obrigatório com STORAGE_DRIVER=postgres")
		}
	default:
		return nil, errors.New("STORAGE_DRIVER não suportado: " + cfg.StorageDriver)
	}

	cfg.StorageStrict = strings.EqualFold(getEnv("STORAGE_STRICT", "false"), "true")

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	accessTTL, err := parseDurationEnv("JWT_ACCESS_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTAccessTTL = accessTTL

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	anexoMaxStr := getEnv("ANEXO_MAX_BYTES", "")
	if anexoMaxStr != "" {
		max, err := strconv.ParseInt(anexoMaxStr, 10, 64)
		if err != nil || max <= 0 {
			return nil, errors.New("ANEXO_MAX_BYTES inválido")
		}
		cfg.AnexoMaxBytes = max
	}

	cfg.AnexoDir = strings.TrimSpace(getEnv("ANEXO_DIR", ""))
	cfg.AnexoBaseURL = strings.TrimSpace(getEnv("ANEXO_BASE_URL", "/anexos"))

	cfg.AdminPasswordHash = strings.TrimSpace(getEnv("ADMIN_PASSWORD_HASH", ""))

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
