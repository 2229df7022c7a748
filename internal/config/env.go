package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultDSN = "root:@tcp(127.0.0.1:3306)/payment?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"

type Env struct {
	AppAddr         string   `yaml:"app_addr"`
	GinMode         string   `yaml:"gin_mode"`
	DatabaseDSN     string   `yaml:"database_dsn"`
	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	JWTSecret       string   `yaml:"jwt_secret"`
	CORSOrigins     []string `yaml:"cors_allowed_origins"`
	DefaultCurrency string   `yaml:"default_currency"`
	MetricsEnabled  bool     `yaml:"metrics_enabled"`
}

func defaults() Env {
	return Env{
		AppAddr:         ":8080",
		DatabaseDSN:     defaultDSN,
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		DefaultCurrency: "USD",
		MetricsEnabled:  true,
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
	}
}

// LoadEnv builds the configuration from defaults, then CONFIG_FILE (YAML) when
// set, then environment variables. A broken config file is fatal for startup
// and reported as an error.
func LoadEnv() (Env, error) {
	env := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return env, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &env); err != nil {
			return env, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(&env)
	return env, nil
}

func applyEnv(env *Env) {
	if v := strings.TrimSpace(os.Getenv("APP_ADDR")); v != "" {
		env.AppAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("GIN_MODE")); v != "" {
		env.GinMode = v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		env.DatabaseDSN = v
	}
	if n, ok := intEnv("DB_MAX_OPEN_CONNS"); ok {
		env.MaxOpenConns = n
	}
	if n, ok := intEnv("DB_MAX_IDLE_CONNS"); ok {
		env.MaxIdleConns = n
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		env.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		env.CORSOrigins = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_CURRENCY")); v != "" {
		env.DefaultCurrency = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(os.Getenv("METRICS_ENABLED")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			env.MetricsEnabled = b
		}
	}
}

func intEnv(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
