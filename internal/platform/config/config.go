package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"house-catalog/internal/domain/houses"
	"house-catalog/internal/platform/logger"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL must be set")

// Config es todo lo que la app lee del entorno al arrancar.
type Config struct {
	DatabaseURL string
	LogLevel    logger.Level
	LogFormat   logger.Format
	AppName     string
	FloorKinds  []string
}

// Load lee .env (si existe, sin pisar variables ya seteadas) y luego el entorno:
// - DATABASE_URL (obligatoria)
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME (default casas)
// - FLOOR_KINDS=departamento,apartment,depto
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup arma la config con una función tipo os.LookupEnv (útil en tests).
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(k string) string {
		v, _ := lookup(k)
		return strings.TrimSpace(v)
	}

	cfg := Config{
		DatabaseURL: get("DATABASE_URL"),
		LogLevel:    logger.ParseLevel(get("LOG_LEVEL")),
		LogFormat:   logger.ParseFormat(get("LOG_FORMAT")),
		AppName:     get("APP_NAME"),
		FloorKinds:  splitList(get("FLOOR_KINDS")),
	}
	if cfg.AppName == "" {
		cfg.AppName = "casas"
	}
	if len(cfg.FloorKinds) == 0 {
		cfg.FloorKinds = append([]string(nil), houses.DefaultFloorKinds...)
	}
	if cfg.DatabaseURL == "" {
		return cfg, ErrMissingDatabaseURL
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
