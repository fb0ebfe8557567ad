package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ModeConsole  = "console"
	ModeTelegram = "telegram"

	StoreMemory = "memory"
	StoreSqlite = "sqlite"
)

type Config struct {
	Mode          string
	Store         string
	SqliteDSN     string
	Seed          bool
	LogFile       string
	TelegramToken string
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	seed, err := getBool("EMS_SEED", true)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Mode:          strings.ToLower(getEnv("EMS_MODE", ModeConsole)),
		Store:         strings.ToLower(getEnv("EMS_STORE", StoreMemory)),
		SqliteDSN:     getEnv("EMS_SQLITE_DSN", ":memory:"),
		Seed:          seed,
		LogFile:       os.Getenv("EMS_LOG_FILE"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	switch cfg.Mode {
	case ModeConsole, ModeTelegram:
	default:
		return nil, ErrUnknownMode{Mode: cfg.Mode}
	}
	switch cfg.Store {
	case StoreMemory, StoreSqlite:
	default:
		return nil, ErrUnknownStore{Store: cfg.Store}
	}
	if cfg.Mode == ModeTelegram && cfg.TelegramToken == "" {
		return nil, ErrNoToken{}
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getBool returns def for an unset variable and ErrInvalidBool for a value
// strconv.ParseBool rejects.
func getBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, ErrInvalidBool{Key: key, Value: raw}
	}
	return v, nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN is not set; it is required when EMS_MODE=telegram"
}

type ErrUnknownStore struct {
	Store string
}

func (e ErrUnknownStore) Error() string {
	return "unknown EMS_STORE " + strconv.Quote(e.Store) + " (want memory or sqlite)"
}

type ErrUnknownMode struct {
	Mode string
}

func (e ErrUnknownMode) Error() string {
	return "unknown EMS_MODE " + strconv.Quote(e.Mode) + " (want console or telegram)"
}

type ErrInvalidBool struct {
	Key   string
	Value string
}

func (e ErrInvalidBool) Error() string {
	return "invalid " + e.Key + " " + strconv.Quote(e.Value) + " (want true or false)"
}
