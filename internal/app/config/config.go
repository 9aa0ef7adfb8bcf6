// Package config собирает конфигурацию сервиса из флагов, .env-файла и переменных окружения.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DBTimeout ограничивает время одного запроса к хранилищу.
const DBTimeout = 3 * time.Second

const (
	// ModeProduction включает боевой адрес коротких ссылок.
	ModeProduction = "production"
	// ModeDevelopment используется по умолчанию.
	ModeDevelopment = "development"

	ProductionBaseAddress = "https://shortyurl.up.railway.app"
	LocalBaseAddress      = "http://localhost:3000"
)

// ConfigType хранит настройки сервиса.
type ConfigType struct {
	Port            string        `env:"PORT"`
	Mode            string        `env:"APP_ENV"`
	NodeEnv         string        `env:"NODE_ENV"`
	BaseAddress     string        `env:"BASE_URL"`
	DSN             string        `env:"DATABASE_DSN"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB"`
	SQLitePath      string        `env:"SQLITE_PATH"`
	FileStoragePath string        `env:"FILE_STORAGE_PATH"`
	LogLevel        string        `env:"LOG_LEVEL"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// NewConfig читает флаги командной строки, файл .env из рабочего каталога
// и переменные окружения процесса. Переменные окружения имеют наивысший приоритет.
func NewConfig() (*ConfigType, error) {
	return Load(os.Args[1:], ".env", os.Environ())
}

// Load разбирает конфигурацию из явно переданных источников.
// Отсутствующий dotenvPath не считается ошибкой.
func Load(args []string, dotenvPath string, environ []string) (*ConfigType, error) {
	config := ConfigType{}

	flags := flag.NewFlagSet("shortener", flag.ContinueOnError)
	flags.StringVar(&config.Port, "p", "3000", "HTTP listen port")
	flags.StringVar(&config.Mode, "m", ModeDevelopment, "runtime mode (production|development)")
	flags.StringVar(&config.BaseAddress, "b", "", "short link base address, overrides the mode default")
	flags.StringVar(&config.DSN, "d", "", "PostgreSQL DSN")
	flags.StringVar(&config.RedisAddr, "r", "", "Redis address")
	flags.StringVar(&config.SQLitePath, "s", "", "SQLite database path")
	flags.StringVar(&config.FileStoragePath, "f", "", "File storage path")
	flags.StringVar(&config.LogLevel, "l", "info", "log level")
	flags.DurationVar(&config.ShutdownTimeout, "t", 30*time.Second, "graceful shutdown timeout")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	environment, err := mergeDotenv(dotenvPath, environ)
	if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(&config, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	// NODE_ENV учитывается, только если APP_ENV не задан.
	if _, ok := environment["APP_ENV"]; !ok && config.NodeEnv != "" {
		config.Mode = config.NodeEnv
	}

	config.BaseAddress = config.resolveBaseAddress()

	return &config, nil
}

// mergeDotenv накладывает окружение процесса поверх значений из .env.
func mergeDotenv(path string, environ []string) (map[string]string, error) {
	merged := make(map[string]string)

	if path != "" {
		values, err := godotenv.Read(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}

	for k, v := range env.ToMap(environ) {
		merged[k] = v
	}
	return merged, nil
}

func (c *ConfigType) resolveBaseAddress() string {
	if c.BaseAddress != "" {
		return strings.TrimRight(c.BaseAddress, "/")
	}
	if c.IsProduction() {
		return ProductionBaseAddress
	}
	return LocalBaseAddress
}

// IsProduction сообщает, запущен ли сервис в боевом режиме.
func (c *ConfigType) IsProduction() bool {
	return c.Mode == ModeProduction
}

// ServerAddress возвращает адрес для http.Server.
func (c *ConfigType) ServerAddress() string {
	return ":" + c.Port
}
