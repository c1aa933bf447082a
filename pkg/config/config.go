package config

import (
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"-"`
	DatabaseConnectRetryCount int           `koanf:"-"`
	DatabaseConnectRetryDelay time.Duration `koanf:"-"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"-"`
	JWTSecret                 string        `koanf:"jwt_secret"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

const configFileENV = "CONFIG_FILE"

func defaultConfig() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
		ServerHost:                "0.0.0.0",
		ServerPort:                8080,
	}
}

// New loads configuration from the yaml file named by CONFIG_FILE (default
// ./config.yaml), then applies environment variable overrides. A missing
// config file is fine; missing required values are not.
func New() (*Config, error) {
	cfg := defaultConfig()

	k := koanf.New(".")
	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = "./config.yaml"
	}
	err := k.Load(file.Provider(configFile), yaml.Parser())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.WithStack(err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	applyEnvOverrides(cfg)

	missing := []string{}
	if cfg.DatabaseFilePath == "" {
		missing = append(missing, requiredName("DatabaseFilePath"))
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, requiredName("JWTSecret"))
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// NewForTest returns a config suitable for package tests: in-memory database,
// loopback host, fixed secret.
func NewForTest() *Config {
	cfg := defaultConfig()
	cfg.DatabaseFilePath = ":memory:"
	cfg.JWTSecret = "test-secret"
	cfg.ServerHost = "127.0.0.1"
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_FILE_PATH"); v != "" {
		cfg.DatabaseFilePath = v
	}
	if v := os.Getenv("DATABASE_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.DatabaseDebug = debug
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.ServerHost = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.ServerPort = port
		}
	}
}

// requiredName renders a field name in both env var and config file key forms
// so the error message points at either source.
func requiredName(field string) string {
	key := toSnakeCase(field)
	return strings.ToUpper(key) + " (" + key + ")"
}

func toSnakeCase(field string) string {
	return strcase.ToSnake(field)
}
