package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr            string        `yaml:"addr"`
	JWTSecret       string        `yaml:"jwt_secret"`
	APITimeout      time.Duration `yaml:"timeout"`
	DatabasePath    string        `yaml:"database_path"`
	TokenDuration   time.Duration `yaml:"token_duration"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// Timezone names the IANA zone whose calendar day decides deadline expiry.
	Timezone   string `yaml:"timezone"`
	LogLevel   string `yaml:"log_level"`
	AdminEmail string `yaml:"admin_email"`
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// LoadConfig builds the configuration from defaults, environment variables
// and, when path is not empty, a YAML file whose keys take precedence.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("JOBBOARD_ADDR", addrFromPort()),
		JWTSecret:       getEnv("JOBBOARD_JWT_SECRET", getEnv("ACCESS_TOKEN_SECRET", insecureJWTSecret)),
		APITimeout:      getDuration("JOBBOARD_TIMEOUT", 15*time.Second),
		DatabasePath:    getEnv("JOBBOARD_DATABASE_PATH", "jobboard.db"),
		TokenDuration:   getDuration("JOBBOARD_TOKEN_DURATION", time.Hour),
		MigrateOnStart:  getBool("JOBBOARD_MIGRATE_ON_START", true),
		ShutdownTimeout: getDuration("JOBBOARD_SHUTDOWN_TIMEOUT", 10*time.Second),
		Timezone:        getEnv("JOBBOARD_TIMEZONE", "UTC"),
		LogLevel:        getEnv("JOBBOARD_LOG_LEVEL", "info"),
		AdminEmail:      getEnv("JOBBOARD_ADMIN_EMAIL", ""),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects settings the server cannot run with. The default JWT
// secret is accepted only when JOBBOARD_ENV is "development".
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	} else if c.JWTSecret == insecureJWTSecret && os.Getenv("JOBBOARD_ENV") != "development" {
		errs = append(errs, errors.New("jwt_secret uses the insecure default; set JOBBOARD_JWT_SECRET"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database_path is required"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.TokenDuration <= 0 {
		errs = append(errs, errors.New("token_duration must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves Timezone. An empty value means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

func addrFromPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return ":" + p
	}
	return ":8080"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
