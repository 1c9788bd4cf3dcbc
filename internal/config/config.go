// Package config loads sqlfrag CLI settings from flags, environment,
// dotenv files and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/zoobzio/sqlfrag/driver"
)

// EnvPrefix prefixes every environment variable sqlfrag reads.
const EnvPrefix = "SQLFRAG"

// Config holds the resolved settings.
type Config struct {
	Dialect     string
	LogLevel    slog.Level
	DatabaseURL string
	// File is the config file that was read, empty if none.
	File string
}

// Load resolves settings. An explicit file must exist; otherwise
// .sqlfrag.yaml is looked up in the working directory and
// $HOME/.config/sqlfrag and silently skipped when absent.
func Load(fs afero.Fs, file string) (*Config, error) {
	if err := loadDotenv(fs); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	v.SetDefault("dialect", driver.DialectPostgres)
	v.SetDefault("log_level", "info")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".sqlfrag")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sqlfrag"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Dialect:     v.GetString("dialect"),
		DatabaseURL: v.GetString("database_url"),
		File:        v.ConfigFileUsed(),
	}
	if _, err := driver.RendererFor(cfg.Dialect); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return cfg, nil
}

// loadDotenv applies .env without overriding non-empty variables, then
// .env.local with override.
func loadDotenv(fs afero.Fs) error {
	for _, f := range []struct {
		name      string
		overwrite bool
	}{{".env", false}, {".env.local", true}} {
		if _, err := fs.Stat(f.name); err != nil {
			continue
		}
		file, err := fs.Open(f.name)
		if err != nil {
			return err
		}
		vars, err := godotenv.Parse(file)
		_ = file.Close()
		if err != nil {
			return fmt.Errorf("parse %s: %w", f.name, err)
		}
		for k, val := range vars {
			if os.Getenv(k) != "" && !f.overwrite {
				continue
			}
			if err := os.Setenv(k, val); err != nil {
				return err
			}
		}
	}
	return nil
}
