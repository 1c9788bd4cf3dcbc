// Package cli implements the sqlfrag command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlfrag/internal/config"
)

// RootOptions holds global flags and the state resolved from them.
type RootOptions struct {
	ConfigFile string
	LogLevel   string
	Format     string // "text" | "json"

	// Fs is the filesystem used for config, dotenv and query documents.
	Fs afero.Fs

	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sqlfrag CLI.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	opts := &RootOptions{Fs: fs}

	cmd := &cobra.Command{
		Use:   "sqlfrag",
		Short: "Compile and run dialect-agnostic SQL queries",
		Long: `sqlfrag compiles declarative query documents into SQL for
PostgreSQL, SQLite and MySQL, and can run them against a database.`,
		SilenceUsage:  true,
		SilenceErrors: true, // main reports the error
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default .sqlfrag.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewDialectsCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))

	return cmd
}

// resolve loads configuration and builds the logger. Flags win over config.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.Fs, o.ConfigFile)
	if err != nil {
		return err
	}
	if o.LogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(o.LogLevel)); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}
	o.Config = cfg
	o.Logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	if cfg.File != "" {
		o.Logger.Debug("loaded config", slog.String("file", cfg.File))
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
