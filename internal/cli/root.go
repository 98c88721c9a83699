// Package cli implements the mudra command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/logger"
	"github.com/ayusman/mudra/internal/store"
)

// Version is the application version, overridden at build time with -ldflags.
var Version = "0.1.0"

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "mudra.yaml"

// rootOptions is shared by every subcommand.
type rootOptions struct {
	configPath string
	modelPath  string
	cfg        *config.Config
}

// NewRootCommand builds the mudra command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "mudra",
		Short:         "Hand-gesture prediction gateway",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", DefaultConfigPath, "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.modelPath, "model", "", "path to the gesture model (default from config: "+config.DefaultModelPath+")")

	cmd.AddCommand(
		newServeCommand(opts),
		newGesturesCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// load reads the config, applies flag overrides and installs the default logger.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.modelPath != "" {
		cfg.Model.Path = o.modelPath
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.New(logger.ParseEnvironment(cfg.Env),
		logger.WithLevel(level),
		logger.WithLogToFile(cfg.Log.ToFile),
		logger.WithLogFile(cfg.Log.File),
		logger.WithOutput(cmd.ErrOrStderr()),
	))

	o.cfg = cfg
	return nil
}

// openStore opens the configured model. Unless create is set the model file
// must already exist.
func (o *rootOptions) openStore(create bool) (*store.Store, error) {
	path := o.cfg.Model.Path
	if !create {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("model %s not found; train a gesture with 'mudra gestures train'", path)
			}
			return nil, fmt.Errorf("model %s: %w", path, err)
		}
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}
	return st, nil
}

// Execute runs the root command with a context canceled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
