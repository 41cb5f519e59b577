package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chazu/solidkit/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	cfg    = config.Default()
	logger = newLogger(os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:   "solidkit",
	Short: "Build, measure and compare 3D solids",
	Long: `solidkit creates spheres, cubes, cylinders, cones and rectangular prisms,
computes their volumes and surface areas, and compares them. Solids come from
the built-in demo set, a Lisp script, or an interactive form.`,
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return setup()
	},
}

// setup loads the configuration and configures the logger from it.
func setup() error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	// An explicit --config must exist; the default location is optional.
	load := config.LoadOrDefault
	if configPath != "" {
		load = config.Load
	}
	c, err := load(path)
	if err != nil {
		return err
	}
	cfg = c

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	logger.WithFields(logrus.Fields{
		"config": path,
		"level":  level.String(),
	}).Debug("configuration loaded")
	return nil
}

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/solidkit/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
