// Package cli implements the textcleaner command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alejandroruanova/text-cleaner-service/internal/core/services/cleaner"
	"github.com/alejandroruanova/text-cleaner-service/internal/infrastructure/parsers"
	"github.com/alejandroruanova/text-cleaner-service/internal/pkg/config"
	"github.com/alejandroruanova/text-cleaner-service/internal/pkg/logger"
	"github.com/alejandroruanova/text-cleaner-service/internal/pkg/profile"
)

var version = "dev"

// app holds state shared by all subcommands
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	logLevel    string
	profile     string
	profileFile string
	envFiles    []string
}

// NewRootCommand builds the textcleaner command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "textcleaner",
		Short: "Normalize text for Icelandic speech synthesis",
		Long: "textcleaner reduces free-form text to the Icelandic alphabet and a small\n" +
			"punctuation set, wraps labelled English spans in language markup and\n" +
			"flattens HTML pages into plain text.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.profile, "profile", "p", "", "Cleaner profile or alias (default from CLEANER_PROFILE)")
	flags.StringVar(&a.profileFile, "profile-file", "", "YAML, TOML or JSON file with profile overrides")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "Environment files to load (default .env)")

	root.AddCommand(
		a.cleanCommand(),
		a.htmlCommand(),
		a.fileCommand(),
		a.profilesCommand(),
		a.submitCommand(),
		a.workerCommand(),
		a.cleanupCommand(),
		a.statusCommand(),
		versionCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func (a *app) init() error {
	cfg, err := config.Load(config.Options{EnvFiles: a.envFiles})
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := a.logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	if level == "" {
		level = "warn"
	}
	a.logger = logger.InitializeWithLevel(cfg.Environment, level)
	return nil
}

// pipeline builds the cleaner selected by flags, falling back to configuration
func (a *app) pipeline() (*cleaner.Pipeline, error) {
	file := a.profileFile
	if file == "" {
		file = a.cfg.Cleaner.ProfileFile
	}
	name, overrides, err := profile.Resolve(a.profile, file)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = a.cfg.Cleaner.Profile
	}
	return cleaner.NewPipeline(name, overrides)
}

func (a *app) parserConfig() *parsers.ParserConfig {
	pc := parsers.DefaultParserConfig()
	if a.cfg.MaxFileSize > 0 {
		pc.MaxFileSize = a.cfg.MaxFileSize * 1024 * 1024
	}
	if len(a.cfg.Cleaner.TextFields) > 0 {
		pc.TextFields = a.cfg.Cleaner.TextFields
	}
	pc.HTMLSelector = a.cfg.Cleaner.HTMLSelector
	return pc
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "textcleaner version %s\n", version)
		},
	}
}
