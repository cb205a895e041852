package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/cubahno/restdoc/internal/config"
	"github.com/cubahno/restdoc/pkg/constant"
	"github.com/cubahno/restdoc/pkg/taglet"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	sets          []string
	constantFiles []string
	restURI       string
	onError       string
	logFormat     string
	verbose       bool

	cfg *config.Config

	// exit is os.Exit, replaced in tests.
	exit = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "restdoc",
	Short: "Expands REST example tags in documentation sources",
	Long: `restdoc replaces inline documentation tags with live REST examples.

  {@doc.restlet service="ts" method="list" type="GET" query="limit=2"}
      calls <rest_uri>ts/list?limit=2 and inserts the XML reply as <pre> block
  {@value com.x.Svc#NAME}
      inserts the value of a registered constant

The REST base URI is read from the tut.pori.javadocer.rest_uri key
(env TUT_PORI_JAVADOCER_REST_URI).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringArrayVar(&sets, "set", nil, "override a config value, key=value (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&constantFiles, "constants", nil, "YAML or TOML constant table (repeatable)")
	rootCmd.PersistentFlags().StringVar(&restURI, "rest-uri", "", "REST base URI, shorthand for --set "+config.RestURIKey+"=...")
	rootCmd.PersistentFlags().StringVar(&onError, "on-error", "", "failure policy: abort or marker")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup installs the logger and loads the configuration.
func setup(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), logFormat, verbose)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.With("run", uuid.NewString()))

	overrides := append([]string{}, sets...)
	if restURI != "" {
		overrides = append(overrides, config.RestURIKey+"="+restURI)
	}
	if onError != "" {
		overrides = append(overrides, "on_error="+onError)
	}

	cfg, err = config.Load(cfgFile, overrides...)
	if err != nil {
		return err
	}

	slog.Debug("Configuration loaded", "file", cfg.Paths.ConfigFile, "rest_uri", cfg.RestURI, "on_error", cfg.OnError)
	return nil
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func loadRegistry() (*constant.Registry, error) {
	return cfg.Registry(constantFiles...)
}

func newRestlet(registry *constant.Registry) *taglet.Restlet {
	return taglet.NewRestlet(cfg.Executor(),
		taglet.WithName(cfg.Tags.Rest),
		taglet.WithResolver(registry),
		taglet.WithFailurePolicy(cfg.FailurePolicy()),
		taglet.WithExit(func(code int) { exit(code) }),
	)
}

func newValuelet(registry *constant.Registry) *taglet.Valuelet {
	return taglet.NewValuelet(registry,
		taglet.WithName(cfg.Tags.Value),
		taglet.WithFailurePolicy(cfg.FailurePolicy()),
		taglet.WithExit(func(code int) { exit(code) }),
	)
}
