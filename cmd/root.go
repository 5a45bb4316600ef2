package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/rickdex/config"
	"github.com/s0up4200/rickdex/filter"
	"github.com/s0up4200/rickdex/rickmorty"
)

// skipInit marks commands that run without loading config or creating a client
const skipInit = "skip-init"

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *rickmorty.Client
	presets  *filter.Manager

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rickdex",
	Short: "Browse Rick and Morty characters and their episodes",
	Long: `rickdex is a CLI tool for browsing the characters of the Rick and Morty API.
Characters are loaded page by page, can be narrowed down with filter
expressions, and each character can be opened to list its episodes.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging level (debug, info, warn, error)")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipInit] == "true" {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return nil
	}

	// Load configuration
	var opts []config.LoadOption
	if logLevel != "" {
		opts = append(opts, config.WithOverride("logging.level", strings.ToLower(logLevel)))
	}

	var err error
	cfg, err = config.Load(cfgFile, opts...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	client, err = rickmorty.NewClient(cfg.API.BaseURL, logger,
		rickmorty.WithTimeout(cfg.API.Timeout),
		rickmorty.WithUserAgent(userAgent()),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	presets, err = loadPresets(cfg.Filter)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Int("presets", len(cfg.Filter.Presets)).
		Msg("Initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// userAgent prefers the configured value over rickdex/<version>
func userAgent() string {
	if cfg != nil && cfg.API.UserAgent != "" {
		return cfg.API.UserAgent
	}
	return "rickdex/" + version
}

// loadPresets compiles the configured presets
func loadPresets(cfg config.FilterConfig) (*filter.Manager, error) {
	m := filter.NewManager()

	list := make([]filter.Preset, 0, len(cfg.Presets))
	for name, p := range cfg.Presets {
		list = append(list, filter.Preset{
			Name:        name,
			Expression:  p.Expression,
			Description: p.Description,
		})
	}

	if err := m.RegisterPresets(list); err != nil {
		return nil, fmt.Errorf("invalid filter preset: %w", err)
	}
	return m, nil
}

// resolveFilter determines the filter to apply and the expression it came from.
// Priority: command line filter > preset > configured default.
func resolveFilter() (filter.Filter, string, error) {
	if filterExpr == "" && preset != "" {
		compiled, ok := presets.GetFilter(preset)
		if !ok {
			return nil, "", fmt.Errorf("preset '%s' not found in config", preset)
		}
		return compiled, compiled.Expression(), nil
	}

	expression := filterExpr
	if expression == "" {
		expression = cfg.Filter.DefaultExpression
	}

	match, err := filter.ParseAndCreateFilter(expression)
	if err != nil {
		return nil, "", fmt.Errorf("invalid filter expression: %w", err)
	}
	return filter.Func(match), expression, nil
}
