package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	cslog "github.com/msto63/cmdscript/foundation/core/log"
	"github.com/msto63/cmdscript/foundation/script"
	"github.com/msto63/cmdscript/foundation/script/repository"
	"github.com/msto63/cmdscript/internal/catalog"
	"github.com/msto63/cmdscript/pkg/core/config"
	"github.com/msto63/cmdscript/pkg/core/logging"
)

var (
	cfgFile    string
	catalogDir string
	verbose    bool

	// Set by loadApp
	appConfig *config.Config
	appLogger *cslog.Logger
	logCloser io.Closer
)

// errScriptFailed signals a failed script or check without extra output
var errScriptFailed = errors.New("script failed")

var rootCmd = &cobra.Command{
	Use:   "cmdscript",
	Short: "cmdscript - Command Script Language",
	Long: `cmdscript runs command scripts against a catalog of services and forms.

A script is a sequence of expressions separated by ';':

  x = 10;
  execute service 'customer:show'(x) { verbose: true };
  f = create connected form customer;
  display form customer ('customer:show');

Services and forms are defined in YAML files of the catalog directory.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  loadApp,
	PersistentPostRunE: closeApp,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errScriptFailed) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/cmdscript.toml, $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "", "catalog directory (overrides the config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadApp loads the configuration and sets up logging
func loadApp(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if catalogDir != "" {
		appConfig.Catalog.Dir = catalogDir
	}

	lc := logging.FromConfig(appConfig)
	if verbose {
		lc.Level = "debug"
	}
	appLogger, logCloser, err = logging.NewLogger(lc)
	if err != nil {
		appLogger, logCloser = logging.NewSimpleLogger(lc.ServiceName), nil
		appLogger.WarnWithErr("Falling back to stderr logging", err, cslog.Fields{"file": lc.File})
	}
	cslog.SetDefault(appLogger)

	appLogger.Debug("Configuration loaded", cslog.Fields{
		"path":    appConfig.Path(),
		"catalog": appConfig.Catalog.Dir,
	})
	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// loadCatalog reads the catalog directory
func loadCatalog() (*catalog.Catalog, error) {
	c := catalog.New(catalog.Options{
		Dir:           appConfig.Catalog.Dir,
		Logger:        appLogger,
		Debounce:      appConfig.Catalog.Debounce.Duration,
		CaseSensitive: appConfig.Catalog.CaseSensitive,
	})
	if err := c.LoadAll(); err != nil {
		return nil, err
	}
	return c, nil
}

// newEngine creates an engine over repo configured from the config
func newEngine(repo repository.Repository, continueOnError bool, stepDelay time.Duration) *script.Engine {
	if stepDelay <= 0 {
		stepDelay = appConfig.Interpreter.StepDelay.Duration
	}
	return script.NewEngine(script.Options{
		Logger:          appLogger,
		Repository:      repo,
		Displayer:       repository.SummaryDisplayer{},
		MaxInputLength:  appConfig.Interpreter.MaxInputLength,
		ContinueOnError: continueOnError || appConfig.Interpreter.ContinueOnError,
		StepDelay:       stepDelay,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
