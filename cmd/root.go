package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"memedir/internal/browser"
	"memedir/internal/config"
	"memedir/internal/s3store"
	"memedir/internal/thumbs"
	"memedir/internal/tui"
	"memedir/internal/upload"
)

var (
	cfgFile      string
	verbose      bool
	quiet        bool
	workdirFlag  string
	globalConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memedir",
	Short: "A terminal image folder browser with S3 upload",
	Long: `Memedir is a terminal browser for a folder of images. It keeps a
thumbnail cache warm in the background, lets you rename and delete
files, and pushes selected images to an S3-compatible bucket.

Example usage:
  memedir                    # Browse the configured workdir
  memedir --workdir ~/memes  # Browse another directory
  memedir upload funny.png   # One-shot upload without the UI
  memedir scan               # Print the current listing`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.memedir/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode")
	rootCmd.PersistentFlags().StringVarP(&workdirFlag, "workdir", "w", "", "directory to browse (overrides config)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	globalConfig, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if workdirFlag != "" {
		globalConfig.Browser.Workdir = workdirFlag
	}

	setupLogging()
	return nil
}

// setupLogging configures the global logger based on config and flags
func setupLogging() {
	level := globalConfig.Log.Level
	if verbose {
		level = "debug"
	} else if quiet {
		level = "error"
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level %s, using info", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	// Redirect all logs to file to prevent UI interference
	logDir := "/tmp/memedir"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		logrus.Warnf("Failed to create log directory %s: %v", logDir, err)
	} else {
		logFile := filepath.Join(logDir, "app.log")
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			logrus.Warnf("Failed to open log file %s: %v", logFile, err)
		} else {
			logrus.SetOutput(file)
		}
	}

	if globalConfig.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: quiet,
			FullTimestamp:    verbose,
		})
	}
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return globalConfig
}

// newCoordinatorFactory builds the per-upload coordinator constructor.
// The S3 client is created fresh for each upload so credential or
// endpoint problems surface as an aborted outcome instead of blocking
// startup for users who never upload.
func newCoordinatorFactory(cfg *config.Config) browser.CoordinatorFactory {
	return func() (*upload.Coordinator, error) {
		client, err := s3store.NewClient(&cfg.S3)
		if err != nil {
			return nil, err
		}
		return upload.NewCoordinator(client), nil
	}
}

// runBrowser starts the worker, the controller, and the interactive UI
func runBrowser() error {
	cfg := globalConfig

	box := thumbs.Box{Width: cfg.Browser.ThumbWidth, Height: cfg.Browser.ThumbHeight}
	worker := browser.NewWorker(box, newCoordinatorFactory(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	ctrl := browser.NewController(cfg.Browser, worker)
	if err := ctrl.StartWatcher(); err != nil {
		logrus.WithError(err).Warn("Directory watcher unavailable, relying on periodic rescan")
	}
	defer ctrl.Close()

	program := tea.NewProgram(
		tui.NewModel(ctrl, worker, cfg),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}
