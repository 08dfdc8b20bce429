package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deltafood/delta/internal/config"
	"github.com/deltafood/delta/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "delta",
	Short: "Delta restaurant website",
	Long: `Delta serves the one-page website of the Delta restaurant: the rendered
page, per-section previews, and live sessions that drive the testimonial
slider, the photo lightbox, the navigation menu and the forms.

Quick Start:
  delta serve                     Start the site on localhost:8080
  delta serve --watch             Reload content.yml edits into open pages
  delta export --out dist         Write a static copy of the page
  delta validate content.yml      Check a content catalog`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .delta.yml, can also use DELTA_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig selects the config file: --config, then DELTA_CONFIG_FILE,
// then .delta.yml in the working directory. Environment variables use the
// DELTA_ prefix with "_" for nesting, e.g. DELTA_SERVER_PORT.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("DELTA_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".delta")
	}

	viper.SetEnvPrefix("DELTA")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing file is fine; defaults apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the validated configuration and a logger built from
// its logging section, writing to w.
func loadConfig(w io.Writer) (*config.Config, *logging.SiteLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    cfg.Logging.Format,
		Output:    w,
		Component: "delta",
	})
	return cfg, logger, nil
}
