package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "umsctl",
	Short: "User management service",
	Long: `umsctl runs the user management server and administers its store.

Settings are read from $UMS_CONFIG_PATH/ums.yml and UMS_* environment
variables. See 'umsctl configuration show'.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setLogging(logLevel)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "",
		"sets the log level (debug, info, warn, error); defaults to log_level from the configuration")
}

func main() {
	Execute()
}

// setLogging configures the global logger. An empty level falls back to
// the configured log_level.
func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if level == "" {
		cfg, err := loadConfig()
		if err != nil {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			return
		}
		zerolog.SetGlobalLevel(cfg.Level())
		return
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
