package commands

import (
	"io"

	"c4sg/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	globalConfig *config.Config

	// logger writes diagnostics to stderr at the configured level
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "c4sg",
	Short: "Code for Social Good - find and manage volunteer projects",
	Long: `c4sg is a terminal client for the Code for Social Good platform.
Volunteers browse, apply to and bookmark projects; organizations create and edit their listings.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogger(logger, globalConfig.LogLevel, cmd.ErrOrStderr())
		return nil
	},
}

// Execute runs the root command
func Execute(cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}
	globalConfig = cfg
	return rootCmd.Execute()
}

// configureLogger sets the level and output of l. Unknown levels fall back to warn.
func configureLogger(l *logrus.Logger, level string, out io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	l.SetLevel(lvl)
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
