package main

import (
	"github.com/spf13/cobra"

	"github.com/avesono/motif/config"
	"github.com/avesono/motif/logging"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var dataRootFlag string

	loadConfig := func() (config.Config, error) {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return cfg, err
		}
		if dataRootFlag != "" {
			cfg.DataRoot = dataRootFlag
		}
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
		applyLogLevel(cfg.LogLevel)
		return cfg, nil
	}

	rootCmd := &cobra.Command{
		Use:           "motif",
		Short:         "Locate repeating call motifs in bird audio recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&dataRootFlag, "data-root", "", "Data root directory (overrides config)")

	rootCmd.AddCommand(newExtractCommand(loadConfig))
	rootCmd.AddCommand(newConsolidateCommand(loadConfig))
	rootCmd.AddCommand(newGenerateTripletsCommand())

	return rootCmd
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		logging.SetLevel(logging.DebugLevel)
	case "warn":
		logging.SetLevel(logging.WarnLevel)
	case "error":
		logging.SetLevel(logging.ErrorLevel)
	default:
		logging.SetLevel(logging.InfoLevel)
	}
}
