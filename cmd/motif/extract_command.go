package main

import (
	"github.com/spf13/cobra"

	"github.com/avesono/motif/config"
	"github.com/avesono/motif/logging"
	"github.com/avesono/motif/workflow"
)

func newExtractCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	var species string
	var output string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Locate the motif pair for every raw recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			results, err := workflow.ExtractDataset(&cfg, species, output)
			if err != nil {
				return err
			}

			for _, failure := range workflow.Failures(results) {
				logging.Error(failure.Err, "recording failed", logging.Fields{
					"path": failure.Name,
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&species, "species", "", "Restrict the scan to one species subdirectory")
	cmd.Flags().StringVar(&output, "output", "motif", "Name of the intermediate dataset to write")

	return cmd
}
