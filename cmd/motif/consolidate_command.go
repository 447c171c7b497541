package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avesono/motif/config"
	"github.com/avesono/motif/workflow"
)

func newConsolidateCommand(loadConfig func() (config.Config, error)) *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Merge per-recording metadata into one Parquet table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			records, err := workflow.Consolidate(
				cfg.IntermediatePath(input),
				cfg.IntermediatePath(output)+".parquet",
				cfg.Workers,
			)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), workflow.RenderHead(records, 5))
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "motif", "Name of the intermediate dataset to read")
	cmd.Flags().StringVar(&output, "output", "motif-consolidated", "Name of the consolidated table to write")

	return cmd
}
