package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errTripletsNotImplemented = errors.New("generate-triplets is not implemented: the triplet sampling strategy is still undecided")

func newGenerateTripletsCommand() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "generate-triplets",
		Short: "Reserved: sample training triplets from the consolidated table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errTripletsNotImplemented
		},
	}

	cmd.Flags().StringVar(&input, "input", "motif-consolidated", "Name of the consolidated table to read")
	cmd.Flags().StringVar(&output, "output", "motif-triplets", "Name of the triplet table to write")

	return cmd
}
