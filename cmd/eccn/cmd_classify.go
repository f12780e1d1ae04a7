package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ressKim-io/eccn-classifier/internal/submission"
	"github.com/ressKim-io/eccn-classifier/internal/tui"
)

func newClassifyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [product description...]",
		Short: "Classify one product description",
		Long: `Sends a product description to the service and prints the ECCN,
the confidence and the reasoning. Without arguments the description is read
from standard input.

Example:
  eccn classify "Radiation hardened FPGA rated for 300 krad"
  cat datasheet.txt | eccn classify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(c.stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(b)
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("no product description given")
			}

			view := tui.NewConsoleView(c.stdout, c.stderr)
			ctrl := submission.NewController(c.apiClient(), view, c.logger)
			if err := ctrl.Submit(cmd.Context(), text); err != nil || view.Notified() > 0 {
				return errReported
			}
			return nil
		},
	}
}
