package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ressKim-io/eccn-classifier/internal/infrastructure/logger"
	"github.com/ressKim-io/eccn-classifier/internal/tui"
)

func newTUICmd(c *cli) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive classification screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns the terminal; logs go to a file or nowhere
			log := zap.NewNop()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				log = logger.NewCLILogger("debug", f)
			}

			return tui.Run(cmd.Context(), c.apiClient(), log)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write diagnostics to this file")
	return cmd
}
