package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newHealthCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the classification service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := c.apiClient().Health(cmd.Context())
			if health != nil {
				fmt.Fprintf(c.stdout, "status: %s\n", health.Status)
				names := make([]string, 0, len(health.Components))
				for name := range health.Components {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(c.stdout, "  %-10s %s\n", name, health.Components[name])
				}
			}
			return err
		},
	}
}
