package main

import (
	"fmt"

	"github.com/nickysemenza/gola"
	"github.com/robmorgan/pulse/config"
	"github.com/robmorgan/pulse/fixture"
	"github.com/spf13/cobra"
)

// newDumpCmd prints what OLA currently holds for a universe, handy when checking the patch.
func newDumpCmd() *cobra.Command {
	var (
		address  string
		universe int
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the DMX values OLA holds for a universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := gola.New(address)
			if err != nil {
				return fmt.Errorf("could not connect to OLA: %w", err)
			}
			defer client.Close()

			x, err := client.GetDmx(universe)
			if err != nil {
				return fmt.Errorf("GetDmx: %d: %w", universe, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatUniverse(universe, x.Data))
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "ola", config.DefaultOLAAddress, "OLA address")
	cmd.Flags().IntVarP(&universe, "universe", "u", 1, "universe to dump")

	return cmd
}

// formatUniverse renders the non-zero channels of a universe, one per line.
func formatUniverse(universe int, data []byte) string {
	s := fmt.Sprintf("universe %d\n", universe)
	lit := 0
	for i, v := range data {
		if i >= fixture.UniverseChannels {
			break
		}
		if v == 0 {
			continue
		}
		s += fmt.Sprintf("%3d: %3d\n", i+1, v)
		lit++
	}
	if lit == 0 {
		s += "all channels at 0\n"
	}
	return s
}
