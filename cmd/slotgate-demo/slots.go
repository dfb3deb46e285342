package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/slotgate/internal/domain/match"
	"github.com/kailas-cloud/slotgate/internal/domain/slot"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List the slot vocabulary and match strategies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Slots:")
		for _, n := range slot.All() {
			fmt.Fprintf(w, "  %s\n", n)
		}
		fmt.Fprintln(w, "Match strategies:")
		for _, s := range []match.Strategy{match.Exact, match.Substring, match.Fuzzy} {
			marker := ""
			if s == match.Default().Strategy() {
				marker = " (default)"
			}
			fmt.Fprintf(w, "  %s%s\n", s, marker)
		}
		return nil
	},
}
