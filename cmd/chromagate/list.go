package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the levels of the configured source",
	Long:  `Shows the ID, name and size of every level the configured source provides, in play order.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "chromagate")
	lvls, err := loadLevels(cmd.Context(), logger)
	if err != nil {
		return err
	}

	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Printf("Levels from %s:\n\n", appConfig.Levels.SourceSpec())

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(fmt.Sprint(l.ID)))
		maxNameLen = max(maxNameLen, len([]rune(l.Name)))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxNameLen, "NAME", "SIZE")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxNameLen, "----", "----")
	for _, l := range lvls {
		fmt.Printf("  %-*d  %-*s  %dx%d\n", maxIDLen, l.ID, maxNameLen, l.Name, l.Grid.Rows(), l.Grid.Cols())
	}
	fmt.Println()
	fmt.Println("Run 'chromagate play --level <id>' to start at a level.")
	return nil
}
