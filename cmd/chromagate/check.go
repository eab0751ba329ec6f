package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromagate/internal/levels"
	"github.com/vovakirdan/chromagate/internal/puzzle"
)

var flagStrict bool

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report problems in level files",
	Long: `Parses level files the way the game does and lists everything it had to
interpret leniently: unknown symbols, ragged rows, missing or duplicate
starts, a missing end and unpaired portals.

Without arguments every level of the configured source is checked.

Examples:
  chromagate check ./my-levels/*.txt
  chromagate --levels ./my-levels check
  chromagate check --strict level.txt`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagStrict, "strict", false, "Exit with an error if any level has issues")
}

func runCheck(cmd *cobra.Command, args []string) error {
	type target struct{ name, text string }
	var targets []target

	if len(args) > 0 {
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			targets = append(targets, target{path, string(data)})
		}
	} else {
		spec := appConfig.Levels.SourceSpec()
		src, closeSrc, err := levels.Open(spec, appConfig.Levels.DB)
		if err != nil {
			return err
		}
		defer closeSrc()

		entries, err := src.Entries(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range entries {
			text, err := src.Read(cmd.Context(), e)
			if err != nil {
				fmt.Printf("%s: cannot read: %v\n", e.Key, err)
				continue
			}
			targets = append(targets, target{fmt.Sprintf("%d %s (%s)", e.ID, e.Name, e.Key), text})
		}
	}

	dirty := 0
	for _, t := range targets {
		rep := puzzle.Inspect(t.text)
		if rep.Clean() {
			fmt.Printf("%s: ok (%dx%d)\n", t.name, rep.Grid.Rows(), rep.Grid.Cols())
			continue
		}
		dirty++
		fmt.Printf("%s: %d issue(s)\n", t.name, len(rep.Issues))
		for _, issue := range rep.Issues {
			fmt.Printf("  %s\n", issue)
		}
	}

	if flagStrict && dirty > 0 {
		return fmt.Errorf("%d of %d level(s) have issues", dirty, len(targets))
	}
	return nil
}
