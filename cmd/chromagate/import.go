package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chromagate/internal/puzzle"
	"github.com/vovakirdan/chromagate/internal/storage"
)

var flagImportName string

var importCmd = &cobra.Command{
	Use:   "import <files...>",
	Short: "Add level files to the sqlite library",
	Long: `Stores level texts in the sqlite level library (--db). Play them with
--levels sqlite. Names default to the file name without extension.

Examples:
  chromagate import ./my-levels/*.txt
  chromagate import --name "Spiral" spiral.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List or remove levels in the sqlite library",
}

var libraryListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List library levels",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "rm <id...>",
	Short: "Remove library levels by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryRemove,
}

func init() {
	importCmd.Flags().StringVar(&flagImportName, "name", "", "Level name (only with a single file)")
	libraryCmd.AddCommand(libraryListCmd, libraryRemoveCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	if flagImportName != "" && len(args) > 1 {
		return fmt.Errorf("--name needs exactly one file")
	}

	store, err := storage.Open(appConfig.Levels.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		name := flagImportName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		id, err := store.SaveLevel(name, string(data))
		if err != nil {
			return err
		}

		note := ""
		if rep := puzzle.Inspect(string(data)); !rep.Clean() {
			note = fmt.Sprintf(" (%d issue(s), see 'chromagate check %s')", len(rep.Issues), path)
		}
		fmt.Printf("imported %s as level %d %q%s\n", path, id, name, note)
	}
	return nil
}

func runLibraryList(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(appConfig.Levels.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Levels()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("The level library is empty.")
		return nil
	}
	for _, r := range recs {
		fmt.Printf("  %4d  %-30s  %s\n", r.ID, r.Name, r.CreatedAt.Format("Jan 02 15:04"))
	}
	return nil
}

func runLibraryRemove(_ *cobra.Command, args []string) error {
	store, err := storage.Open(appConfig.Levels.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid level id %q", arg)
		}
		if err := store.DeleteLevel(id); err != nil {
			return err
		}
		fmt.Printf("removed level %d\n", id)
	}
	return nil
}
