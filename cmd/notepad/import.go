package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/internal/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import [pattern...]",
	Short: "Import notes from files",
	Long: `Import appends notes read from files matching the given patterns.
JSON and YAML files are read as whole collections; any other file is one
Markdown note whose title comes from its front matter or its file name.

  notepad import backup.json 'journal/**/*.md'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		notes, err := transfer.Collect(args...)
		if err != nil {
			fatal("Error reading files", err)
		}

		service := openService()
		defer service.Close()

		added, err := service.Import(context.Background(), notes)
		if err != nil {
			fatal("Error importing notes", err)
		}

		if skipped := len(notes) - added; skipped > 0 {
			fmt.Printf("Imported %d notes (%d without a title skipped)\n", added, skipped)
			return
		}
		fmt.Printf("Imported %d notes\n", added)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
