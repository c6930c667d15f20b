package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/internal/transfer"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export notes to a file or a directory",
	Long: `Export writes every note to FILE, as JSON or YAML depending on its
extension, or with --dir to one Markdown file per note.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if (len(args) == 0) == (exportDir == "") {
			fatal("Error", errors.New("give either a target file or --dir"))
		}

		service := openService()
		defer service.Close()
		notes := service.Notes()

		if exportDir != "" {
			paths, err := transfer.ExportDir(exportDir, notes)
			if err != nil {
				fatal("Error exporting notes", err)
			}
			fmt.Printf("Exported %d notes to %s\n", len(paths), exportDir)
			return
		}

		if err := transfer.ExportFile(args[0], notes); err != nil {
			fatal("Error exporting notes", err)
		}
		fmt.Printf("Exported %d notes to %s\n", len(notes), args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Write one Markdown file per note into this directory")
}
