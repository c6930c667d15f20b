package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
)

var (
	listJSON  bool
	listQuery string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, optionally filtered",
	Long: `List prints every note with its ID, creation time and title.
With --query only notes whose title or content contains the query
(ignoring case) are shown.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service := openService()
		defer service.Close()

		notes := service.Filter(listQuery)

		if listJSON {
			if notes == nil {
				notes = []core.Note{}
			}
			if err := writeJSON(os.Stdout, notes); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		if len(notes) == 0 {
			return
		}
		if err := printNotes(os.Stdout, notes); err != nil {
			fatal("Error printing notes", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Only notes containing this text")
}
