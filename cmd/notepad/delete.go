package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Long: `Delete permanently removes a note. IDs are positions, so every
note after the deleted one moves up by one.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fatal("Error", err)
		}

		service := openService()
		defer service.Close()

		note, err := service.Get(id)
		if err != nil {
			fatal("Error deleting note", err)
		}
		if err := service.Delete(context.Background(), id); err != nil {
			fatal("Error deleting note", err)
		}

		fmt.Printf("Note deleted: %d %q\n", id, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
