package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var editContent string

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace the content of a note",
	Long:  `Edit replaces the content of a note with --content or piped stdin. The title and creation time never change.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fatal("Error", err)
		}

		changed := cmd.Flags().Changed("content")
		content, err := readContent(changed, editContent, os.Stdin)
		if err != nil {
			fatal("Error reading content", err)
		}
		if !changed && content == "" {
			fatal("Error", errors.New("no content given: use --content or pipe it on stdin"))
		}

		service := openService()
		defer service.Close()

		if err := service.Update(context.Background(), id, content); err != nil {
			fatal("Error updating note", err)
		}

		fmt.Printf("Note updated: %d\n", id)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content (default: stdin when piped)")
}
