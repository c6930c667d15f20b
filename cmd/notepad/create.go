package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	createTitle   string
	createContent string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Long: `Create adds a note with the given title. The content comes from
--content, or from stdin when it is piped:

  echo "milk, eggs" | notepad create --title Groceries`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		content, err := readContent(cmd.Flags().Changed("content"), createContent, os.Stdin)
		if err != nil {
			fatal("Error reading content", err)
		}

		service := openService()
		defer service.Close()

		id, err := service.Create(context.Background(), createTitle, content)
		if err != nil {
			fatal("Error creating note", err)
		}

		fmt.Printf("Note created: %d\n", id)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Note title (required)")
	createCmd.Flags().StringVarP(&createContent, "content", "c", "", "Note content (default: stdin when piped)")
	_ = createCmd.MarkFlagRequired("title")
}
