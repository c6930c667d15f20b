package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	showJSON   bool
	showRender bool
	showWidth  int
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note",
	Long:  `Show prints a note by its ID. With --render the content is rendered as Markdown for the terminal.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fatal("Error", err)
		}

		service := openService()
		defer service.Close()

		note, err := service.Get(id)
		if err != nil {
			fatal("Error reading note", err)
		}

		switch {
		case showJSON:
			if err := writeJSON(os.Stdout, note); err != nil {
				fatal("Error encoding JSON", err)
			}
		case showRender:
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(showWidth),
			)
			if err != nil {
				fatal("Error creating renderer", err)
			}
			out, err := renderer.Render(fmt.Sprintf("# %s\n\n*%s*\n\n%s", note.Title, note.CreatedAt, note.Content))
			if err != nil {
				fatal("Error rendering note", err)
			}
			fmt.Print(out)
		default:
			printNote(os.Stdout, note)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	showCmd.Flags().BoolVarP(&showRender, "render", "r", false, "Render the content as Markdown")
	showCmd.Flags().IntVar(&showWidth, "width", 80, "Word wrap width for --render")
}
