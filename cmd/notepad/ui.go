package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/internal/tui"
)

var uiLogFile string

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive note browser",
	Long: `UI opens a full-screen browser: a searchable list of notes next to an
editor. Edits are saved as you type.

Keys: / search, n new, enter edit, ctrl+s save, d delete, y copy, esc back, q quit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// The terminal belongs to the UI; logs go to a file or nowhere.
		logger := slog.New(slog.DiscardHandler)
		if uiLogFile != "" {
			f, err := os.OpenFile(uiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
			if err != nil {
				fatal("Error opening log file", err)
			}
			defer f.Close()
			logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
		slog.SetDefault(logger)

		service := openService()
		defer service.Close()

		if err := tui.Run(ctx, service, tui.WithLogger(logger)); err != nil {
			fatal("Error running UI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().StringVar(&uiLogFile, "log-file", "", "Write debug logs to this file")
}
