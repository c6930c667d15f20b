package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report changes made to the backing file by other programs",
	Long:  `Watch blocks and prints a line every time the backing file is modified or removed, until interrupted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		service := openService(notepad.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher failed", "error", err)
		}))
		defer service.Close()

		source := lifecycle.NewSource(service)
		if err := source.Start(ctx); err != nil {
			fatal("Error starting watcher", err)
		}

		fmt.Printf("Watching %d notes. Press Ctrl+C to stop.\n", service.Len())
		for change := range source.Events() {
			fmt.Println(change.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
