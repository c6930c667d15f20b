package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/internal/config"
)

var (
	verbose    bool
	readOnly   bool
	dataFile   string
	adapter    string
	configPath string

	// settings is the merged result of the config file and the flags.
	settings = config.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notepad",
	Short: "A small note store for the terminal",
	Long: `notepad keeps short text notes in a single local file
(~/.note_app_data.json by default). Notes can be listed, searched,
edited and deleted from the command line or from the interactive UI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFrom(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		settings = cfg

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.DataFile = dataFile
	}
	if flags.Changed("adapter") {
		cfg.Adapter = adapter
	}
	if flags.Changed("read-only") {
		cfg.ReadOnly = readOnly
	}
}

// openService opens the note store described by settings.
func openService(extra ...notepad.Option) *notepad.Service {
	opts := []notepad.Option{
		notepad.WithAdapter(settings.Adapter),
		notepad.WithReadOnly(settings.ReadOnly),
		notepad.WithLogger(slog.Default()),
	}
	opts = append(opts, extra...)

	svc, err := notepad.Open(settings.DataFile, opts...)
	if err != nil {
		fatal("Error opening notes", err)
	}
	if err := svc.LoadErr(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (starting with no notes)\n", err)
	}
	return svc
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&dataFile, "file", "f", "", "Backing file (default ~/.note_app_data.json)")
	flags.StringVar(&adapter, "adapter", "fs", "Storage adapter: fs or sqlite")
	flags.BoolVar(&readOnly, "read-only", false, "Refuse every change to the notes")
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.config/notepad/config.yaml)")
}
