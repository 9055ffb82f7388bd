// Package main is the production entry point for the Themetune player.
//
// Themetune is a themeable desktop audio player:
// - Event-driven communication between services and the UI
// - Dependency injection for testability
// - MVP pattern for UI decoupling
// - Themes declared as JSON files under the assets directory
//
// Build:
//
//	go build -o build/themetune ./cmd
//
// Run:
//
//	./build/themetune --music ~/Music
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/themetune/internal/app"
	"github.com/tejashwikalptaru/themetune/internal/logger"
)

// newRootCommand builds the CLI; runFn receives the final configuration.
func newRootCommand(runFn func(app.Config) error) *cobra.Command {
	config := app.DefaultConfig()
	var logLevel string

	cmd := &cobra.Command{
		Use:          "themetune",
		Short:        "Themetune is a themeable desktop audio player.",
		Version:      app.GetVersionInfo().FullString(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LogLevel = logger.ParseLevel(logLevel, config.LogLevel)
			return runFn(config)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.MusicFolder, "music", config.MusicFolder, "folder scanned on first start")
	flags.StringVar(&config.AssetsDir, "assets", config.AssetsDir, "directory holding templates/, backgrounds/ and buttons/")
	flags.IntVar(&config.SampleRate, "sample-rate", config.SampleRate, "audio output sample rate")
	flags.BoolVar(&config.UseMockAudio, "mock", false, "use the silent mock audio engine")
	flags.StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (overrides "+logger.EnvLevel+")")

	return cmd
}

func run(config app.Config) error {
	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	// Run application (blocks until the window closed)
	return application.Run()
}

func main() {
	if err := newRootCommand(run).Execute(); err != nil {
		os.Exit(1)
	}
}
