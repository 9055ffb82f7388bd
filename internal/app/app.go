// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/tejashwikalptaru/themetune/internal/adapter/assets"
	"github.com/tejashwikalptaru/themetune/internal/adapter/audio/beepaudio"
	"github.com/tejashwikalptaru/themetune/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/themetune/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/themetune/internal/adapter/fswatch"
	"github.com/tejashwikalptaru/themetune/internal/adapter/metadata"
	"github.com/tejashwikalptaru/themetune/internal/adapter/repository/memory"
	fyneui "github.com/tejashwikalptaru/themetune/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/logger"
	"github.com/tejashwikalptaru/themetune/internal/ports"
	"github.com/tejashwikalptaru/themetune/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App
	assets  assets.Layout

	// Infrastructure
	eventBus    ports.EventBus
	audioEngine ports.AudioEngine
	metadata    ports.MetadataReader
	watcher     *fswatch.Watcher

	// Repositories
	preferencesRepo ports.PreferencesRepository

	// Services
	preferenceService *service.PreferenceService
	playlistService   *service.PlaylistService
	playbackService   *service.PlaybackService
	themeStore        *service.ThemeStore
	themeService      *service.ThemeService
	poller            *service.Poller
	session           *service.Session

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	// Lifecycle
	cancel       context.CancelFunc
	shutdownOnce sync.Once
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// AssetsDir holds templates/, backgrounds/ and buttons/
	AssetsDir string

	// MusicFolder is scanned on startup until the user opens another folder
	MusicFolder string

	// SampleRate is the audio output sample rate
	SampleRate int

	// PollInterval is how often the elapsed time refreshes
	PollInterval time.Duration

	// WatchDebounce collapses bursts of music folder changes
	WatchDebounce time.Duration

	// UseMockAudio determines whether to use a mock audio engine (for testing)
	UseMockAudio bool

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// Logger overrides the logger built from LogLevel (nil for production)
	Logger *slog.Logger

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:         "com.themetune.app",
		AppName:       fyneui.AppName,
		AssetsDir:     assets.DefaultRoot(),
		MusicFolder:   defaultMusicFolder(),
		SampleRate:    44100,
		PollInterval:  service.DefaultPollInterval,
		WatchDebounce: fswatch.DefaultDebounce,
		UseMockAudio:  false,
		LogLevel:      loggerCfg.Level,
	}
}

func defaultMusicFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Music"
	}
	return filepath.Join(home, "Music")
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	if config.Logger != nil {
		app.logger = config.Logger
	} else {
		loggerCfg := logger.DefaultConfig()
		loggerCfg.Level = config.LogLevel
		app.logger = logger.NewLogger(loggerCfg)
	}
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 3: Prepare the asset directories (non-fatal)
	app.assets = assets.NewLayout(config.AssetsDir)
	if err := app.assets.Ensure(app.logger); err != nil {
		app.logger.Warn("asset directories unavailable, themes disabled", slog.Any("error", err))
	}

	// Step 4: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus(app.logger)

	// Step 5: Create an audio engine
	if config.UseMockAudio {
		app.audioEngine = mock.NewEngine(app.logger)
	} else {
		app.audioEngine = beepaudio.NewEngine(app.logger)
	}
	if err := app.audioEngine.Initialize(config.SampleRate); err != nil {
		return nil, fmt.Errorf("failed to initialize audio engine: %w", err)
	}
	app.metadata = metadata.NewReader(app.logger)

	// Step 6: Create repositories
	app.preferencesRepo = memory.NewPreferencesRepository(app.fyneApp.Preferences())

	// Step 7: Create services (with dependency injection)
	app.preferenceService = service.NewPreferenceService(
		app.logger.With(slog.String("service", "preference")),
		app.preferencesRepo,
		config.MusicFolder,
	)

	app.playlistService = service.NewPlaylistService(
		app.logger.With(slog.String("service", "playlist")),
	)

	app.playbackService = service.NewPlaybackService(
		app.logger.With(slog.String("service", "playback")),
		app.audioEngine,
		app.metadata,
		app.eventBus,
	)

	app.themeStore = service.NewThemeStore(app.logger.With(slog.String("service", "theme_store")))
	app.themeStore.LoadAll(app.assets.Templates)

	// Step 8: Create UI; the window is the surface themes render onto
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, app.logger.With(slog.String("component", "ui")))

	app.themeService = service.NewThemeService(
		app.logger.With(slog.String("service", "theme")),
		app.themeStore,
		app.mainWindow,
		app.eventBus,
		service.ThemeServiceConfig{
			BackgroundsDir: app.assets.Backgrounds,
			ButtonsDir:     app.assets.Buttons,
			Width:          fyneui.WindowWidth,
			Height:         fyneui.WindowHeight,
		},
	)

	app.session = service.NewSession(
		app.logger.With(slog.String("service", "session")),
		app.playbackService,
		app.playlistService,
		app.themeService,
		app.preferenceService,
	)

	app.poller = service.NewPoller(
		app.logger.With(slog.String("service", "poller")),
		app.audioEngine,
		app.eventBus,
		app.playbackService,
		config.PollInterval,
	)

	app.watcher = fswatch.NewWatcher(app.logger, app.eventBus, app.playlistService.IsSupported, config.WatchDebounce)

	// Step 9: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.session,
		app.eventBus,
		app.mainWindow,
	)
	app.mainWindow.SetPresenter(app.presenter)
	app.mainWindow.SetOnBeforeClose(app.stopWorkers)

	// Step 10: Restore volume, theme and music folder from the previous session
	app.session.Restore()

	return app, nil
}

// Start launches the background workers: the elapsed time poller and the
// music folder watcher. Both hand their work to the UI thread via fyne.Do.
func (a *Application) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.poller.Start(ctx, fyne.Do); err != nil {
		return fmt.Errorf("failed to start poller: %w", err)
	}

	if err := a.watcher.Watch(a.session.MusicFolder()); err != nil {
		a.logger.Debug("music folder not watched", slog.Any("error", err))
	}
	if err := a.watcher.Start(ctx, fyne.Do, a.refreshIfIdle); err != nil {
		a.logger.Warn("music folder watcher disabled", slog.Any("error", err))
	}

	return nil
}

// stopWorkers stops the poller and the folder watcher. Both stops are
// idempotent, so it runs on window close and again on Shutdown.
func (a *Application) stopWorkers() {
	a.watcher.Stop()
	a.poller.Stop()
}

func (a *Application) refreshIfIdle() {
	a.session.RefreshIfIdle()
}

// Run starts the workers and shows the window.
// It blocks until the window is closed.
func (a *Application) Run() error {
	if err := a.Start(context.Background()); err != nil {
		return err
	}

	a.logger.Info("Themetune started")
	a.mainWindow.ShowAndRun()
	return nil
}

// Shutdown gracefully shuts down the application.
// It's safe to call multiple times (idempotent).
func (a *Application) Shutdown() error {
	var errs []error

	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		if a.cancel != nil {
			a.cancel()
		}
		a.stopWorkers()
		a.presenter.Shutdown()

		if err := a.playbackService.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("playback service: %w", err))
		}

		if err := a.audioEngine.Shutdown(); err != nil && !errors.Is(err, domain.ErrNotInitialized) {
			errs = append(errs, fmt.Errorf("audio engine: %w", err))
		}

		if err := a.eventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}

		a.logger.Info("application shutdown complete")
	})

	return errors.Join(errs...)
}

// Session returns the player session.
func (a *Application) Session() *service.Session {
	return a.session
}

// EventBus returns the event bus.
func (a *Application) EventBus() ports.EventBus {
	return a.eventBus
}

// AudioEngine returns the audio engine.
func (a *Application) AudioEngine() ports.AudioEngine {
	return a.audioEngine
}

// FyneApp returns the Fyne application.
func (a *Application) FyneApp() fyne.App {
	return a.fyneApp
}

// MainWindow returns the main window.
func (a *Application) MainWindow() *fyneui.MainWindow {
	return a.mainWindow
}

// Assets returns the asset directory layout.
func (a *Application) Assets() assets.Layout {
	return a.assets
}
