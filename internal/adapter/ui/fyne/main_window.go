package fyne

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/themetune/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/imaging"
	"github.com/tejashwikalptaru/themetune/internal/ports"
	"github.com/tejashwikalptaru/themetune/res"
)

// Window geometry.
const (
	AppName      = "Themetune"
	WindowWidth  = 900
	WindowHeight = 820
)

// volumeStep is how far the keyboard shortcuts move the volume slider.
const volumeStep = 5

// MainWindow is the main UI window implementing the UIView interface.
// It is also the surface themes render onto (ports.ThemeSurface).
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window
	logger *slog.Logger
	theme  *PaletteTheme

	// Background layers, bottom to top
	bgFill    *canvas.Rectangle
	bgStretch *canvas.Image
	bgCenter  *canvas.Image

	// UI components
	trackList      *widget.List
	listBackground *canvas.Rectangle
	albumArt       *widgets.ArtFrame
	playButton     *widget.Button
	stopButton     *widget.Button
	nextButton     *widget.Button
	themeButton    *widget.Button
	progressSlider *widget.Slider
	timeLabel      *widget.Label
	timeBackground *canvas.Rectangle
	volumeSlider   *widget.Slider

	// State
	tracks  []string
	playing bool
	skins   map[string]fyneapp.Resource

	// Lifecycle management
	closeOnce     sync.Once
	onBeforeClose func()

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window.
func NewMainWindow(app fyneapp.App, logger *slog.Logger) *MainWindow {
	w := &MainWindow{
		app:    app,
		logger: logger,
		theme:  NewPaletteTheme(),
		skins:  make(map[string]fyneapp.Resource),
	}

	w.window = app.NewWindow(AppName)
	w.buildUI()

	w.window.Resize(fyneapp.NewSize(WindowWidth, WindowHeight))
	w.window.SetFixedSize(true)

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
	w.addShortcuts()
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	w.bgFill = canvas.NewRectangle(color.Transparent)
	w.bgStretch = canvas.NewImageFromImage(nil)
	w.bgStretch.FillMode = canvas.ImageFillStretch
	w.bgStretch.Hide()
	w.bgCenter = canvas.NewImageFromImage(nil)
	w.bgCenter.FillMode = canvas.ImageFillOriginal
	w.bgCenter.Hide()

	// Album art display; right-click opens the theme picker
	w.albumArt = widgets.NewArtFrame(imaging.Placeholder(imaging.ArtSize, imaging.ArtSize), imaging.ArtSize, w.showThemeMenu)

	// Track list; double-click plays
	w.trackList = widget.NewList(
		func() int {
			return len(w.tracks)
		},
		func() fyneapp.CanvasObject {
			return widgets.NewDoubleTapLabel(w.onTrackDoubleTapped)
		},
		func(i widget.ListItemID, obj fyneapp.CanvasObject) {
			label, ok := obj.(*widgets.DoubleTapLabel)
			if !ok || i < 0 || i >= len(w.tracks) {
				return
			}
			label.SetIndex(i)
			label.SetText(w.tracks[i])
		},
	)
	w.listBackground = canvas.NewRectangle(color.Transparent)

	// Control buttons
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	w.stopButton = widget.NewButtonWithIcon("", theme.MediaStopIcon(), nil)
	w.nextButton = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), nil)
	w.themeButton = widget.NewButton("Theme", nil)

	// Progress
	w.progressSlider = widget.NewSlider(0, 1)
	w.timeLabel = widget.NewLabel(domain.FormatProgress(0, 0))
	w.timeBackground = canvas.NewRectangle(color.Transparent)

	// Volume
	w.volumeSlider = widget.NewSlider(0, 100)
	w.volumeSlider.Value = 70
	volIcon := canvas.NewImageFromResource(theme.VolumeUpIcon())
	volIcon.SetMinSize(fyneapp.NewSize(20, 20))
	volumeHolder := container.NewBorder(nil, nil, volIcon, nil, w.volumeSlider)

	buttons := container.NewHBox(w.playButton, w.stopButton, w.nextButton, w.themeButton)
	timeHolder := container.NewStack(w.timeBackground, w.timeLabel)
	buttonsHolder := container.NewBorder(nil, nil, buttons, timeHolder, volumeHolder)
	controls := container.NewVBox(w.progressSlider, buttonsHolder)

	list := container.NewStack(w.listBackground, w.trackList)
	foreground := container.NewBorder(container.NewCenter(w.albumArt), controls, nil, nil, list)

	w.window.SetContent(container.NewStack(
		w.bgFill,
		w.bgStretch,
		container.NewCenter(w.bgCenter),
		container.NewPadded(foreground),
	))

	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// wirePresenterHandlers connects UI events to presenter handlers.
func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	w.playButton.OnTapped = w.presenter.OnPlayClicked
	w.stopButton.OnTapped = w.presenter.OnStopClicked
	w.nextButton.OnTapped = w.presenter.OnNextClicked
	w.themeButton.OnTapped = w.presenter.OnThemeClicked

	w.volumeSlider.OnChanged = func(value float64) {
		w.presenter.OnVolumeChanged(int(value))
	}
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	openFolder := fyneapp.NewMenuItem("Open Folder", w.handleOpenFolder)

	nextTheme := fyneapp.NewMenuItem("Next Theme", func() {
		if w.presenter != nil {
			w.presenter.OnThemeClicked()
		}
	})

	quit := fyneapp.NewMenuItem("Quit", func() {
		w.RequestClose()
		w.app.Quit()
	})
	quit.IsQuit = true

	fileMenu := fyneapp.NewMenu("File", openFolder, nextTheme, fyneapp.NewMenuItemSeparator(), quit)

	about := fyneapp.NewMenuItem("About", w.showAbout)
	helpMenu := fyneapp.NewMenu("Help", about)

	return []*fyneapp.Menu{fileMenu, helpMenu}
}

// showAbout displays the About dialog.
func (w *MainWindow) showAbout() {
	content := widget.NewRichTextFromMarkdown(res.AboutContent)
	content.Wrapping = fyneapp.TextWrapWord
	dialog.ShowCustom("About "+AppName, "Close", content, w.window)
}

// handleOpenFolder handles the "Open Folder" menu action.
func (w *MainWindow) handleOpenFolder() {
	if w.presenter == nil {
		return
	}

	fd := NewFolderDialog(w.window, w.presenter.OnFolderOpened, w.logger)
	fd.SetStartFolder(w.presenter.MusicFolder())
	fd.Show()
}

func (w *MainWindow) onTrackDoubleTapped(index int) {
	if w.presenter != nil {
		w.presenter.OnTrackSelected(index)
	}
}

// themeMenu builds the picker shown on right-click of the album art.
func (w *MainWindow) themeMenu() *fyneapp.Menu {
	var items []*fyneapp.MenuItem
	if w.presenter != nil {
		for _, name := range w.presenter.ThemeNames() {
			items = append(items, fyneapp.NewMenuItem(name, func() {
				w.presenter.OnThemeChosen(name)
			}))
		}
	}
	if len(items) == 0 {
		none := fyneapp.NewMenuItem("No themes", nil)
		none.Disabled = true
		items = append(items, none)
	}
	return fyneapp.NewMenu("Themes", items...)
}

func (w *MainWindow) showThemeMenu(pe *fyneapp.PointEvent) {
	widget.ShowPopUpMenuAtPosition(w.themeMenu(), w.window.Canvas(), pe.AbsolutePosition)
}

// addShortcuts adds keyboard shortcuts.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyUp,
		Modifier: fyneapp.KeyModifierAlt,
	}, func(fyneapp.Shortcut) {
		w.volumeSlider.SetValue(min(w.volumeSlider.Value+volumeStep, 100))
	})

	w.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyneapp.KeyDown,
		Modifier: fyneapp.KeyModifierAlt,
	}, func(fyneapp.Shortcut) {
		w.volumeSlider.SetValue(max(w.volumeSlider.Value-volumeStep, 0))
	})
}

// SetOnBeforeClose registers fn to run when the user closes the window,
// while the event loop is still alive.
func (w *MainWindow) SetOnBeforeClose(fn func()) {
	w.onBeforeClose = fn
	w.window.SetCloseIntercept(w.RequestClose)
}

// RequestClose closes the window the way the user does: the before-close
// hook runs first.
func (w *MainWindow) RequestClose() {
	if w.onBeforeClose != nil {
		w.onBeforeClose()
	}
	w.Close()
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// UIView interface implementation

// SetTracks replaces the track list.
func (w *MainWindow) SetTracks(names []string) {
	w.tracks = names
	w.trackList.UnselectAll()
	w.trackList.Refresh()
}

// SetSelectedTrack highlights the playing track. A negative index clears it.
func (w *MainWindow) SetSelectedTrack(index int) {
	if index < 0 || index >= len(w.tracks) {
		w.trackList.UnselectAll()
		return
	}
	w.trackList.Select(index)
}

// SetPlayState swaps the play button between play and pause.
func (w *MainWindow) SetPlayState(playing bool) {
	w.playing = playing
	w.refreshPlayIcon()
}

// SetAlbumArt shows the cover of the loaded track.
func (w *MainWindow) SetAlbumArt(img image.Image) {
	if img == nil {
		img = imaging.Placeholder(imaging.ArtSize, imaging.ArtSize)
	}
	w.albumArt.SetArt(img)
}

// SetProgress updates the progress slider and the time label.
func (w *MainWindow) SetProgress(positionSeconds, durationSeconds int) {
	w.progressSlider.Max = float64(max(durationSeconds, 1))
	w.progressSlider.Value = float64(min(max(positionSeconds, 0), max(durationSeconds, 1)))
	w.progressSlider.Refresh()
	w.timeLabel.SetText(domain.FormatProgress(positionSeconds, durationSeconds))
}

// SetVolume moves the volume slider without re-triggering OnChanged.
func (w *MainWindow) SetVolume(level int) {
	w.volumeSlider.Value = float64(level)
	w.volumeSlider.Refresh()
}

// ThemeSurface implementation

// ClearBackground removes the previous theme's fill and image.
func (w *MainWindow) ClearBackground() {
	w.bgFill.FillColor = color.Transparent
	w.bgFill.Refresh()

	for _, img := range []*canvas.Image{w.bgStretch, w.bgCenter} {
		img.Image = nil
		img.Hide()
	}
}

// FillBackground paints the window background.
func (w *MainWindow) FillBackground(c color.Color) {
	w.bgFill.FillColor = c
	w.bgFill.Refresh()
}

// DrawBackgroundImage places img behind the content.
func (w *MainWindow) DrawBackgroundImage(img image.Image, mode domain.BackgroundMode) {
	target := w.bgStretch
	if mode == domain.ModeCenter {
		target = w.bgCenter
		target.SetMinSize(fyneapp.NewSize(float32(img.Bounds().Dx()), float32(img.Bounds().Dy())))
	}
	target.Image = img
	target.Show()
	target.Refresh()
}

// ApplyPalette recolours every widget through the palette theme.
func (w *MainWindow) ApplyPalette(palette domain.Palette) {
	w.theme.SetPalette(palette)
	w.app.Settings().SetTheme(w.theme)

	for _, bg := range []*canvas.Rectangle{w.listBackground, w.timeBackground} {
		bg.FillColor = palette.Background
		bg.Refresh()
	}
}

// SetThemeLabel sets the caption of the theme button.
func (w *MainWindow) SetThemeLabel(text string) {
	w.themeButton.SetText(text)
}

// SetButtonSkin replaces a transport button icon; nil restores the default.
func (w *MainWindow) SetButtonSkin(button string, img image.Image) {
	if img == nil {
		delete(w.skins, button)
	} else if res, err := imageResource(button, img); err != nil {
		w.logger.Warn("cannot use button skin", slog.String("button", button), slog.Any("error", err))
		delete(w.skins, button)
	} else {
		w.skins[button] = res
	}

	switch button {
	case "play", "pause":
		w.refreshPlayIcon()
	case "stop":
		w.stopButton.SetIcon(w.icon("stop", theme.MediaStopIcon()))
	case "next":
		w.nextButton.SetIcon(w.icon("next", theme.MediaSkipNextIcon()))
	}
}

func (w *MainWindow) refreshPlayIcon() {
	if w.playing {
		w.playButton.SetIcon(w.icon("pause", theme.MediaPauseIcon()))
		return
	}
	w.playButton.SetIcon(w.icon("play", theme.MediaPlayIcon()))
}

func (w *MainWindow) icon(button string, fallback fyneapp.Resource) fyneapp.Resource {
	if res, ok := w.skins[button]; ok {
		return res
	}
	return fallback
}

// imageResource encodes img as a PNG resource usable as a button icon.
func imageResource(name string, img image.Image) (fyneapp.Resource, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return fyneapp.NewStaticResource(name+".png", buf.Bytes()), nil
}

// Verify interface implementations
var (
	_ UIView             = (*MainWindow)(nil)
	_ ports.ThemeSurface = (*MainWindow)(nil)
)
