package fyne

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// FolderDialog is a helper for creating folder open dialogs.
type FolderDialog struct {
	window   fyne.Window
	callback func(string)
	logger   *slog.Logger
	start    string
}

// NewFolderDialog creates a new folder dialog.
func NewFolderDialog(window fyne.Window, callback func(string), logger *slog.Logger) *FolderDialog {
	return &FolderDialog{
		window:   window,
		callback: callback,
		logger:   logger,
	}
}

// SetStartFolder sets the folder the dialog opens in. Unlistable paths are ignored.
func (d *FolderDialog) SetStartFolder(path string) {
	d.start = path
}

// Show displays the folder dialog.
func (d *FolderDialog) Show() {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			d.logger.Error("folder dialog error", slog.Any("error", err))
			return
		}
		if uri == nil {
			return // User cancelled
		}

		if d.callback != nil {
			d.callback(uri.Path())
		}
	}, d.window)

	if d.start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(d.start)); err == nil {
			fd.SetLocation(lister)
		} else {
			d.logger.Debug("cannot start folder dialog in music folder", slog.String("folder", d.start), slog.Any("error", err))
		}
	}

	fd.Show()
}
