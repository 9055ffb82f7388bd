package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// ArtFrame shows the album art of the loaded track at a fixed square size.
// A right-click reports its position so the caller can open a context menu.
type ArtFrame struct {
	widget.BaseWidget

	image       *canvas.Image
	onContextAt func(*fyne.PointEvent)
}

// NewArtFrame creates a frame of side size showing initial.
func NewArtFrame(initial image.Image, size float32, onContextAt func(*fyne.PointEvent)) *ArtFrame {
	img := canvas.NewImageFromImage(initial)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(size, size))

	f := &ArtFrame{image: img, onContextAt: onContextAt}
	f.ExtendBaseWidget(f)
	return f
}

// SetArt replaces the displayed image.
func (f *ArtFrame) SetArt(img image.Image) {
	f.image.Image = img
	f.image.Refresh()
}

// Art returns the displayed image.
func (f *ArtFrame) Art() image.Image {
	return f.image.Image
}

// CreateRenderer implements fyne.Widget.
func (f *ArtFrame) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(f.image)
}

// Tapped implements fyne.Tappable. Left clicks do nothing.
func (f *ArtFrame) Tapped(*fyne.PointEvent) {}

// TappedSecondary implements fyne.SecondaryTappable.
func (f *ArtFrame) TappedSecondary(pe *fyne.PointEvent) {
	if f.onContextAt != nil {
		f.onContextAt(pe)
	}
}

var _ fyne.Tappable = (*ArtFrame)(nil)
var _ fyne.SecondaryTappable = (*ArtFrame)(nil)
