package widgets

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestDoubleTapLabel_ReportsIndex(t *testing.T) {
	app := test.NewApp()
	t.Cleanup(app.Quit)

	var got []int
	label := NewDoubleTapLabel(func(index int) { got = append(got, index) })

	test.DoubleTap(label)
	assert.Empty(t, got, "label without a row must not fire")

	label.SetIndex(3)
	label.SetText("song.mp3")
	test.DoubleTap(label)

	assert.Equal(t, []int{3}, got)
	assert.Equal(t, 3, label.Index())
	assert.Equal(t, "song.mp3", label.Text)
}

func TestArtFrame(t *testing.T) {
	app := test.NewApp()
	t.Cleanup(app.Quit)

	var taps int
	first := image.NewRGBA(image.Rect(0, 0, 4, 4))
	frame := NewArtFrame(first, 50, func(*fyne.PointEvent) { taps++ })
	assert.Equal(t, first, frame.Art())

	test.Tap(frame)
	assert.Zero(t, taps)

	test.TapSecondary(frame)
	assert.Equal(t, 1, taps)

	second := image.NewRGBA(image.Rect(0, 0, 8, 8))
	frame.SetArt(second)
	assert.Equal(t, second, frame.Art())
}
