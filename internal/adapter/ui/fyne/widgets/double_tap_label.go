package widgets

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// DoubleTapLabel is a track list row that reports double-taps with its row index.
// A single tap is left to the list, which only highlights the row.
type DoubleTapLabel struct {
	widget.Label
	doubleTapped func(index int)
	index        int
}

// NewDoubleTapLabel creates a new DoubleTapLabel with the given callback function.
func NewDoubleTapLabel(doubleTapped func(index int)) *DoubleTapLabel {
	label := &DoubleTapLabel{
		doubleTapped: doubleTapped,
		index:        -1,
	}
	label.Truncation = fyne.TextTruncateEllipsis
	label.ExtendBaseWidget(label)
	return label
}

// DoubleTapped implements the fyne.DoubleTappable interface.
func (l *DoubleTapLabel) DoubleTapped(_ *fyne.PointEvent) {
	if l.doubleTapped != nil && l.index >= 0 {
		l.doubleTapped(l.index)
	}
}

// SetIndex sets the row this label currently renders. Rows are recycled by
// the list, so the index changes as the list scrolls.
func (l *DoubleTapLabel) SetIndex(index int) {
	l.index = index
}

// Index returns the row this label renders.
func (l *DoubleTapLabel) Index() int {
	return l.index
}

var _ fyne.DoubleTappable = (*DoubleTapLabel)(nil)
