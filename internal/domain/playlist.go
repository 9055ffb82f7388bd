package domain

// NoSelection is the cursor value of a playlist with nothing selected.
const NoSelection = -1

// Playlist is the ordered track list of a session plus its cursor.
// It is rebuilt wholesale on every folder scan.
type Playlist struct {
	tracks       []Track
	currentIndex int
}

// NewPlaylist creates a playlist over tracks with no selection.
func NewPlaylist(tracks []Track) *Playlist {
	p := &Playlist{currentIndex: NoSelection}
	p.Replace(tracks)
	return p
}

// Replace discards the current tracks, installs a copy of tracks and clears the cursor.
func (p *Playlist) Replace(tracks []Track) {
	p.tracks = make([]Track, len(tracks))
	copy(p.tracks, tracks)
	p.currentIndex = NoSelection
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IsEmpty reports whether the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return len(p.tracks) == 0
}

// Tracks returns a copy of the track list.
func (p *Playlist) Tracks() []Track {
	out := make([]Track, len(p.tracks))
	copy(out, p.tracks)
	return out
}

// CurrentIndex returns the cursor, NoSelection when idle.
func (p *Playlist) CurrentIndex() int {
	return p.currentIndex
}

// HasSelection reports whether the cursor points at a track.
func (p *Playlist) HasSelection() bool {
	return p.currentIndex >= 0 && p.currentIndex < len(p.tracks)
}

// Current returns the selected track.
func (p *Playlist) Current() (Track, bool) {
	if !p.HasSelection() {
		return Track{}, false
	}
	return p.tracks[p.currentIndex], true
}

// Select moves the cursor to index.
func (p *Playlist) Select(index int) error {
	if index < 0 || index >= len(p.tracks) {
		return ErrInvalidIndex
	}
	p.currentIndex = index
	return nil
}

// Advance moves the cursor one step forward, wrapping after the last track.
// From NoSelection it lands on the first track.
func (p *Playlist) Advance() error {
	if len(p.tracks) == 0 {
		return ErrPlaylistEmpty
	}
	p.currentIndex = (p.currentIndex + 1) % len(p.tracks)
	return nil
}
