// Package metadata reads track length and embedded cover art from audio files.
package metadata

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
	"github.com/tcolgate/mp3"
	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// probe returns the playing time of the file at path.
type probe func(path string) (time.Duration, error)

// Reader implements ports.MetadataReader with a per-format duration probe and
// the tag library for cover art.
type Reader struct {
	logger *slog.Logger
	probes map[string]probe
}

// NewReader creates a metadata reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{
		logger: logger,
		probes: map[string]probe{
			".mp3":  mp3Duration,
			".wav":  wavDuration,
			".ogg":  oggDuration,
			".flac": flacDuration,
		},
	}
}

// Duration returns the track length in whole seconds.
func (r *Reader) Duration(path string) (int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	probe, ok := r.probes[ext]
	if !ok {
		return 0, fmt.Errorf("%w: %w", domain.ErrMetadataUnavailable, domain.ErrUnsupportedFormat)
	}

	d, err := probe(path)
	if err != nil {
		r.logger.Debug("duration probe failed", slog.String("file", path), slog.Any("error", err))
		return 0, fmt.Errorf("%w: %w", domain.ErrMetadataUnavailable, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: no audio frames", domain.ErrMetadataUnavailable)
	}
	return int(d / time.Second), nil
}

// EmbeddedArt returns the bytes of the file's first attached picture.
func (r *Reader) EmbeddedArt(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMetadataUnavailable, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, domain.ErrNoEmbeddedArt
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrMetadataUnavailable, err)
	}

	pic := m.Picture()
	if pic == nil || len(pic.Data) == 0 {
		return nil, domain.ErrNoEmbeddedArt
	}
	return pic.Data, nil
}

func mp3Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var (
		total   time.Duration
		frame   mp3.Frame
		skipped int
	)
	d := mp3.NewDecoder(f)
	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return 0, err
		}
		total += frame.Duration()
	}
	return total, nil
}

func wavDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return 0, errors.New("not a valid WAV file")
	}
	return d.Duration()
}

func oggDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r, err := oggvorbis.NewReader(f)
	if err != nil {
		return 0, err
	}
	if r.SampleRate() == 0 {
		return 0, errors.New("zero sample rate")
	}
	return time.Duration(r.Length()) * time.Second / time.Duration(r.SampleRate()), nil
}

func flacDuration(path string) (time.Duration, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	if stream.Info == nil || stream.Info.SampleRate == 0 {
		return 0, errors.New("missing stream info")
	}
	return time.Duration(stream.Info.NSamples) * time.Second / time.Duration(stream.Info.SampleRate), nil
}

// Verify interface implementation
var _ ports.MetadataReader = (*Reader)(nil)
