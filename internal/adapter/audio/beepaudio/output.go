package beepaudio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// output is the sink the engine streams into. In production it is the
// system speaker; tests substitute a sink they can pull samples from.
type output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
	Close()
}

// speakerOutput drives the process-wide speaker.
type speakerOutput struct{}

func (speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Clear()               { speaker.Clear() }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }
func (speakerOutput) Close()               { speaker.Close() }
