package testutil

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// WriteWAV writes a mono 16-bit PCM sine tone of the given length to path.
func WriteWAV(t testing.TB, path string, sampleRate int, seconds float64) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	n := int(float64(sampleRate) * seconds)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, n),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = int(8000 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

// ID3WithPicture builds an ID3v2.3 tag holding a single front-cover APIC frame.
func ID3WithPicture(mime string, picture []byte) []byte {
	var frame bytes.Buffer
	frame.WriteByte(0x00) // ISO-8859-1
	frame.WriteString(mime)
	frame.WriteByte(0x00)
	frame.WriteByte(0x03) // front cover
	frame.WriteByte(0x00) // empty description
	frame.Write(picture)

	var body bytes.Buffer
	body.WriteString("APIC")
	_ = binary.Write(&body, binary.BigEndian, uint32(frame.Len()))
	body.Write([]byte{0x00, 0x00})
	body.Write(frame.Bytes())

	size := body.Len()
	var tag bytes.Buffer
	tag.WriteString("ID3")
	tag.Write([]byte{0x03, 0x00, 0x00})
	tag.Write([]byte{
		byte(size >> 21 & 0x7f),
		byte(size >> 14 & 0x7f),
		byte(size >> 7 & 0x7f),
		byte(size & 0x7f),
	})
	tag.Write(body.Bytes())
	return tag.Bytes()
}
