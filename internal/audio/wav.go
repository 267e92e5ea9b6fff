// Package audio wraps raw PCM recordings into WAV containers and drives the
// local playback device.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Fixed capture format: what the browser client records and what the AI
// backend is handed.
const (
	SampleRate = 44100
	Channels   = 1
	BitDepth   = 16
)

const sampleWidth = BitDepth / 8

// WrapPCM encodes raw little-endian 16-bit mono PCM samples into a WAV
// container and returns the container bytes. The payload length must be a
// multiple of the sample width; anything else would produce a structurally
// valid but corrupt container, so it is rejected instead.
func WrapPCM(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty pcm payload")
	}
	if len(raw)%sampleWidth != 0 {
		return nil, fmt.Errorf("pcm payload not aligned to %d-bit samples", BitDepth)
	}

	buffer := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: Channels, SampleRate: SampleRate},
	}
	samples := make([]int, len(raw)/sampleWidth)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(raw[i*sampleWidth:])))
	}
	buffer.Data = samples

	// The wav encoder needs a seekable writer to patch chunk sizes after
	// the samples are written.
	out := &seekBuffer{}
	enc := wav.NewEncoder(out, SampleRate, BitDepth, Channels, 1)
	if err := enc.Write(buffer); err != nil {
		return nil, fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close wav encoder: %w", err)
	}
	return out.data, nil
}

// seekBuffer is an in-memory io.WriteSeeker: writes past the end grow the
// buffer, writes after a seek overwrite in place.
type seekBuffer struct {
	data []byte
	pos  int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.data) {
		if end > cap(b.data) {
			grown := make([]byte, end)
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.pos) + offset
	case io.SeekEnd:
		pos = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if pos < 0 {
		return 0, fmt.Errorf("negative seek position: %d", pos)
	}
	b.pos = int(pos)
	return pos, nil
}
