package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/go-audio/wav"
)

func TestWrapPCM(t *testing.T) {
	// Four 16-bit samples.
	raw := make([]byte, 8)
	for i, v := range []int16{0, 1000, -1000, 32767} {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(v))
	}

	container, err := WrapPCM(raw)
	if err != nil {
		t.Fatalf("WrapPCM() error = %v", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(container))
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		t.Fatalf("decoding container: %v", err)
	}

	if dec.NumChans != Channels {
		t.Errorf("NumChans = %d, want %d", dec.NumChans, Channels)
	}
	if dec.SampleRate != SampleRate {
		t.Errorf("SampleRate = %d, want %d", dec.SampleRate, SampleRate)
	}
	if dec.BitDepth != BitDepth {
		t.Errorf("BitDepth = %d, want %d", dec.BitDepth, BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if len(buf.Data) != 4 {
		t.Fatalf("decoded %d samples, want 4", len(buf.Data))
	}
	if buf.Data[1] != 1000 || buf.Data[2] != -1000 {
		t.Errorf("decoded samples = %v", buf.Data)
	}
}

func TestWrapPCM_RejectsMisalignedPayload(t *testing.T) {
	// Odd byte counts cannot be 16-bit samples and must be rejected rather
	// than silently producing a corrupt container.
	if _, err := WrapPCM([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Error("WrapPCM should reject a payload that is not a multiple of the sample width")
	}
}

func TestWrapPCM_RejectsEmptyPayload(t *testing.T) {
	if _, err := WrapPCM(nil); err == nil {
		t.Error("WrapPCM should reject an empty payload")
	}
}

func TestSeekBuffer_OverwriteAfterSeek(t *testing.T) {
	// The encoder writes a provisional header, streams samples, then seeks
	// back to patch chunk sizes. Overwrites must not change the length.
	b := &seekBuffer{}
	if _, err := b.Write([]byte("RIFF????WAVE")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := b.Seek(4, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	if _, err := b.Write([]byte("1234")); err != nil {
		t.Fatalf("Write() after seek error = %v", err)
	}
	if got := string(b.data); got != "RIFF1234WAVE" {
		t.Errorf("buffer = %q, want %q", got, "RIFF1234WAVE")
	}

	if _, err := b.Seek(0, io.SeekEnd); err != nil {
		t.Fatalf("Seek(end) error = %v", err)
	}
	if _, err := b.Write([]byte("data")); err != nil {
		t.Fatalf("Write() at end error = %v", err)
	}
	if got := string(b.data); got != "RIFF1234WAVEdata" {
		t.Errorf("buffer = %q, want %q", got, "RIFF1234WAVEdata")
	}

	if _, err := b.Seek(-1, io.SeekStart); err == nil {
		t.Error("Seek before the start should fail")
	}
}
