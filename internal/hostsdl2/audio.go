//go:build sdl2

package hostsdl2

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/kestrelmark/goboycore/internal/core/system"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sampleRate  = 44100
	targetBytes = 2048 * 4 // ~2048 stereo 16-bit samples queued ahead
)

// AudioSink pulls mono float samples from a System at sampleRate, converts
// them to signed 16-bit stereo, and queues them on an SDL2 audio device.
type AudioSink struct {
	device sdl.AudioDeviceID
}

// NewAudioSink opens the default SDL2 audio output device.
func NewAudioSink() (*AudioSink, error) {
	spec := &sdl.AudioSpec{
		Freq:     sampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  512,
	}
	obtained := &sdl.AudioSpec{}
	device, err := sdl.OpenAudioDevice("", false, spec, obtained, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %v", err)
	}
	sdl.PauseAudioDevice(device, false)

	slog.Info("SDL2 audio sink initialized", "freq", obtained.Freq, "samples", obtained.Samples)
	return &AudioSink{device: device}, nil
}

// Feed tops up the queue to targetBytes by pulling fresh samples from sys.
func (a *AudioSink) Feed(sys *system.System) {
	queued := sdl.GetQueuedAudioSize(a.device)
	if queued >= targetBytes {
		return
	}

	stereoSampleBytes := uint32(4) // 2 channels x 2 bytes
	count := (targetBytes - queued) / stereoSampleBytes

	buf := make([]byte, 0, count*stereoSampleBytes)
	for i := uint32(0); i < count; i++ {
		sample := sys.PullSample(sampleRate)
		s16 := int16(sample * 32767)
		var frame [4]byte
		binary.LittleEndian.PutUint16(frame[0:2], uint16(s16))
		binary.LittleEndian.PutUint16(frame[2:4], uint16(s16))
		buf = append(buf, frame[:]...)
	}

	if err := sdl.QueueAudio(a.device, buf); err != nil {
		slog.Warn("failed to queue audio", "err", err)
	}
}

// Close stops and releases the audio device.
func (a *AudioSink) Close() {
	sdl.CloseAudioDevice(a.device)
}
