// Package miniaudio provides microphone capture and speech playback
// device clients backed by malgo. Capture and playback run at
// different sample rates, so each direction owns its own context.
package miniaudio

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/maahirlabs/tutor-core/core/audio"
)

// captureBlockFrames is the fixed input block size handed to the
// session per callback.
const captureBlockFrames = 4096

// CaptureClient records microphone audio at the input wire rate and
// delivers normalized float32 sample blocks.
type CaptureClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	onAudio func(frames []float32)

	mu sync.Mutex
}

func NewCaptureClient() (*CaptureClient, error) {
	audioCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize capture context: %w", err)
	}

	client := CaptureClient{audioContext: audioCtx}
	if err := client.init(); err != nil {
		client.Close()
		return nil, err
	}
	return &client, nil
}

func (c *CaptureClient) init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	format := malgo.FormatF32
	channels := 1
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.config = malgo.DefaultDeviceConfig(malgo.Capture)
	c.config.SampleRate = uint32(audio.InputSampleRate)
	c.config.Capture.Format = format
	c.config.Capture.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = captureBlockFrames
	c.config.Periods = 3

	var err error
	c.device, err = malgo.InitDevice(c.audioContext.Context, c.config, malgo.DeviceCallbacks{
		Data: func(_, pInput []byte, frameCount uint32) {
			n := int(frameCount) * bytesPerFrame
			if len(pInput) < n || n == 0 {
				return
			}
			if c.onAudio != nil {
				c.onAudio(decodeF32(pInput[:n]))
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}
	return nil
}

func (c *CaptureClient) StartCapture(_ context.Context, onAudio func(frames []float32)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	// Always install the callback so a device left running still feeds
	// the new consumer.
	c.onAudio = onAudio
	if c.device.IsStarted() {
		return nil
	}

	if err := c.device.Start(); err != nil {
		c.onAudio = nil
		return fmt.Errorf("failed to start capture device: %w", err)
	}
	return nil
}

func (c *CaptureClient) StopCapture() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return nil
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop capture device: %w", err)
	}
	c.onAudio = nil
	return nil
}

func (c *CaptureClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}
	c.onAudio = nil

	if c.audioContext != nil {
		_ = c.audioContext.Uninit()
		c.audioContext.Free()
		c.audioContext = nil
	}
	return nil
}

func (c *CaptureClient) EncodingInfo() audio.EncodingInfo {
	return audio.InputEncodingInfo()
}

func decodeF32(raw []byte) []float32 {
	frames := make([]float32, len(raw)/4)
	for i := range frames {
		frames[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return frames
}
