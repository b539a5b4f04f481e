// Package portaudio provides an alternative microphone client for
// hosts where miniaudio capture misbehaves.
package portaudio

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/maahirlabs/tutor-core/core/audio"
)

const captureBlockFrames = 4096

// Client captures microphone audio through PortAudio's blocking read
// API and delivers normalized float32 sample blocks.
type Client struct {
	stream *portaudio.Stream
	in     []float32

	mu        sync.Mutex
	capturing bool
	stop      chan struct{}
	done      chan struct{}
}

func NewClient() (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]float32, captureBlockFrames)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(audio.InputSampleRate), captureBlockFrames, in)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	return &Client{stream: stream, in: in}, nil
}

func (c *Client) StartCapture(ctx context.Context, onAudio func(frames []float32)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream == nil {
		return fmt.Errorf("stream not initialized")
	} else if c.capturing {
		return nil
	}

	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	c.capturing = true
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.readLoop(ctx, c.stop, c.done, onAudio)
	return nil
}

func (c *Client) readLoop(ctx context.Context, stop, done chan struct{}, onAudio func(frames []float32)) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		default:
			if err := c.stream.Read(); err != nil {
				log.Printf("Failed to read from portaudio stream: %v", err)
				continue
			}
			frames := make([]float32, len(c.in))
			copy(frames, c.in)
			onAudio(frames)
		}
	}
}

func (c *Client) StopCapture() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.capturing {
		return nil
	}

	close(c.stop)
	<-c.done
	c.capturing = false

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop portaudio stream: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if err := c.StopCapture(); err != nil {
		log.Printf("Failed to stop capture during close: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
		portaudio.Terminate()
	}
	return nil
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.InputEncodingInfo()
}
