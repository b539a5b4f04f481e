package audio

import (
	"math"
	"testing"
	"time"
)

func TestEncodeFramesClampsOutOfRangeSamples(t *testing.T) {
	encoded := EncodeFrames([]float32{2.0, -2.0})
	decoded := DecodeFrames(encoded)

	if decoded[0] < 0.99 {
		t.Fatalf("expected positive overdrive to clamp near 1, got %f", decoded[0])
	}
	if decoded[1] > -0.99 {
		t.Fatalf("expected negative overdrive to clamp near -1, got %f", decoded[1])
	}
}

func TestDecodeFramesRoundTripsSilence(t *testing.T) {
	decoded := DecodeFrames(EncodeFrames(make([]float32, 64)))

	for i, sample := range decoded {
		if sample != 0 {
			t.Fatalf("expected silence to stay silent, got %f at %d", sample, i)
		}
	}
}

func TestRMSOfConstantSignal(t *testing.T) {
	samples := make([]float32, 128)
	for i := range samples {
		samples[i] = 0.5
	}

	if got := RMS(samples); math.Abs(got-0.5) > 1e-6 {
		t.Fatalf("expected rms 0.5 for constant signal, got %f", got)
	}
}

func TestRMSOfEmptyFrameIsZero(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Fatalf("expected rms 0 for empty frame, got %f", got)
	}
}

func TestDurationUsesSampleRateAndByteSize(t *testing.T) {
	enc := OutputEncodingInfo()
	audio := make([]byte, OutputSampleRate*2) // one second of linear16

	if got := enc.Duration(audio); got != time.Second {
		t.Fatalf("expected one second of audio, got %s", got)
	}
}

func TestDurationOfEmptyAudioIsZero(t *testing.T) {
	if got := InputEncodingInfo().Duration(nil); got != 0 {
		t.Fatalf("expected zero duration for empty audio, got %s", got)
	}
}
