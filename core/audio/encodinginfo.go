package audio

import "time"

// The sample rates are a wire-format contract with the live transport:
// it expects linear16 input at 16kHz and emits audio at 24kHz.
const (
	InputSampleRate  = 16000
	OutputSampleRate = 24000
)

func InputEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: InputSampleRate, Format: EncodingLinear16}
}

func OutputEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: OutputSampleRate, Format: EncodingLinear16}
}

type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// Duration reports how long the given audio takes to play back.
func (e EncodingInfo) Duration(audio []byte) time.Duration {
	if e.IsZero() || len(audio) == 0 {
		return 0
	}

	return time.Duration(float64(len(audio)) / float64(e.SampleRate) * float64(time.Second) / float64(e.Format.ByteSize()))
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingLinear16:
		return 2
	}
	return -1
}

const (
	EncodingLinear16 encodingFormat = "linear16"
)
