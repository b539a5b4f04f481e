package audio

import (
	"encoding/binary"
	"math"
)

// EncodeFrames converts normalized sample frames into the linear16
// little-endian wire format. Samples outside [-1, 1] are clamped.
func EncodeFrames(samples []float32) []byte {
	encoded := make([]byte, len(samples)*2)
	for i, sample := range samples {
		clamped := math.Max(-1, math.Min(1, float64(sample)))
		binary.LittleEndian.PutUint16(encoded[i*2:], uint16(int16(clamped*math.MaxInt16)))
	}
	return encoded
}

// DecodeFrames converts linear16 little-endian wire audio into
// normalized playable sample buffers. A trailing odd byte is dropped.
func DecodeFrames(audio []byte) []float32 {
	samples := make([]float32, len(audio)/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(audio[i*2:]))) / math.MaxInt16
	}
	return samples
}

// RMS computes the root-mean-square energy of a normalized frame.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, sample := range samples {
		sum += float64(sample) * float64(sample)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
