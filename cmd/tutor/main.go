// Command tutor is a terminal client for the Maahir voice study
// buddy: it streams microphone audio to the live model, plays the
// spoken answers back and renders transcripts, citations and quizzes.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	session "github.com/maahirlabs/tutor-core/core"
	"github.com/maahirlabs/tutor-core/core/audio/miniaudio"
	"github.com/maahirlabs/tutor-core/core/audio/portaudio"
	"github.com/maahirlabs/tutor-core/core/live"
	"github.com/maahirlabs/tutor-core/core/live/gemini"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	input, err := newAudioInput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open microphone: %v\n", err)
		os.Exit(1)
	}

	output, err := miniaudio.NewPlaybackClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open audio output: %v\n", err)
		os.Exit(1)
	}

	s := session.New(
		session.WithTransport(func() live.Transport {
			return gemini.NewClient(gemini.WithAPIKey(cfg.GeminiAPIKey))
		}),
		session.WithAudioInput(input),
		session.WithAudioOutput(output),
		session.WithModel(cfg.Model),
		session.WithVoice(cfg.Voice),
	)
	defer s.Close()

	if _, err := tea.NewProgram(newModel(s), tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("Failed to run terminal client: %v", err)
	}
}

func newAudioInput(cfg Config) (session.AudioInput, error) {
	switch cfg.InputBackend {
	case "portaudio":
		return portaudio.NewClient()
	default:
		return miniaudio.NewCaptureClient()
	}
}
