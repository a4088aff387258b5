// Command voicebio analyzes voice recordings for acoustic biomarkers.
//
// Usage:
//
//	voicebio [flags] <command> [args]
//
// Commands:
//
//	analyze - Run the full analysis pipeline on a WAV recording
//	weights - Generate and inspect model weight artifacts
//
// The analyze command decodes a WAV file, extracts acoustic features
// (pitch, energy, spectral shape, voicing structure, voice quality),
// runs the inference network, and prints a health-indicator report or
// JSON for piping.
package main

import (
	"fmt"
	"os"

	"github.com/Thepluscode/medimind-voice/cmd/voicebio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
