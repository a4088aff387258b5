package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voicebio",
	Short: "Voice biomarker analysis tool",
	Long: `Voicebio - acoustic biomarker analysis for voice recordings.

Decodes a WAV recording, extracts acoustic features (pitch, energy,
spectral shape, voicing structure, voice quality), runs the inference
network, and reports derived health indicators: stress level,
emotional state, respiratory rate, voice quality, and cognitive load.

The scores are acoustic proxies, not clinical measurements.

Examples:
  # Generate a placeholder weights artifact
  voicebio weights gen -o weights.bin --seed 42

  # Analyze a recording
  voicebio analyze -w weights.bin recording.wav

  # JSON output for piping
  voicebio analyze -w weights.bin --json recording.wav | jq .stress_level
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "engine config file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(weightsCmd)
}

func initLogging() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))
}
