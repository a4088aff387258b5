package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Thepluscode/medimind-voice/pkg/voicebio"
)

var analyzeWeightsPath string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <recording.wav>",
	Short: "Analyze a voice recording",
	Long: `Run the full analysis pipeline on a WAV recording.

The recording should contain at least a few seconds of speech. Inputs
at rates other than the engine rate (default 16 kHz) are resampled.
Silent or purely noisy recordings are rejected.

Examples:
  voicebio analyze -w weights.bin recording.wav
  voicebio analyze -w weights.bin --json recording.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadEngineConfig()
		if err != nil {
			return err
		}
		if analyzeWeightsPath != "" {
			cfg.WeightsPath = analyzeWeightsPath
		}
		if cfg.WeightsPath == "" {
			return fmt.Errorf("weights are required, use -w or set weights_path in the config file")
		}

		engine := voicebio.New(*cfg)
		defer engine.Close()
		if err := engine.Init(); err != nil {
			return err
		}
		slog.Debug("weights loaded", "path", cfg.WeightsPath)

		result, err := engine.Analyze(cmd.Context(), voicebio.Input{Path: args[0]})
		if err != nil {
			return err
		}

		if outputJSON {
			return json.NewEncoder(os.Stdout).Encode(result)
		}
		printReport(result)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeWeightsPath, "weights", "w", "", "model weights artifact")
}

func loadEngineConfig() (*voicebio.Config, error) {
	if cfgFile == "" {
		cfg := voicebio.DefaultConfig()
		return &cfg, nil
	}
	return voicebio.LoadConfig(cfgFile)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	labelStyle = lipgloss.NewStyle().Bold(true).Width(18)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)

func printReport(r *voicebio.Result) {
	fmt.Println(titleStyle.Render("Voice Analysis"))
	fmt.Println(dimStyle.Render(r.ID + "  " + r.Timestamp.Format("2006-01-02 15:04:05 MST")))
	fmt.Println()

	row := func(label, value string) {
		fmt.Println(labelStyle.Render(label) + value)
	}
	row("Emotional state", r.EmotionalState.String())
	row("Stress level", gauge(r.StressLevel))
	row("Voice quality", gauge(r.VoiceQuality))
	row("Cognitive load", gauge(r.CognitiveLoad))
	row("Respiratory rate", fmt.Sprintf("%.1f bpm", r.RespiratoryRate))
	row("Confidence", fmt.Sprintf("%.0f%%", r.Confidence*100))

	if verbose && r.Features != nil {
		f := r.Features
		fmt.Println()
		fmt.Println(titleStyle.Render("Acoustic Features"))
		row("Pitch", fmt.Sprintf("%.1f Hz (±%.1f)", f.PitchMean, f.PitchStd))
		row("Speaking rate", fmt.Sprintf("%.1f syl/s", f.SpeakingRate))
		row("Pause duration", fmt.Sprintf("%.2f s", f.PauseDuration))
		row("Jitter / shimmer", fmt.Sprintf("%.2f%% / %.2f%%", f.Jitter, f.Shimmer))
		row("HNR", fmt.Sprintf("%.1f dB", f.HNR))
		row("Centroid", fmt.Sprintf("%.0f Hz", f.SpectralCentroid))
	}
}

// gauge renders a value in [0, 1] as a small bar with its numeric form.
func gauge(v float64) string {
	const width = 20
	filled := int(v*width + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %.2f", dimStyle.Render(bar), v)
}
