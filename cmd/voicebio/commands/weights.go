package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Thepluscode/medimind-voice/pkg/voicebio"
)

var (
	weightsOutPath string
	weightsSeed    uint64
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Manage model weight artifacts",
}

var weightsGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a placeholder weights artifact",
	Long: `Generate a deterministic placeholder weights artifact from a seed.

The parameters are scaled random draws, not trained values. The same
seed always produces the same artifact, which makes results
reproducible across machines.

Example:
  voicebio weights gen -o weights.bin --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if weightsOutPath == "" {
			return fmt.Errorf("output path is required, use -o")
		}
		w := voicebio.GenerateWeights(weightsSeed)
		if err := voicebio.WriteWeightsFile(weightsOutPath, w); err != nil {
			return err
		}
		fmt.Printf("wrote %s (seed %d)\n", weightsOutPath, weightsSeed)
		return nil
	},
}

var weightsInfoCmd = &cobra.Command{
	Use:   "info <weights.bin>",
	Short: "Inspect a weights artifact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := voicebio.ReadWeightsFile(args[0])
		if err != nil {
			return err
		}

		info := map[string]any{
			"version": w.Version,
			"seed":    w.Seed,
			"conv1":   fmt.Sprintf("%dx%dx%d", w.Conv1.Out, w.Conv1.In, w.Conv1.Kernel),
			"conv2":   fmt.Sprintf("%dx%dx%d", w.Conv2.Out, w.Conv2.In, w.Conv2.Kernel),
			"dense1":  fmt.Sprintf("%dx%d", w.Dense1.Out, w.Dense1.In),
			"dense2":  fmt.Sprintf("%dx%d", w.Dense2.Out, w.Dense2.In),
			"params": len(w.Conv1.W) + len(w.Conv1.B) + len(w.Conv2.W) + len(w.Conv2.B) +
				len(w.Dense1.W) + len(w.Dense1.B) + len(w.Dense2.W) + len(w.Dense2.B),
		}
		if outputJSON {
			return json.NewEncoder(os.Stdout).Encode(info)
		}
		fmt.Printf("version: %d\nseed:    %d\nconv1:   %s\nconv2:   %s\ndense1:  %s\ndense2:  %s\nparams:  %d\n",
			info["version"], info["seed"], info["conv1"], info["conv2"], info["dense1"], info["dense2"], info["params"])
		return nil
	},
}

func init() {
	weightsGenCmd.Flags().StringVarP(&weightsOutPath, "output", "o", "", "output artifact path")
	weightsGenCmd.Flags().Uint64Var(&weightsSeed, "seed", 42, "generator seed")

	weightsCmd.AddCommand(weightsGenCmd)
	weightsCmd.AddCommand(weightsInfoCmd)
}
