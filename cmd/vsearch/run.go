package main

import (
	"github.com/spf13/cobra"

	"vsearch/internal/config"
	"vsearch/internal/search"
	"vsearch/internal/util"
)

var (
	runOut     string
	runLog     bool
	runCompare bool
)

func init() {
	runCmd.Flags().StringVar(&runOut, "out", "-", "output file (- for stdout)")
	runCmd.Flags().BoolVar(&runLog, "log", false, "include the trial message log")
	runCmd.Flags().BoolVar(&runCompare, "compare", false, "include the item/template similarity report")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <trial.yaml>",
	Short: "Run one search trial and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	params, err := loadParams()
	if err != nil {
		return err
	}
	tc, err := config.LoadTrial(args[0])
	if err != nil {
		return err
	}

	rng := util.New(seed)
	trial, err := search.NewTrial(params, rng, tc.TargetSpec(), tc.DistractorGroups(), tc.RelevantOverride())
	if err != nil {
		return err
	}
	trial.Label = tc.Label

	locations := params.Layout().Locations(rng, params.CartesianGrid)
	res, err := trial.Run(locations)
	if err != nil {
		return err
	}

	payload := map[string]any{"result": res, "seed": seed}
	if runLog {
		payload["messages"] = trial.Messages()
	}
	if runCompare {
		payload["comparison"] = trial.ComparisonReport()
	}
	return writeOutput(runOut, marshalPretty(payload))
}
