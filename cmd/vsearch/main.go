// Package main provides the vsearch CLI entry point.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vsearch/internal/config"
	"vsearch/internal/search"
)

var (
	modelPath string
	seed      int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vsearch",
	Short: "Guided visual search trial simulator",
	Long: `vsearch simulates single trials of human visual search: an artificial
observer allocates attention over a display of items, accumulates
match/mismatch evidence against a target template, and reports target
found or target absent together with behavioral statistics.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "model parameter yaml (built-in defaults when empty)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 12345, "random seed")
}

func loadParams() (search.Params, error) {
	if modelPath == "" {
		return search.DefaultParams().Normalize(), nil
	}
	return config.LoadModel(modelPath)
}

func marshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}

func writeOutput(path string, b []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(b, '\n'))
		return err
	}
	return os.WriteFile(path, b, 0644)
}
