package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"vsearch/internal/config"
	"vsearch/internal/search"
	"vsearch/internal/store"
	"vsearch/internal/util"
)

var (
	batchN       int
	batchOut     string
	batchDB      string
	batchWorkers int
)

func init() {
	batchCmd.Flags().IntVarP(&batchN, "runs", "n", 100, "number of trials to simulate")
	batchCmd.Flags().StringVar(&batchOut, "out", "-", "summary output file (- for stdout)")
	batchCmd.Flags().StringVar(&batchDB, "db", "", "record per-run results into this SQLite database")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 8, "concurrent trial workers")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <trial.yaml>",
	Short: "Run many seeded trials of one condition and summarize",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	params, err := loadParams()
	if err != nil {
		return err
	}
	tc, err := config.LoadTrial(args[0])
	if err != nil {
		return err
	}
	condition := tc.Label
	if condition == "" {
		condition = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	var db *store.Store
	if batchDB != "" {
		db, err = store.Open(batchDB)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	type stat struct {
		Found             int
		Correct           int
		SumIterations     int
		SumAttended       int
		SumEyeMovements   int
		SumAutoRejections int
	}
	var st stat
	var firstErr error
	var mu sync.Mutex

	workers := batchWorkers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, batchN)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				runSeed := seed + int64(workerID)*7919 + int64(i)
				rng := util.New(runSeed)
				trial, err := search.NewTrial(params, rng, tc.TargetSpec(), tc.DistractorGroups(), tc.RelevantOverride())
				if err == nil {
					locations := params.Layout().Locations(rng, params.CartesianGrid)
					var res search.Result
					res, err = trial.Run(locations)
					if err == nil {
						mu.Lock()
						if res.Found {
							st.Found++
						}
						if res.Correct {
							st.Correct++
						}
						st.SumIterations += res.Iterations
						st.SumAttended += res.NumAttended
						st.SumEyeMovements += res.NumEyeMovements
						st.SumAutoRejections += res.NumAutoRejections
						mu.Unlock()
						if db != nil {
							_, err = db.InsertRun(condition, runSeed, res)
						}
					}
				}
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}(w)
	}
	for i := 0; i < batchN; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	n := float64(batchN)
	summary := map[string]any{
		"condition":           condition,
		"runs":                batchN,
		"found_rate":          float64(st.Found) / n,
		"accuracy":            float64(st.Correct) / n,
		"avg_iterations":      float64(st.SumIterations) / n,
		"avg_attended":        float64(st.SumAttended) / n,
		"avg_eye_movements":   float64(st.SumEyeMovements) / n,
		"avg_auto_rejections": float64(st.SumAutoRejections) / n,
	}
	if db != nil {
		recorded, err := db.Summarize(condition)
		if err != nil {
			return err
		}
		summary["recorded"] = recorded
	}
	if err := writeOutput(batchOut, marshalPretty(summary)); err != nil {
		return err
	}
	if batchOut != "-" && batchOut != "" {
		fmt.Printf("Batch %d done -> %s\n", batchN, filepath.Base(batchOut))
	}
	return nil
}
