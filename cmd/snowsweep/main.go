package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"snowfall/internal/scene"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type paramSet struct {
	meltThreshold float64
	spawnInterval int
	erodeAmount   float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("melt_threshold=%.1f spawn_interval=%d erode_amount=%.2f", p.meltThreshold, p.spawnInterval, p.erodeAmount)
}

type scenarioResult struct {
	params paramSet
	report scene.RunReport
}

// better ranks runs that melt sooner and lap more often first.
func better(a, b scene.RunReport) bool {
	if a.Laps != b.Laps {
		return a.Laps > b.Laps
	}
	am, bm := a.FirstMeltStep, b.FirstMeltStep
	if (am == 0) != (bm == 0) {
		return am != 0
	}
	if am != bm {
		return am < bm
	}
	return a.PeakMean > b.PeakMean
}

func main() {
	steps := flag.Int("steps", 6000, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("width", 640, "viewport width for sweep runs")
	height := flag.Int("height", 360, "viewport height for sweep runs")
	seed := flag.Int64("seed", 1337, "seed used for deterministic runs")
	top := flag.Int("top", 5, "number of results to print")
	manualOnly := flag.Bool("manual", false, "skip sweeping and only evaluate provided overrides")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	cfg := scene.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Seed = *seed
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.Fatalf("override %q is not in key=value form", kv)
		}
		if err := scene.ApplyOverride(&cfg, key, value); err != nil {
			log.Fatal(err)
		}
	}

	baseline := scene.MeasureRun(cfg, *steps)
	fmt.Printf("Baseline: %s\n", baseline)
	if *manualOnly {
		fmt.Println("Manual evaluation requested; skipping sweep.")
		return
	}

	var sets []paramSet
	for _, melt := range []float64{4, 8, 12, 20} {
		for _, spawn := range []int{10, 30, 60} {
			for _, erode := range []float64{2, 5, 10} {
				sets = append(sets, paramSet{meltThreshold: melt, spawnInterval: spawn, erodeAmount: erode})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(cfg, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return better(all[i].report, all[j].report) })

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(all)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		fmt.Printf("%2d) %s params=%s\n", i+1, all[i].report, all[i].params)
	}
}

func runScenario(base scene.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.MeltThreshold = params.meltThreshold
	cfg.Params.SpawnInterval = params.spawnInterval
	cfg.Params.ErodeAmount = params.erodeAmount
	return scenarioResult{params: params, report: scene.MeasureRun(cfg, steps)}
}
