package main

import (
	"testing"

	"snowfall/internal/scene"
)

func TestBetterRanking(t *testing.T) {
	cases := []struct {
		name string
		a, b scene.RunReport
		want bool
	}{
		{"more laps wins", scene.RunReport{Laps: 2}, scene.RunReport{Laps: 1, FirstMeltStep: 5}, true},
		{"melting beats never melting", scene.RunReport{FirstMeltStep: 900}, scene.RunReport{}, true},
		{"earlier melt wins", scene.RunReport{FirstMeltStep: 400}, scene.RunReport{FirstMeltStep: 500}, true},
		{"deeper peak breaks ties", scene.RunReport{FirstMeltStep: 400, PeakMean: 3}, scene.RunReport{FirstMeltStep: 400, PeakMean: 4}, false},
	}
	for _, tc := range cases {
		if got := better(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: better = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestKVList(t *testing.T) {
	var l kvList
	_ = l.Set("melt_threshold=4")
	_ = l.Set("seed=9")
	if l.String() != "melt_threshold=4,seed=9" {
		t.Fatalf("String() = %q", l.String())
	}
}

func TestRunScenarioAppliesParams(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.Width, cfg.Height = 160, 90
	res := runScenario(cfg, paramSet{meltThreshold: 1, spawnInterval: 5, erodeAmount: 2}, 300)
	if res.report.StepsSimulated != 300 {
		t.Fatalf("steps simulated = %d", res.report.StepsSimulated)
	}
	if res.report.Stats.Spawned != 300/5 {
		t.Fatalf("spawned = %d, want %d", res.report.Stats.Spawned, 300/5)
	}
}
