package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/layout"
	"github.com/san-kum/limbshift/internal/metrics"
	"github.com/san-kum/limbshift/internal/trial"
)

func defaultFactory() (*engine.Engine, error) {
	return engine.New(engine.DefaultConfig(), layout.Default())
}

func TestEnsembleRun(t *testing.T) {
	congruent := Reach{
		Selection: trial.Selection{Hand: trial.HandMM, Elbow: trial.ElbowMMMP},
		Trial:     trial.Trial{Condition: trial.Congruent},
	}
	reaches := []Reach{shortenReach(), congruent, shortenReach()}

	cfg := DefaultConfig()
	cfg.Duration = 0.5

	results, err := NewEnsemble(defaultFactory, nil).Run(context.Background(), reaches, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != len(reaches) {
		t.Fatalf("expected %d results, got %d", len(reaches), len(results))
	}

	if got := results[1].Metrics["peak_hand_offset"]; got != 0 {
		t.Errorf("congruent reach should not displace the hand, got %f", got)
	}
	if results[0].Metrics["peak_hand_offset"] <= 0 {
		t.Error("shortened reach should displace the hand")
	}
	for name, v := range results[0].Metrics {
		if results[2].Metrics[name] != v {
			t.Errorf("%s differs between identical reaches: %f vs %f", name, v, results[2].Metrics[name])
		}
	}

	// matches a sequential run
	seq := New(newEngine(t, trial.Right))
	for _, m := range metrics.Defaults() {
		seq.AddMetric(m)
	}
	want, err := seq.Run(context.Background(), shortenReach(), cfg)
	if err != nil {
		t.Fatalf("sequential run failed: %v", err)
	}
	if want.Metrics["peak_hand_offset"] != results[0].Metrics["peak_hand_offset"] {
		t.Errorf("ensemble %f != sequential %f",
			results[0].Metrics["peak_hand_offset"], want.Metrics["peak_hand_offset"])
	}
}

func TestEnsembleRun_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	failing := func() (*engine.Engine, error) { return nil, boom }

	_, err := NewEnsemble(failing, nil).Run(context.Background(), []Reach{shortenReach()}, DefaultConfig())
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped factory error, got %v", err)
	}
}

func TestEnsembleRun_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0

	if _, err := NewEnsemble(defaultFactory, nil).Run(context.Background(), []Reach{shortenReach()}, cfg); err == nil {
		t.Error("expected error for zero dt")
	}
}
