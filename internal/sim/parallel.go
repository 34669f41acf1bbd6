package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/limbshift/internal/engine"
	"github.com/san-kum/limbshift/internal/metrics"
)

// EngineFactory builds a fresh engine for one run. Engines are not shared
// between goroutines.
type EngineFactory func() (*engine.Engine, error)

// Ensemble runs several reaches concurrently, each on its own engine and its
// own metric set.
type Ensemble struct {
	newEngine  EngineFactory
	newMetrics func() []metrics.Metric
}

func NewEnsemble(newEngine EngineFactory, newMetrics func() []metrics.Metric) *Ensemble {
	if newMetrics == nil {
		newMetrics = metrics.Defaults
	}
	return &Ensemble{newEngine: newEngine, newMetrics: newMetrics}
}

// Run returns one result per reach, in order. The first error wins.
func (e *Ensemble) Run(ctx context.Context, reaches []Reach, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(reaches))
	errs := make([]error, len(reaches))

	var wg sync.WaitGroup
	for i := range reaches {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			eng, err := e.newEngine()
			if err != nil {
				errs[idx] = err
				return
			}

			sim := New(eng)
			for _, m := range e.newMetrics() {
				sim.AddMetric(m)
			}

			results[idx], errs[idx] = sim.Run(ctx, reaches[idx], cfg)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("reach %d (%s): %w", i, reaches[i].Selection, err)
		}
	}

	return results, nil
}
