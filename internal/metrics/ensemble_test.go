package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/termfolio/internal/glyphgrid"
)

func TestEnsemble(t *testing.T) {
	params := glyphgrid.DefaultParams()
	e := NewEnsemble(params, 280, 140, 30, 3, 10)
	runs, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, vals := range runs {
		if vals["peak_intensity"] <= 0 {
			t.Errorf("run %d: the sweeping pointer should light cells", i)
		}
	}

	again, err := NewEnsemble(params, 280, 140, 30, 1, 10).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for k, v := range runs[0] {
		if again[0][k] != v {
			t.Errorf("%s: same seed gave %f and %f", k, v, again[0][k])
		}
	}
}

func TestEnsembleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEnsemble(glyphgrid.DefaultParams(), 100, 100, 5, 2, 1).Run(ctx); err == nil {
		t.Error("expected an error from a canceled context")
	}
}

func TestMeanValues(t *testing.T) {
	got := MeanValues([]map[string]float64{{"a": 1, "b": 4}, {"a": 3, "b": 0}})
	if got["a"] != 2 || got["b"] != 2 {
		t.Errorf("unexpected means %v", got)
	}
	if len(MeanValues(nil)) != 0 {
		t.Error("no runs should give no values")
	}
}
