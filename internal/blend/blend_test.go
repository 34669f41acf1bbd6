package blend

import (
	"math"
	"testing"

	"github.com/san-kum/limbshift/internal/geom"
)

const eps = 1e-12

func TestBlend_Example(t *testing.T) {
	center := geom.Vec3{0, 0, 0}
	target := geom.Vec3{10, 0, 0}
	real := geom.Vec3{5, 0, 0}
	anchor := geom.Vec3{0, 10, 0}

	got, progress := Blend(real, anchor, target, center, DefaultMinTargetDistance)
	if math.Abs(progress-0.5) > eps {
		t.Errorf("progress = %v, want 0.5", progress)
	}
	want := geom.Vec3{2.5, 5, 0}
	if !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("Blend = %v, want %v", got, want)
	}
}

func TestBlend_AtCenter(t *testing.T) {
	center := geom.Vec3{1, 2, 3}
	got, progress := Blend(center, geom.Vec3{9, 9, 9}, geom.Vec3{4, 2, 3}, center, DefaultMinTargetDistance)
	if progress != 0 {
		t.Errorf("progress = %v, want 0", progress)
	}
	if got != center {
		t.Errorf("Blend at center = %v, want %v", got, center)
	}
}

func TestBlend_PastTarget(t *testing.T) {
	center := geom.Vec3{0, 0, 0}
	target := geom.Vec3{0, 0, 2}
	anchor := geom.Vec3{1, 0, 2}

	for _, real := range []geom.Vec3{{0, 0, 2}, {0, 0, 3}, {0, 5, 0}} {
		got, progress := Blend(real, anchor, target, center, DefaultMinTargetDistance)
		if progress != 1 {
			t.Errorf("progress(%v) = %v, want 1", real, progress)
		}
		if !got.ApproxEqualThreshold(anchor, eps) {
			t.Errorf("Blend(%v) = %v, want anchor %v", real, got, anchor)
		}
	}
}

func TestProgress_Monotonic(t *testing.T) {
	center := geom.Vec3{0, 0, 0}
	target := geom.Vec3{0.3, 0, 0.4}
	dir := geom.Vec3{0.6, 0, 0.8}

	prev := -1.0
	for i := 0; i <= 100; i++ {
		real := dir.Mul(float64(i) * 0.01)
		p := Progress(real, target, center, DefaultMinTargetDistance)
		if p < 0 || p > 1 {
			t.Fatalf("progress %v out of [0,1] at step %d", p, i)
		}
		if p < prev {
			t.Fatalf("progress decreased at step %d: %v < %v", i, p, prev)
		}
		prev = p
	}
	if prev != 1 {
		t.Errorf("final progress = %v, want 1", prev)
	}
}

func TestProgress_Degenerate(t *testing.T) {
	center := geom.Vec3{1, 1, 1}
	tests := []struct {
		name    string
		target  geom.Vec3
		minDist float64
	}{
		{"target at center", center, DefaultMinTargetDistance},
		{"target within guard", geom.Vec3{1, 1, 1 + 1e-9}, DefaultMinTargetDistance},
		{"zero guard", center, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			real := geom.Vec3{2, 2, 2}
			p := Progress(real, tt.target, center, tt.minDist)
			if p != 0 {
				t.Errorf("progress = %v, want 0", p)
			}
			got, _ := Blend(real, geom.Vec3{5, 5, 5}, tt.target, center, tt.minDist)
			if got != real {
				t.Errorf("Blend = %v, want real %v", got, real)
			}
		})
	}
}

func TestBlend_NonFiniteFallsBack(t *testing.T) {
	real := geom.Vec3{1, 0, 0}
	anchor := geom.Vec3{math.Inf(1), 0, 0}

	got, p := Blend(real, anchor, geom.Vec3{2, 0, 0}, geom.Vec3{0, 0, 0}, DefaultMinTargetDistance)
	if got != real || p != 0 {
		t.Errorf("Blend = %v (%v), want pass-through", got, p)
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{Idle, "idle"},
		{Tracking, "tracking"},
		{Disabled, "disabled"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("%d.String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}
