package stream

import (
	"math/rand"
	"testing"
)

func TestStartingViewersFloor(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	// worst case: no base, no subs, zero reputation
	if got := StartingViewers(&cfg, rng, 0, 0, 0, 1, 1); got < 1 {
		t.Fatalf("StartingViewers = %d, want at least 1", got)
	}
}

func TestStartingViewersScaling(t *testing.T) {
	cfg := DefaultConfig()

	avg := func(subs, rep int, skill, mult float64) float64 {
		rng := rand.New(rand.NewSource(42))
		total := 0
		for i := 0; i < 500; i++ {
			total += StartingViewers(&cfg, rng, 10, subs, rep, skill, mult)
		}
		return float64(total) / 500
	}

	base := avg(0, 50, 1, 1)
	if withSubs := avg(200, 50, 1, 1); withSubs <= base {
		t.Errorf("subscribers should raise openings: %v vs %v", withSubs, base)
	}
	if withRep := avg(0, 100, 1, 1); withRep <= base {
		t.Errorf("reputation should raise openings: %v vs %v", withRep, base)
	}
	if withSkill := avg(0, 50, 3, 1); withSkill <= base {
		t.Errorf("skill should raise openings: %v vs %v", withSkill, base)
	}
	if boosted := avg(0, 50, 1, 1.5); boosted <= base {
		t.Errorf("multiplier should raise openings: %v vs %v", boosted, base)
	}
}

func TestViewerModelTracksPeakAndAverage(t *testing.T) {
	cfg := DefaultConfig()
	m := NewViewerModel(&cfg, rand.New(rand.NewSource(1)))
	m.Reset(20)
	if m.Peak() != 20 || m.Average() != 20 {
		t.Fatalf("fresh model peak=%d avg=%v, want 20/20", m.Peak(), m.Average())
	}
	m.Add(30)
	if m.Current() != 50 || m.Peak() != 50 {
		t.Fatalf("after Add: current=%d peak=%d, want 50/50", m.Current(), m.Peak())
	}
	m.Add(-49)
	if m.Current() != 1 {
		t.Fatalf("current = %d, want 1", m.Current())
	}
	if m.Peak() != 50 {
		t.Fatalf("peak = %d, must not decay", m.Peak())
	}
	if avg := m.Average(); avg <= 1 || avg >= 50 {
		t.Fatalf("average = %v, want between the extremes", avg)
	}
}

func TestViewerModelAddFloor(t *testing.T) {
	cfg := DefaultConfig()
	m := NewViewerModel(&cfg, rand.New(rand.NewSource(1)))
	m.Reset(5)
	m.Add(-100)
	if m.Current() != 0 {
		t.Fatalf("current = %d, want floor at 0", m.Current())
	}
}

func TestViewerTickNeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	m := NewViewerModel(&cfg, rand.New(rand.NewSource(3)))
	m.Reset(2)
	for i := 0; i < 500; i++ {
		m.Tick(0, 1, 0, 0)
		if m.Current() < 0 {
			t.Fatalf("current dropped to %d at tick %d", m.Current(), i)
		}
	}
}

func TestViewerMomentumGrowth(t *testing.T) {
	cfg := DefaultConfig()

	run := func(momentum float64) int {
		m := NewViewerModel(&cfg, rand.New(rand.NewSource(9)))
		m.Reset(30)
		for i := 0; i < 300; i++ {
			m.Tick(80, 3, 0, momentum)
		}
		return m.Peak()
	}

	calm := run(0)
	hyped := run(cfg.Chat.MomentumCap)
	if hyped <= calm {
		t.Fatalf("momentum should grow the audience: hyped peak %d vs calm %d", hyped, calm)
	}
}

func TestRandRound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := randRound(rng, 3); got != 3 {
		t.Fatalf("randRound(3) = %d, want exactly 3", got)
	}
	total := 0
	for i := 0; i < 10000; i++ {
		total += randRound(rng, 0.25)
	}
	// expectation 2500, allow generous slack
	if total < 2200 || total > 2800 {
		t.Fatalf("randRound(0.25) summed to %d over 10000 trials, want near 2500", total)
	}
}
