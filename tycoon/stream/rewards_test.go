package stream

import "testing"

func TestDurationFactor(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		target   float64
		want     float64
	}{
		{name: "full run", duration: 60, target: 60, want: 1},
		{name: "half run", duration: 30, target: 60, want: 0.5},
		{name: "overtime capped", duration: 90, target: 60, want: 1},
		{name: "zero target", duration: 30, target: 0, want: 0},
		{name: "negative duration", duration: -5, target: 60, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationFactor(tt.duration, tt.target); got != tt.want {
				t.Errorf("DurationFactor(%v, %v) = %v, want %v", tt.duration, tt.target, got, tt.want)
			}
		})
	}
}

func TestCalculateRewardsReputationTiers(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		duration float64
		wantRep  int
	}{
		{name: "full run", duration: 100, wantRep: 3},
		{name: "ninety percent", duration: 90, wantRep: 3},
		{name: "seventy percent", duration: 70, wantRep: 1},
		{name: "sixty percent neutral", duration: 60, wantRep: 0},
		{name: "forty percent", duration: 40, wantRep: -2},
		{name: "quit early", duration: 20, wantRep: -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tel := Telemetry{Duration: tt.duration, TargetDuration: 100}
			got := CalculateRewards(&cfg, tel, 0, 50, 1)
			if got.Reputation != tt.wantRep {
				t.Errorf("Reputation = %d, want %d", got.Reputation, tt.wantRep)
			}
		})
	}
}

func TestCalculateRewardsRetentionBonus(t *testing.T) {
	cfg := DefaultConfig()
	tel := Telemetry{
		Duration:       100,
		TargetDuration: 100,
		PeakViewers:    30,
		EndViewers:     28,
	}
	got := CalculateRewards(&cfg, tel, 0, 50, 1)
	if got.Reputation != 5 { // 3 for the full run, 2 for keeping the crowd
		t.Fatalf("Reputation = %d, want 5", got.Reputation)
	}

	// small streams never earn the retention bonus
	tel.PeakViewers = 10
	tel.EndViewers = 10
	got = CalculateRewards(&cfg, tel, 0, 50, 1)
	if got.Reputation != 3 {
		t.Fatalf("Reputation = %d, want 3 without retention bonus", got.Reputation)
	}
}

func TestCalculateRewardsNoAudienceNoPay(t *testing.T) {
	cfg := DefaultConfig()
	tel := Telemetry{Duration: 100, TargetDuration: 100}
	got := CalculateRewards(&cfg, tel, 0, 50, 1)
	if got.Money != 0 || got.Subscribers != 0 {
		t.Fatalf("empty stream paid out: %+v", got)
	}
	if got.Reputation != 3 {
		t.Fatalf("a completed stream still builds reputation, got %d", got.Reputation)
	}
}

func TestCalculateRewardsScalesWithEverything(t *testing.T) {
	cfg := DefaultConfig()
	tel := Telemetry{
		Duration:       120,
		TargetDuration: 120,
		AverageViewers: 60,
		PeakViewers:    90,
		EndViewers:     80,
	}
	base := CalculateRewards(&cfg, tel, 100, 50, 1)
	if base.Money <= 0 || base.Subscribers <= 0 {
		t.Fatalf("active stream should pay: %+v", base)
	}

	boosted := CalculateRewards(&cfg, tel, 100, 50, 2)
	if boosted.Money <= base.Money {
		t.Errorf("money multiplier had no effect: %d vs %d", boosted.Money, base.Money)
	}

	higherRep := CalculateRewards(&cfg, tel, 100, 100, 1)
	if higherRep.Subscribers <= base.Subscribers {
		t.Errorf("reputation should lift conversions: %d vs %d", higherRep.Subscribers, base.Subscribers)
	}

	short := tel
	short.Duration = 30
	partial := CalculateRewards(&cfg, short, 100, 50, 1)
	if partial.Money >= base.Money {
		t.Errorf("short stream should pay less: %d vs %d", partial.Money, base.Money)
	}
}

func TestCalculateChurn(t *testing.T) {
	cfg := DefaultConfig().Churn
	tests := []struct {
		name        string
		tel         Telemetry
		subscribers int
		reputation  int
		wantLost    bool
	}{
		{
			name:        "good stream no churn",
			tel:         Telemetry{Duration: 90, TargetDuration: 100},
			subscribers: 100, reputation: 50,
		},
		{
			name:        "short stream churns",
			tel:         Telemetry{Duration: 20, TargetDuration: 100},
			subscribers: 100, reputation: 50,
			wantLost: true,
		},
		{
			name:        "exhaustion churns even at full factor",
			tel:         Telemetry{Duration: 100, TargetDuration: 100, Exhausted: true},
			subscribers: 100, reputation: 50,
			wantLost: true,
		},
		{
			name:        "small channels immune",
			tel:         Telemetry{Duration: 20, TargetDuration: 100},
			subscribers: 19, reputation: 50,
		},
		{
			name:        "high reputation shields",
			tel:         Telemetry{Duration: 20, TargetDuration: 100},
			subscribers: 100, reputation: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateChurn(cfg, tt.tel, tt.subscribers, tt.reputation)
			if tt.wantLost && got.Lost <= 0 {
				t.Errorf("expected churn, got %+v", got)
			}
			if !tt.wantLost && got.Lost != 0 {
				t.Errorf("expected no churn, got %+v", got)
			}
		})
	}
}

func TestChurnCapped(t *testing.T) {
	cfg := DefaultConfig().Churn
	tel := Telemetry{Duration: 1, TargetDuration: 100}
	got := CalculateChurn(cfg, tel, 1000, 0)
	if got.Percent > cfg.MaxPercentCap {
		t.Fatalf("Percent = %v, above cap %v", got.Percent, cfg.MaxPercentCap)
	}
	if got.Lost > int(float64(1000)*cfg.MaxPercentCap) {
		t.Fatalf("Lost = %d, above cap", got.Lost)
	}
}
