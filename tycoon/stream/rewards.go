package stream

import "math"

// Telemetry is the end-of-session measurement set the reward math reads.
type Telemetry struct {
	TypeID         string  `json:"typeId"`
	Duration       float64 `json:"duration"` // seconds actually streamed
	TargetDuration float64 `json:"targetDuration"`
	AverageViewers float64 `json:"averageViewers"`
	PeakViewers    int     `json:"peakViewers"`
	EndViewers     int     `json:"endViewers"`
	Exhausted      bool    `json:"exhausted"`
}

// Rewards is the computed outcome of a finished session. Money and
// subscribers are deltas to apply; reputation may be negative.
type Rewards struct {
	Money          int64   `json:"money"`
	Subscribers    int     `json:"subscribers"`
	Reputation     int     `json:"reputation"`
	DurationFactor float64 `json:"durationFactor"`
}

// Churn is the post-session subscriber loss from a cut-short stream.
type Churn struct {
	Lost    int     `json:"lost"`
	Percent float64 `json:"percent"`
}

// DurationFactor measures how much of the planned session was delivered,
// clamped to [0, 1].
func DurationFactor(duration, target float64) float64 {
	if target <= 0 {
		return 0
	}
	f := duration / target
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// CalculateRewards converts session telemetry into money, subscriber and
// reputation deltas. Pure: same inputs, same outputs.
func CalculateRewards(cfg *Config, t Telemetry, subscribers, reputation int, moneyMultiplier float64) Rewards {
	df := DurationFactor(t.Duration, t.TargetDuration)
	minutes := t.Duration / 60

	money := (float64(subscribers)*cfg.SubscriberValue + t.AverageViewers*cfg.ViewerBonusRate) * minutes * df
	money *= moneyMultiplier

	repMult := 0.5 + float64(reputation)/100
	subs := (t.AverageViewers/cfg.SubscriberDivisor + float64(t.PeakViewers)*cfg.PeakBonusRate) * df * repMult

	rep := 0
	switch {
	case df >= 0.9:
		rep = 3
	case df >= 0.7:
		rep = 1
	case df < 0.3:
		rep = -5
	case df < 0.5:
		rep = -2
	}
	if t.PeakViewers > cfg.RetentionBonusMinPeak &&
		float64(t.EndViewers)/float64(t.PeakViewers) > cfg.RetentionBonusRatio {
		rep += 2
	}

	return Rewards{
		Money:          int64(math.Floor(money)),
		Subscribers:    int(math.Floor(subs)),
		Reputation:     rep,
		DurationFactor: df,
	}
}

// CalculateChurn decides how many subscribers walk after a disappointing
// session. Only large channels churn, and reputation mitigates the loss.
func CalculateChurn(cfg ChurnConfig, t Telemetry, subscribers, reputation int) Churn {
	df := DurationFactor(t.Duration, t.TargetDuration)
	if subscribers < cfg.MinSubscribers {
		return Churn{}
	}
	if df >= cfg.Threshold && !t.Exhausted {
		return Churn{}
	}
	pct := cfg.BasePercent - float64(reputation)*cfg.ReputationMitigation
	if pct < 0 {
		pct = 0
	}
	if pct > cfg.MaxPercentCap {
		pct = cfg.MaxPercentCap
	}
	return Churn{
		Lost:    int(math.Floor(float64(subscribers) * pct)),
		Percent: pct,
	}
}
