package stream

import (
	"math"
	"math/rand"
)

// departureShare is the fraction of the non-retained audience that walks
// each second.
const departureShare = 0.1

// ViewerModel tracks the live audience of one session: current count,
// peak, and an exponential moving average that stands in for "average
// viewers" without storing the whole series.
type ViewerModel struct {
	cfg *Config
	rng *rand.Rand

	current int
	peak    int
	ema     float64
}

func NewViewerModel(cfg *Config, rng *rand.Rand) *ViewerModel {
	return &ViewerModel{cfg: cfg, rng: rng}
}

// StartingViewers computes the opening audience for a session. Subscribers
// pull a fraction of themselves in, reputation and the carrying skill scale
// the pull, and a random factor keeps openings from being identical.
func StartingViewers(cfg *Config, rng *rand.Rand, base, subscribers, reputation int, skill, multiplier float64) int {
	v := float64(base) + math.Floor(float64(subscribers)*cfg.SubscriberPullRate)
	v *= 0.5 + float64(reputation)/100*1.5
	v *= 0.7 + skill*0.3
	v *= multiplier
	v *= 0.8 + rng.Float64()*0.4
	n := int(math.Floor(v))
	if n < 1 {
		n = 1
	}
	return n
}

// Reset primes the model for a new session.
func (m *ViewerModel) Reset(starting int) {
	m.current = starting
	m.peak = starting
	m.ema = float64(starting)
}

func (m *ViewerModel) Current() int { return m.current }
func (m *ViewerModel) Peak() int    { return m.peak }

// Average reports the running EMA of the audience.
func (m *ViewerModel) Average() float64 { return m.ema }

// Add injects viewers from outside the organic model (raids, viral
// moments). Negative deltas drop viewers but never below zero.
func (m *ViewerModel) Add(delta int) {
	m.current += delta
	if m.current < 0 {
		m.current = 0
	}
	m.track()
}

// Tick advances one second of audience dynamics: organic departures from
// the retention model, momentum-driven join bursts, and a small jitter.
func (m *ViewerModel) Tick(reputation int, skill, retentionBonus, momentum float64) {
	retention := m.cfg.RetentionBase +
		float64(reputation)*m.cfg.RetentionReputationBonus +
		skill*m.cfg.RetentionSkillBonus +
		retentionBonus
	if retention > m.cfg.RetentionCeiling {
		retention = m.cfg.RetentionCeiling
	}
	if retention < 0 {
		retention = 0
	}

	leaving := randRound(m.rng, float64(m.current)*(1-retention)*departureShare)
	m.current -= leaving

	if momentum > m.cfg.MomentumThreshold {
		chance := m.cfg.GrowthMomentum * momentum / 10
		if m.rng.Float64() < chance {
			m.current += 1 + m.rng.Intn(3)
		}
	}

	if m.rng.Float64() < 0.2 {
		if m.rng.Float64() < 0.5 {
			m.current++
		} else {
			m.current--
		}
	}

	if m.current < 0 {
		m.current = 0
	}
	m.track()
}

func (m *ViewerModel) track() {
	if m.current > m.peak {
		m.peak = m.current
	}
	a := m.cfg.EMAAlpha
	m.ema = a*float64(m.current) + (1-a)*m.ema
}

// randRound rounds x stochastically so fractional expectations still
// materialize over time for tiny audiences.
func randRound(rng *rand.Rand, x float64) int {
	n := int(math.Floor(x))
	if rng.Float64() < x-float64(n) {
		n++
	}
	return n
}
