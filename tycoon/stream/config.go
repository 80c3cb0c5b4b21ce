// Package stream implements the live session simulation: the tick-driven
// state machine, viewer dynamics, chat momentum, random events and the
// end-of-session reward math.
package stream

import "github.com/kirari-dev/streamtycoon/tycoon/economy"

// TypeConfig defines one selectable stream category.
type TypeConfig struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	Cost        int64   `toml:"cost"`
	EnergyCost  float64 `toml:"energy_cost"`
	BaseViewers int     `toml:"base_viewers"`
	Unlocked    bool    `toml:"unlocked"`
	UnlockAt    int     `toml:"unlock_at"` // subscriber threshold, ignored when Unlocked
}

// ChurnConfig tunes post-stream subscriber loss.
type ChurnConfig struct {
	MinSubscribers       int     `toml:"min_subscribers"`
	Threshold            float64 `toml:"threshold"` // duration factor below which churn applies
	BasePercent          float64 `toml:"base_percent"`
	ReputationMitigation float64 `toml:"reputation_mitigation"`
	MaxPercentCap        float64 `toml:"max_percent_cap"`
}

// ChatConfig tunes the synthetic chat cadence and momentum.
type ChatConfig struct {
	DecayRate         float64 `toml:"decay_rate"`    // momentum multiplier per elapsed second
	MomentumCap       float64 `toml:"momentum_cap"`
	BaseInterval      float64 `toml:"base_interval"` // seconds between messages at zero viewers
	MinInterval       float64 `toml:"min_interval"`
	IntervalPerViewer float64 `toml:"interval_per_viewer"` // interval reduction per current viewer
	BurstCount        int     `toml:"burst_count"`         // messages fired right after going live
	EmoteChance       float64 `toml:"emote_chance"`
	ContextualChance  float64 `toml:"contextual_chance"`
}

// Config carries every tunable the session simulation reads. Treated as
// read-only by the engines; the differing constants across the original's
// revisions live here, not in code.
type Config struct {
	MinDuration float64      `toml:"min_duration"`
	MaxDuration float64      `toml:"max_duration"`
	Types       []TypeConfig `toml:"types"`

	// Starting viewers.
	SubscriberPullRate float64 `toml:"subscriber_pull_rate"` // fraction of subscribers that shows up

	// Economy rates.
	SubscriberValue    float64 `toml:"subscriber_value"`
	ViewerBonusRate    float64 `toml:"viewer_bonus_rate"`
	SubscriberDivisor  float64 `toml:"subscriber_divisor"` // avg viewers per earned subscriber
	PeakBonusRate      float64 `toml:"peak_bonus_rate"`
	DonationChance     float64 `toml:"donation_chance"` // per viewer per second
	DonationMin        int64   `toml:"donation_min"`
	DonationMax        int64   `toml:"donation_max"`
	LiveSubscriberRate float64 `toml:"live_subscriber_rate"`

	// Viewer retention and growth.
	RetentionBase            float64 `toml:"retention_base"`
	RetentionReputationBonus float64 `toml:"retention_reputation_bonus"`
	RetentionSkillBonus      float64 `toml:"retention_skill_bonus"`
	RetentionCeiling         float64 `toml:"retention_ceiling"`
	GrowthMomentum           float64 `toml:"growth_momentum"`
	MomentumThreshold        float64 `toml:"momentum_threshold"`
	EMAAlpha                 float64 `toml:"ema_alpha"`

	// Reward tuning.
	RetentionBonusRatio   float64 `toml:"retention_bonus_ratio"` // end/peak ratio earning bonus reputation
	RetentionBonusMinPeak int     `toml:"retention_bonus_min_peak"`

	// Energy drain.
	DrainDivisor float64 `toml:"drain_divisor"` // energy cost spread over this many seconds
	MinDrainRate float64 `toml:"min_drain_rate"`

	// Random events.
	EventChancePerSecond float64 `toml:"event_chance_per_second"`

	// Heartbeat.
	MaxStepDelta float64 `toml:"max_step_delta"` // per-call dt ceiling, seconds

	Churn ChurnConfig `toml:"churn"`
	Chat  ChatConfig  `toml:"chat"`
}

// DefaultConfig returns the tuned baseline simulation constants.
func DefaultConfig() Config {
	return Config{
		MinDuration: 12,
		MaxDuration: 120,
		Types: []TypeConfig{
			{ID: "gaming", Name: "Gaming", Cost: 0, EnergyCost: 6, BaseViewers: 10, Unlocked: true},
			{ID: "justchatting", Name: "Just Chatting", Cost: 0, EnergyCost: 4, BaseViewers: 8, Unlocked: true},
			{ID: "music", Name: "Music", Cost: 5, EnergyCost: 8, BaseViewers: 15, UnlockAt: 25},
			{ID: "artstream", Name: "Art Stream", Cost: 10, EnergyCost: 10, BaseViewers: 20, UnlockAt: 50},
			{ID: "coding", Name: "Coding", Cost: 0, EnergyCost: 12, BaseViewers: 8, UnlockAt: 100},
		},

		SubscriberPullRate: 0.15,

		SubscriberValue:    1.5,
		ViewerBonusRate:    0.1,
		SubscriberDivisor:  30,
		PeakBonusRate:      0.005,
		DonationChance:     0.025,
		DonationMin:        2,
		DonationMax:        25,
		LiveSubscriberRate: 0.001,

		RetentionBase:            0.75,
		RetentionReputationBonus: 0.001,
		RetentionSkillBonus:      0.05,
		RetentionCeiling:         0.95,
		GrowthMomentum:           0.2,
		MomentumThreshold:        5,
		EMAAlpha:                 0.25,

		RetentionBonusRatio:   0.8,
		RetentionBonusMinPeak: 20,

		DrainDivisor: 30,
		MinDrainRate: 0.1,

		EventChancePerSecond: 0.05,

		MaxStepDelta: 0.25,

		Churn: ChurnConfig{
			MinSubscribers:       20,
			Threshold:            0.5,
			BasePercent:          0.05,
			ReputationMitigation: 0.005,
			MaxPercentCap:        0.10,
		},
		Chat: ChatConfig{
			DecayRate:         0.9,
			MomentumCap:       20,
			BaseInterval:      3.0,
			MinInterval:       1.0,
			IntervalPerViewer: 0.02,
			BurstCount:        3,
			EmoteChance:       0.4,
			ContextualChance:  0.3,
		},
	}
}

// TypeByID looks up a stream type, returning nil for unknown ids.
func (c *Config) TypeByID(id string) *TypeConfig {
	for i := range c.Types {
		if c.Types[i].ID == id {
			return &c.Types[i]
		}
	}
	return nil
}

// RelevantSkill maps a stream type to the skill that carries it.
func RelevantSkill(typeID string) economy.SkillName {
	switch typeID {
	case "gaming":
		return economy.SkillGaming
	case "justchatting", "music":
		return economy.SkillTalking
	case "artstream":
		return economy.SkillCreativity
	case "coding":
		return economy.SkillTechnical
	default:
		return economy.SkillTalking
	}
}
