package economy

// Modifiers is the folded result of every owned upgrade and synergy. It is
// recomputed from the purchase list after each transaction and read by the
// stream engines; nothing in the simulation re-derives effects ad hoc.
type Modifiers struct {
	MoneyMultiplier            float64 `json:"money_multiplier"`
	EnergyEfficiency           float64 `json:"energy_efficiency"` // <1 drains slower, bounded [0.3, 1.5]
	EnergyRecoveryBonus        float64 `json:"energy_recovery_bonus"`
	StartingViewerMultiplier   float64 `json:"starting_viewer_multiplier"`
	ViewerRetentionBonus       float64 `json:"viewer_retention_bonus"`
	SubscriberConversionBonus  float64 `json:"subscriber_conversion_bonus"`
	DonationRateMultiplier     float64 `json:"donation_rate_multiplier"`
	NegativeEventImmunity      bool    `json:"negative_event_immunity"`
	RaidEventChance            float64 `json:"raid_event_chance"`
	PassiveIncomePerMinute     float64 `json:"passive_income_per_minute"`
	ChatMomentumBonus          float64 `json:"chat_momentum_bonus"`
	CompletionBonusSubscribers float64 `json:"completion_bonus_subscribers"`
	CompletionBonusAll         float64 `json:"completion_bonus_all"`
	CompletionThreshold        float64 `json:"completion_threshold"`
}

// DefaultModifiers is the identity element of the fold: every multiplier 1,
// every bonus 0, threshold 1 (completion bonuses require a full-length run).
func DefaultModifiers() Modifiers {
	return Modifiers{
		MoneyMultiplier:            1,
		EnergyEfficiency:           1,
		StartingViewerMultiplier:   1,
		DonationRateMultiplier:     1,
		CompletionBonusSubscribers: 1,
		CompletionBonusAll:         1,
		CompletionThreshold:        1,
	}
}

const (
	EnergyEfficiencyFloor = 0.3
	EnergyEfficiencyCeil  = 1.5
)

// ClampEnergyEfficiency bounds the drain multiplier so stacked purchases
// cannot push it into a degenerate range.
func ClampEnergyEfficiency(v float64) float64 {
	if v < EnergyEfficiencyFloor {
		return EnergyEfficiencyFloor
	}
	if v > EnergyEfficiencyCeil {
		return EnergyEfficiencyCeil
	}
	return v
}
