package effects

import (
	"math"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
)

// Fold reduces the owned purchases and unlocked synergies into a single
// Modifiers value. It is a pure function: same inputs, same output, no
// player mutation. Callers replace the player's Mods wholesale with the
// result after every purchase.
func Fold(purchases []economy.Purchase, activeSynergies []string) economy.Modifiers {
	mods := economy.DefaultModifiers()

	counts := make(map[string]int, len(purchases))
	for _, pur := range purchases {
		item := ItemByID(pur.ItemID)
		if item == nil {
			continue
		}
		applyEffect(&mods, item.Effect, counts[item.ID], item.Scaling)
		counts[item.ID]++
	}

	for _, name := range activeSynergies {
		if syn := synergyByName(name); syn != nil {
			applyEffect(&mods, syn.Effect, 0, nil)
		}
	}

	mods.EnergyEfficiency = economy.ClampEnergyEfficiency(mods.EnergyEfficiency)
	return mods
}

// applyEffect merges one effect into mods. priorCopies counts how many times
// the same item was already folded, which drives diminishing returns for
// repeatable multiplier items.
func applyEffect(mods *economy.Modifiers, e Effect, priorCopies int, scaling *Scaling) {
	if e.MoneyMultiplier != 0 {
		mods.MoneyMultiplier *= e.MoneyMultiplier
	}
	if e.EnergyEfficiency != 0 {
		v := e.EnergyEfficiency
		if scaling != nil && scaling.EffectDiminishing > 0 && priorCopies > 0 {
			v = math.Pow(v, math.Pow(scaling.EffectDiminishing, float64(priorCopies)))
		}
		mods.EnergyEfficiency *= v
	}
	if e.EnergyRecoveryBonus != 0 {
		mods.EnergyRecoveryBonus += e.EnergyRecoveryBonus
	}
	if e.StartingViewerMultiplier != 0 {
		mods.StartingViewerMultiplier *= e.StartingViewerMultiplier
	}
	if e.ViewerRetentionBonus != 0 {
		mods.ViewerRetentionBonus += e.ViewerRetentionBonus
	}
	if e.SubscriberConversionBonus != 0 {
		mods.SubscriberConversionBonus += e.SubscriberConversionBonus
	}
	if e.DonationRateMultiplier != 0 {
		mods.DonationRateMultiplier *= e.DonationRateMultiplier
	}
	if e.NegativeEventImmunity {
		mods.NegativeEventImmunity = true
	}
	if e.RaidEventChance != 0 {
		mods.RaidEventChance += e.RaidEventChance
	}
	if e.PassiveIncomePerMinute != 0 {
		mods.PassiveIncomePerMinute += e.PassiveIncomePerMinute
	}
	if e.ChatMomentumBonus != 0 {
		mods.ChatMomentumBonus += e.ChatMomentumBonus
	}
	if e.CompletionBonusSubscribers != 0 {
		mods.CompletionBonusSubscribers *= e.CompletionBonusSubscribers
	}
	if e.CompletionBonusAll != 0 {
		mods.CompletionBonusAll *= e.CompletionBonusAll
	}
	if e.CompletionThreshold != 0 && e.CompletionThreshold < mods.CompletionThreshold {
		mods.CompletionThreshold = e.CompletionThreshold
	}
}

// ScaledCost computes the price of the next copy of item given how many
// copies are already owned.
func ScaledCost(item *Item, owned int) int64 {
	if item.Scaling == nil || item.Scaling.CostMultiplier <= 0 || owned == 0 {
		return item.Cost
	}
	return int64(math.Floor(float64(item.Cost) * math.Pow(item.Scaling.CostMultiplier, float64(owned))))
}

// ReadySynergies returns the synergies whose requirements are fully owned.
func ReadySynergies(purchases []economy.Purchase) []Synergy {
	owned := make(map[string]bool, len(purchases))
	for _, pur := range purchases {
		owned[pur.ItemID] = true
	}

	var ready []Synergy
	for _, syn := range Synergies {
		ok := true
		for _, req := range syn.Requirements {
			if !owned[req] {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, syn)
		}
	}
	return ready
}

func synergyByName(name string) *Synergy {
	for i := range Synergies {
		if Synergies[i].Name == name {
			return &Synergies[i]
		}
	}
	return nil
}
