// Package economy owns the long-lived player state: money, subscribers,
// reputation, energy, skills, purchase modifiers and cumulative stats.
package economy

import (
	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
)

// SkillName identifies one of the four trainable skills.
type SkillName string

const (
	SkillGaming     SkillName = "gaming"
	SkillTalking    SkillName = "talking"
	SkillTechnical  SkillName = "technical"
	SkillCreativity SkillName = "creativity"
)

// Notifier is the small capability surface the player state uses to report
// changes outward. The game root adapts the display sink onto it.
type Notifier interface {
	Notify(message string, severity interfaces.Severity)
	Log(message string)
	StatsChanged()
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(string, interfaces.Severity) {}
func (NopNotifier) Log(string)                         {}
func (NopNotifier) StatsChanged()                      {}

// Milestone is a subscriber threshold with a one-time payout.
type Milestone struct {
	Count          int     `toml:"count" json:"count"`
	Description    string  `toml:"description" json:"description"`
	Money          int64   `toml:"money" json:"money"`
	Reputation     int     `toml:"reputation" json:"reputation"`
	MaxEnergyBonus float64 `toml:"max_energy_bonus" json:"max_energy_bonus"`
}

// WinConditions are the thresholds that end the game.
type WinConditions struct {
	Subscribers int   `toml:"subscribers" json:"subscribers"`
	Money       int64 `toml:"money" json:"money"`
	Reputation  int   `toml:"reputation" json:"reputation"`
}

// Config holds the starting values and progression tables for a player.
type Config struct {
	StartingMoney       int64         `toml:"starting_money"`
	StartingSubscribers int           `toml:"starting_subscribers"`
	StartingReputation  int           `toml:"starting_reputation"`
	StartingEnergy      float64       `toml:"starting_energy"`
	MinStreamEnergy     float64       `toml:"min_stream_energy"`
	Milestones          []Milestone   `toml:"milestones"`
	Win                 WinConditions `toml:"win"`
}

// DefaultConfig returns the tuned baseline progression.
func DefaultConfig() Config {
	return Config{
		StartingMoney:       50,
		StartingSubscribers: 0,
		StartingReputation:  50,
		StartingEnergy:      20,
		MinStreamEnergy:     5,
		Win: WinConditions{
			Subscribers: 500,
			Money:       2500,
			Reputation:  85,
		},
		Milestones: []Milestone{
			{Count: 10, Description: "First milestone! Your journey begins.", Money: 25},
			{Count: 25, Description: "Growing fast! Music streams unlocked!", Money: 60, MaxEnergyBonus: 5},
			{Count: 50, Description: "Solid fanbase! Art streams unlocked!", Money: 120, Reputation: 5},
			{Count: 100, Description: "Triple digits! Coding streams unlocked!", Money: 250, Reputation: 8, MaxEnergyBonus: 8},
			{Count: 200, Description: "Growing strong! Your reputation spreads.", Money: 500, Reputation: 10},
			{Count: 350, Description: "Rising star! Your dedication shows.", Money: 800, Reputation: 12, MaxEnergyBonus: 10},
			{Count: 500, Description: "VICTORY! You've reached streaming stardom!", Money: 1500, Reputation: 15, MaxEnergyBonus: 15},
		},
	}
}

// Stats are cumulative lifetime totals. They never decrease.
type Stats struct {
	TotalStreamTime  float64 `json:"total_stream_time"`
	StreamsCompleted int     `json:"streams_completed"`
	MaxViewers       int     `json:"max_viewers"`
	TotalDonations   int64   `json:"total_donations"`
	TotalEvents      int     `json:"total_events"`
}

// Purchase records one shop transaction, kept for requirement checks,
// repeat-purchase scaling and modifier refolds.
type Purchase struct {
	ItemID string `json:"item_id"`
	Price  int64  `json:"price"`
}

// Player is the mutable economy state. It is owned by the game root and
// mutated synchronously by the simulation tick; there is no locking.
type Player struct {
	Money       int64   `json:"money"`
	Subscribers int     `json:"subscribers"`
	Reputation  int     `json:"reputation"`
	Energy      float64 `json:"energy"`
	MaxEnergy   float64 `json:"max_energy"`

	Skills             map[SkillName]float64 `json:"skills"`
	Mods               Modifiers             `json:"modifiers"`
	Stats              Stats                 `json:"stats"`
	Inventory          []Purchase            `json:"inventory"`
	ActiveSynergies    []string              `json:"active_synergies"`
	AchievedMilestones []int                 `json:"achieved_milestones"`

	cfg      Config
	notifier Notifier
}

// NewPlayer creates a player at the configured starting values.
func NewPlayer(cfg Config, notifier Notifier) *Player {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	p := &Player{cfg: cfg, notifier: notifier}
	p.Reset()
	return p
}

// Reset restores the starting state, wiping all progression.
func (p *Player) Reset() {
	p.Money = p.cfg.StartingMoney
	p.Subscribers = p.cfg.StartingSubscribers
	p.Reputation = clampReputation(p.cfg.StartingReputation)
	p.MaxEnergy = p.cfg.StartingEnergy
	p.Energy = p.MaxEnergy
	p.Skills = map[SkillName]float64{
		SkillGaming:     1,
		SkillTalking:    1,
		SkillTechnical:  1,
		SkillCreativity: 1,
	}
	p.Mods = DefaultModifiers()
	p.Stats = Stats{}
	p.Inventory = nil
	p.ActiveSynergies = nil
	p.AchievedMilestones = nil
}

// AttachNotifier re-binds the notifier, used after restoring from a save.
func (p *Player) AttachNotifier(notifier Notifier) {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	p.notifier = notifier
}

// Settings exposes the config the player was built with.
func (p *Player) Settings() Config { return p.cfg }

func (p *Player) AddMoney(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	p.Money += amount
	p.notifier.StatsChanged()
	return amount
}

// SpendMoney deducts amount if affordable. The check and the deduction are a
// single step; on failure nothing changes.
func (p *Player) SpendMoney(amount int64) bool {
	if p.Money < amount {
		return false
	}
	p.Money -= amount
	p.notifier.StatsChanged()
	return true
}

// AddSubscribers credits new subscribers and pays out any milestone whose
// threshold was crossed upward. Each milestone pays at most once.
func (p *Player) AddSubscribers(amount int) int {
	if amount <= 0 {
		return 0
	}
	old := p.Subscribers
	p.Subscribers += amount
	p.checkMilestones(old)
	p.notifier.StatsChanged()
	return amount
}

// RemoveSubscribers deducts up to amount, never going below zero.
func (p *Player) RemoveSubscribers(amount int) int {
	if amount <= 0 {
		return 0
	}
	lost := amount
	if lost > p.Subscribers {
		lost = p.Subscribers
	}
	p.Subscribers -= lost
	p.notifier.StatsChanged()
	return lost
}

func (p *Player) checkMilestones(oldSubscribers int) {
	for _, m := range p.cfg.Milestones {
		if p.Subscribers < m.Count || oldSubscribers >= m.Count || p.hasMilestone(m.Count) {
			continue
		}
		p.notifier.Notify("MILESTONE: "+m.Description, interfaces.SeveritySuccess)
		if m.Money > 0 {
			p.AddMoney(m.Money)
			logger.LogEconomy("Milestone payout",
				"threshold", m.Count,
				"money", m.Money)
		}
		if m.Reputation > 0 {
			p.ChangeReputation(m.Reputation)
		}
		if m.MaxEnergyBonus > 0 {
			p.MaxEnergy += m.MaxEnergyBonus
			p.Energy = min(p.MaxEnergy, p.Energy+m.MaxEnergyBonus)
			p.notifier.Log("Max energy increased from a subscriber milestone.")
		}
		p.AchievedMilestones = append(p.AchievedMilestones, m.Count)
	}
}

func (p *Player) hasMilestone(count int) bool {
	for _, c := range p.AchievedMilestones {
		if c == count {
			return true
		}
	}
	return false
}

// ChangeReputation shifts reputation by delta, clamped to [0, 100].
func (p *Player) ChangeReputation(delta int) int {
	p.Reputation = clampReputation(p.Reputation + delta)
	p.notifier.StatsChanged()
	return p.Reputation
}

// UseEnergy drains energy, flooring at zero.
func (p *Player) UseEnergy(amount float64) {
	if amount <= 0 {
		return
	}
	p.Energy -= amount
	if p.Energy < 0 {
		p.Energy = 0
	}
	p.notifier.StatsChanged()
}

// RecoverEnergy restores energy up to the current maximum.
func (p *Player) RecoverEnergy(amount float64) {
	if amount <= 0 {
		return
	}
	p.Energy = min(p.MaxEnergy, p.Energy+amount)
	p.notifier.StatsChanged()
}

// ImproveSkill raises a skill level. Skills only increase.
func (p *Player) ImproveSkill(name SkillName, amount float64) bool {
	if _, ok := p.Skills[name]; !ok || amount <= 0 {
		return false
	}
	p.Skills[name] += amount
	return true
}

// SkillLevel returns the level for name, defaulting to 1 for unknown skills.
func (p *Player) SkillLevel(name SkillName) float64 {
	if lvl, ok := p.Skills[name]; ok {
		return lvl
	}
	return 1
}

// CanStream reports whether energy is above the minimum needed to go live.
func (p *Player) CanStream() bool {
	return p.Energy > p.cfg.MinStreamEnergy
}

// HasWon checks the configured win conditions.
func (p *Player) HasWon() bool {
	w := p.cfg.Win
	return p.Subscribers >= w.Subscribers &&
		p.Money >= w.Money &&
		p.Reputation >= w.Reputation
}

// StatsSnapshot builds the headline counters for display sinks.
func (p *Player) StatsSnapshot() interfaces.StatsUpdate {
	return interfaces.StatsUpdate{
		Money:       p.Money,
		Subscribers: p.Subscribers,
		Reputation:  p.Reputation,
		Energy:      p.Energy,
		MaxEnergy:   p.MaxEnergy,
	}
}

func clampReputation(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
