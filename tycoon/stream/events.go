package stream

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
)

// EventDefinition is one entry in the random-event roulette. Weight is a
// relative share, not a probability; OnlyType restricts an event to one
// stream category; Negative events can be deflected by immunity items.
type EventDefinition struct {
	ID       string
	Name     string
	Weight   float64
	Negative bool
	OnlyType string
	Apply    func(s *Session)
}

// Catalog returns the built-in random events.
func Catalog() []EventDefinition {
	return []EventDefinition{
		{
			ID: "raid", Name: "Incoming Raid", Weight: 0.1,
			Apply: func(s *Session) {
				joining := int(math.Floor(float64(s.viewers.Current())*0.5)) + 5 + s.rng.Intn(11)
				s.viewers.Add(joining)
				s.chat.AddMomentum(5)
				s.display.ShowNotification(fmt.Sprintf("A raid brought %d new viewers!", joining), interfaces.SeveritySuccess)
			},
		},
		{
			ID: "technical_difficulties", Name: "Technical Difficulties", Weight: 0.07, Negative: true,
			Apply: func(s *Session) {
				lost := int(float64(s.viewers.Current()) * (0.3 + s.rng.Float64()*0.2))
				s.viewers.Add(-lost)
				s.player.ChangeReputation(-2)
				s.display.ShowNotification("Stream crashed! Viewers are leaving...", interfaces.SeverityError)
			},
		},
		{
			ID: "big_donation", Name: "Big Donation", Weight: 0.05,
			Apply: func(s *Session) {
				amount := int64(float64(50+s.rng.Int63n(101)) * s.player.Mods.DonationRateMultiplier)
				credited := s.recordDonation(amount)
				s.chat.AddMomentum(3)
				s.display.ShowNotification(fmt.Sprintf("Someone donated $%d!", credited), interfaces.SeveritySuccess)
			},
		},
		{
			ID: "trolls", Name: "Troll Attack", Weight: 0.07, Negative: true,
			Apply: func(s *Session) {
				if s.player.Reputation > 70 {
					s.chat.AddMomentum(2)
					s.display.ShowNotification("Trolls showed up, but your community shut them down!", interfaces.SeverityInfo)
					return
				}
				lost := int(float64(s.viewers.Current()) * (0.1 + s.rng.Float64()*0.15))
				s.viewers.Add(-lost)
				s.player.ChangeReputation(-3)
				s.display.ShowNotification("Trolls are flooding the chat!", interfaces.SeverityWarning)
			},
		},
		{
			ID: "viral_moment", Name: "Viral Moment", Weight: 0.025,
			Apply: func(s *Session) {
				s.viewers.Add(s.viewers.Current() + 10)
				s.chat.AddMomentum(8)
				s.player.ChangeReputation(2)
				s.display.ShowNotification("Your clip went viral! Viewers are pouring in!", interfaces.SeveritySuccess)
			},
		},
		{
			ID: "gaming_win", Name: "Clutch Victory", Weight: 0.1, OnlyType: "gaming",
			Apply: func(s *Session) {
				s.viewers.Add(3 + s.rng.Intn(6))
				s.chat.AddMomentum(6)
				s.player.ImproveSkill(economy.SkillGaming, 0.1)
				s.display.ShowNotification("Incredible play! Gaming skill up, chat is going wild!", interfaces.SeveritySuccess)
			},
		},
		{
			ID: "coding_breakthrough", Name: "Breakthrough", Weight: 0.1, OnlyType: "coding",
			Apply: func(s *Session) {
				s.viewers.Add(2 + s.rng.Intn(5))
				s.chat.AddMomentum(6)
				s.player.ImproveSkill(economy.SkillTechnical, 0.1)
				s.display.ShowNotification("The bug is fixed live on stream! Technical skill up!", interfaces.SeveritySuccess)
			},
		},
	}
}

// EventEngine rolls and applies random events against a live session.
type EventEngine struct {
	cfg     *Config
	rng     *rand.Rand
	catalog []EventDefinition
}

func NewEventEngine(cfg *Config, rng *rand.Rand) *EventEngine {
	return &EventEngine{cfg: cfg, rng: rng, catalog: Catalog()}
}

// MaybeTrigger rolls the per-second event chance and, on a hit, fires one
// weighted event. No-op when the session is not live.
func (e *EventEngine) MaybeTrigger(s *Session) {
	if s == nil || !s.Live() {
		return
	}
	if e.rng.Float64() >= e.cfg.EventChancePerSecond {
		return
	}
	def := e.roll(s)
	if def == nil {
		return
	}
	e.fire(s, def)
}

// Trigger fires a specific event by id, used by debug commands. Returns
// false for unknown ids or when no session is live.
func (e *EventEngine) Trigger(s *Session, id string) bool {
	if s == nil || !s.Live() {
		return false
	}
	for i := range e.catalog {
		if e.catalog[i].ID == id {
			e.fire(s, &e.catalog[i])
			return true
		}
	}
	return false
}

func (e *EventEngine) fire(s *Session, def *EventDefinition) {
	// pr_manager style items deflect most, not all, bad luck
	if def.Negative && s.player.Mods.NegativeEventImmunity && s.rng.Float64() < 0.6 {
		s.display.ShowNotification("Your PR team handled a brewing incident quietly.", interfaces.SeverityInfo)
		return
	}
	logger.LogStream("random event", "event", def.ID, "viewers", s.viewers.Current())
	s.player.Stats.TotalEvents++
	def.Apply(s)
	s.chat.ReactToEvent(def.ID)
	s.display.LogEvent(def.Name)
}

// roll picks one eligible event by weight. Owned items can skew the raid
// share upward.
func (e *EventEngine) roll(s *Session) *EventDefinition {
	var total float64
	weights := make([]float64, len(e.catalog))
	for i := range e.catalog {
		def := &e.catalog[i]
		if def.OnlyType != "" && def.OnlyType != s.TypeID() {
			continue
		}
		w := def.Weight
		if def.ID == "raid" {
			w += s.player.Mods.RaidEventChance
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return nil
	}
	r := e.rng.Float64() * total
	for i := range e.catalog {
		if weights[i] == 0 {
			continue
		}
		r -= weights[i]
		if r < 0 {
			return &e.catalog[i]
		}
	}
	return nil
}
