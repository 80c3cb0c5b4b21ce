package stream

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
)

var (
	ErrAlreadyLive     = errors.New("a stream is already live")
	ErrNotLive         = errors.New("no stream is live")
	ErrUnknownType     = errors.New("unknown stream type")
	ErrTypeLocked      = errors.New("stream type is locked")
	ErrNotEnoughMoney  = errors.New("not enough money")
	ErrNotEnoughEnergy = errors.New("not enough energy")
)

// Outcome bundles everything a finished session produced.
type Outcome struct {
	Telemetry Telemetry `json:"telemetry"`
	Rewards   Rewards   `json:"rewards"`
	Churn     Churn     `json:"churn"`
}

// Session is the live-stream state machine. It is either idle or live;
// Start, Step, End and Switch are the only transitions. All randomness
// flows through the injected rand so runs are reproducible under a seed.
//
// Session is not safe for concurrent use; the game loop owns it.
type Session struct {
	cfg     *Config
	player  *economy.Player
	display interfaces.Display
	rng     *rand.Rand

	chat    *ChatEngine
	viewers *ViewerModel
	events  *EventEngine

	live       bool
	typ        *TypeConfig
	elapsed    float64
	target     float64
	drainRate  float64
	tickCarry  float64
	exhausted  bool
	wrapNudged bool

	donated int64

	onEnded func(Outcome)
}

func NewSession(cfg *Config, player *economy.Player, display interfaces.Display, rng *rand.Rand) *Session {
	if display == nil {
		display = interfaces.NopDisplay{}
	}
	s := &Session{
		cfg:     cfg,
		player:  player,
		display: display,
		rng:     rng,
		viewers: NewViewerModel(cfg, rng),
		events:  NewEventEngine(cfg, rng),
	}
	s.chat = NewChatEngine(cfg.Chat, rng, display, ChatSources{
		MomentumBonus: func() float64 { return player.Mods.ChatMomentumBonus },
		Energy:        func() float64 { return player.Energy },
		Subscribers:   func() int { return player.Subscribers },
	})
	return s
}

// OnEnded registers a hook run after every session close, however it
// ended. Used for unlock checks, win detection and autosave marks.
func (s *Session) OnEnded(fn func(Outcome)) { s.onEnded = fn }

func (s *Session) Live() bool { return s.live }

// TypeID returns the live stream type id, or "" when idle.
func (s *Session) TypeID() string {
	if s.typ == nil {
		return ""
	}
	return s.typ.ID
}

func (s *Session) Elapsed() float64        { return s.elapsed }
func (s *Session) TargetDuration() float64 { return s.target }
func (s *Session) Viewers() int            { return s.viewers.Current() }
func (s *Session) Momentum() float64       { return s.chat.Momentum() }

// Unlocked reports whether the player can start the given type.
func (s *Session) Unlocked(t *TypeConfig) bool {
	return t.Unlocked || s.player.Subscribers >= t.UnlockAt
}

// Start opens a session of the given type. Checks run before any money
// moves, so a failed start never costs anything.
func (s *Session) Start(typeID string) error {
	if s.live {
		return ErrAlreadyLive
	}
	t := s.cfg.TypeByID(typeID)
	if t == nil {
		return fmt.Errorf("%w: %q", ErrUnknownType, typeID)
	}
	if !s.Unlocked(t) {
		return fmt.Errorf("%w: %s needs %d subscribers", ErrTypeLocked, t.Name, t.UnlockAt)
	}
	if !s.player.CanStream() || s.player.Energy < t.EnergyCost {
		return ErrNotEnoughEnergy
	}
	if t.Cost > 0 && !s.player.SpendMoney(t.Cost) {
		return fmt.Errorf("%w: %s costs $%d", ErrNotEnoughMoney, t.Name, t.Cost)
	}

	s.typ = t
	s.live = true
	s.elapsed = 0
	s.tickCarry = 0
	s.exhausted = false
	s.wrapNudged = false
	s.donated = 0
	s.drainRate = s.computeDrainRate(t)
	s.target = s.planDuration()

	skill := s.player.SkillLevel(RelevantSkill(t.ID))
	starting := StartingViewers(s.cfg, s.rng,
		t.BaseViewers, s.player.Subscribers, s.player.Reputation,
		skill, s.player.Mods.StartingViewerMultiplier)
	s.viewers.Reset(starting)
	s.chat.Start(t.ID, starting)

	s.display.UpdateStreamDisplay(t.ID)
	s.display.UpdateViewerCount(starting)
	s.display.UpdateStreamTimer(0, s.target)
	s.display.ShowNotification(fmt.Sprintf("%s stream is live!", t.Name), interfaces.SeverityInfo)
	logger.LogStream("stream started",
		"type", t.ID, "viewers", starting, "target", s.target, "drain", s.drainRate)
	return nil
}

// Step advances the simulation by dt seconds. Wall-clock spikes are
// clamped so a stalled browser tab or debugger pause cannot warp the
// session; full seconds of game logic fire on an accumulator.
func (s *Session) Step(dt float64) {
	if !s.live || dt <= 0 {
		return
	}
	if dt > s.cfg.MaxStepDelta {
		dt = s.cfg.MaxStepDelta
	}
	s.elapsed += dt
	s.player.UseEnergy(s.drainRate * dt)
	if s.player.Energy <= 0 {
		s.exhausted = true
		s.display.ShowNotification("You collapsed from exhaustion! Stream over.", interfaces.SeverityError)
		s.End()
		return
	}

	s.tickCarry += dt
	for s.tickCarry >= 1 {
		s.tickCarry--
		s.tick()
	}

	s.chat.SetViewers(s.viewers.Current())
	s.chat.Step(dt)
	if !s.wrapNudged && s.elapsed >= s.target {
		s.wrapNudged = true
		s.display.HighlightEndStream()
	}
	s.display.UpdateStreamTimer(s.elapsed, s.target)
}

// tick runs the once-per-second slice of the simulation.
func (s *Session) tick() {
	skill := s.player.SkillLevel(RelevantSkill(s.typ.ID))
	s.viewers.Tick(s.player.Reputation, skill, s.player.Mods.ViewerRetentionBonus, s.chat.Momentum())
	cur := s.viewers.Current()
	s.display.UpdateViewerCount(cur)
	if cur > s.player.Stats.MaxViewers {
		s.player.Stats.MaxViewers = cur
	}

	// small donations scale with the audience
	if s.rng.Float64() < s.donationChance(cur) {
		span := s.cfg.DonationMax - s.cfg.DonationMin + 1
		s.recordDonation(s.cfg.DonationMin + s.rng.Int63n(span))
	}

	// the odd viewer subscribes mid-stream
	if s.rng.Float64() < s.cfg.LiveSubscriberRate*float64(cur) {
		s.player.AddSubscribers(1)
		s.chat.ReactToSubscriber()
	}

	s.events.MaybeTrigger(s)
}

// End closes the session and settles rewards. Idempotent: a second call
// reports ok=false and does nothing.
func (s *Session) End() (Outcome, bool) {
	if !s.live {
		return Outcome{}, false
	}
	s.live = false
	s.chat.Stop()

	t := Telemetry{
		TypeID:         s.typ.ID,
		Duration:       s.elapsed,
		TargetDuration: s.target,
		AverageViewers: s.viewers.Average(),
		PeakViewers:    s.viewers.Peak(),
		EndViewers:     s.viewers.Current(),
		Exhausted:      s.exhausted,
	}
	rewards := CalculateRewards(s.cfg, t, s.player.Subscribers, s.player.Reputation, s.player.Mods.MoneyMultiplier)
	rewards = s.applyCompletionBonuses(rewards)
	churn := CalculateChurn(s.cfg.Churn, t, s.player.Subscribers, s.player.Reputation)

	s.player.AddMoney(rewards.Money)
	s.player.AddSubscribers(rewards.Subscribers)
	s.player.ChangeReputation(rewards.Reputation)
	if churn.Lost > 0 {
		s.player.RemoveSubscribers(churn.Lost)
		s.display.ShowNotification(
			fmt.Sprintf("%d subscribers left after the short stream", churn.Lost),
			interfaces.SeverityWarning)
	}

	s.player.Stats.StreamsCompleted++
	s.player.Stats.TotalStreamTime += s.elapsed
	s.player.ImproveSkill(RelevantSkill(s.typ.ID), 0.05*rewards.DurationFactor)

	s.display.UpdateStreamDisplay("")
	s.display.ShowNotification(
		fmt.Sprintf("Stream ended: +$%d, +%d subs", rewards.Money, rewards.Subscribers),
		interfaces.SeveritySuccess)
	logger.LogStream("stream ended",
		"type", t.TypeID, "duration", t.Duration, "factor", rewards.DurationFactor,
		"money", rewards.Money, "subs", rewards.Subscribers, "churn", churn.Lost)

	out := Outcome{Telemetry: t, Rewards: rewards, Churn: churn}
	s.typ = nil
	if s.onEnded != nil {
		s.onEnded(out)
	}
	return out, true
}

// Switch changes the stream category without going offline. Part of the
// audience came for the old content and leaves; drain and the remaining
// plan are recomputed against the new type.
func (s *Session) Switch(typeID string) error {
	if !s.live {
		return ErrNotLive
	}
	t := s.cfg.TypeByID(typeID)
	if t == nil {
		return fmt.Errorf("%w: %q", ErrUnknownType, typeID)
	}
	if t.ID == s.typ.ID {
		return nil
	}
	if !s.Unlocked(t) {
		return fmt.Errorf("%w: %s needs %d subscribers", ErrTypeLocked, t.Name, t.UnlockAt)
	}
	if t.Cost > 0 && !s.player.SpendMoney(t.Cost) {
		return fmt.Errorf("%w: %s costs $%d", ErrNotEnoughMoney, t.Name, t.Cost)
	}

	lost := int(float64(s.viewers.Current()) * (0.1 + s.rng.Float64()*0.2))
	s.viewers.Add(-lost)
	s.typ = t
	s.drainRate = s.computeDrainRate(t)
	s.target = math.Min(s.elapsed+s.planDuration(), s.cfg.MaxDuration)
	s.wrapNudged = false
	s.chat.streamType = t.ID

	s.display.UpdateStreamDisplay(t.ID)
	s.display.ShowNotification(fmt.Sprintf("Switched to %s", t.Name), interfaces.SeverityInfo)
	logger.LogStream("stream switched", "type", t.ID, "lost", lost, "target", s.target)
	return nil
}

// TriggerEvent fires a named event immediately, for debug tooling.
func (s *Session) TriggerEvent(id string) bool {
	return s.events.Trigger(s, id)
}

// Donated reports money received through donations this session.
func (s *Session) Donated() int64 { return s.donated }

// donationChance is the per-second probability of a viewer donation: base
// rate per viewer, lifted by reputation, a hot peak and owned widgets. Zero
// viewers means zero chance.
func (s *Session) donationChance(cur int) float64 {
	repBonus := 0.5 + float64(s.player.Reputation)/100
	peakBonus := 1 + float64(s.viewers.Peak())*s.cfg.PeakBonusRate
	return s.cfg.DonationChance * float64(cur) * repBonus * peakBonus * s.player.Mods.DonationRateMultiplier
}

// recordDonation credits a donation after the money multiplier and reports
// the credited amount.
func (s *Session) recordDonation(amount int64) int64 {
	amount = int64(math.Floor(float64(amount) * s.player.Mods.MoneyMultiplier))
	if amount <= 0 {
		return 0
	}
	s.donated += amount
	s.player.AddMoney(amount)
	s.player.Stats.TotalDonations += amount
	s.display.ShowDonation(amount)
	s.chat.ReactToDonation()
	s.chat.AddMomentum(2)
	return amount
}

// computeDrainRate derives energy loss per second: the type's cost spread
// over the divisor window, eased by skill and reputation, scaled by owned
// efficiency upgrades, floored so streams always cost something.
func (s *Session) computeDrainRate(t *TypeConfig) float64 {
	skill := s.player.SkillLevel(RelevantSkill(t.ID))
	rate := t.EnergyCost / s.cfg.DrainDivisor
	skillEase := 1.2 - skill*0.1
	if skillEase < 0.5 {
		skillEase = 0.5
	}
	rate *= skillEase
	rate *= 1 - float64(s.player.Reputation)/200
	rate *= economy.ClampEnergyEfficiency(s.player.Mods.EnergyEfficiency)
	if rate < s.cfg.MinDrainRate {
		rate = s.cfg.MinDrainRate
	}
	return rate
}

// planDuration sizes the session to the energy budget: energy over drain,
// clamped to the configured window.
func (s *Session) planDuration() float64 {
	d := s.player.Energy / s.drainRate
	if d < s.cfg.MinDuration {
		d = s.cfg.MinDuration
	}
	if d > s.cfg.MaxDuration {
		d = s.cfg.MaxDuration
	}
	return d
}

// applyCompletionBonuses scales earned subscribers when the run reached
// the owned items' completion threshold.
func (s *Session) applyCompletionBonuses(r Rewards) Rewards {
	mods := s.player.Mods
	if r.DurationFactor >= mods.CompletionThreshold {
		bonus := mods.CompletionBonusSubscribers * mods.CompletionBonusAll
		r.Subscribers = int(math.Floor(float64(r.Subscribers) * bonus))
		r.Money = int64(math.Floor(float64(r.Money) * mods.CompletionBonusAll))
	}
	if mods.SubscriberConversionBonus > 0 {
		r.Subscribers = int(math.Floor(float64(r.Subscribers) * (1 + mods.SubscriberConversionBonus)))
	}
	return r
}
