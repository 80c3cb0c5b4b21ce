package tycoon

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
	"github.com/kirari-dev/streamtycoon/tycoon/economy/effects"
	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
	"github.com/kirari-dev/streamtycoon/tycoon/logger"
	"github.com/kirari-dev/streamtycoon/tycoon/stream"
)

var ErrStreamLive = errors.New("not available while live")

// SaveVersion is bumped whenever State changes shape incompatibly.
const SaveVersion = 1

// State is everything a save file needs to rebuild a game.
type State struct {
	Version    int            `json:"version"`
	Player     economy.Player `json:"player"`
	Resting    bool           `json:"resting"`
	Won        bool           `json:"won"`
	UnlockSeen []string       `json:"unlock_seen"`
	SavedAt    time.Time      `json:"saved_at"`
}

// Game owns the whole simulation: the player economy, the live session
// machine and the idle loop between streams. All entry points are meant
// to be called from a single goroutine driving Tick.
type Game struct {
	cfg     *Config
	rng     *rand.Rand
	display interfaces.Display

	player  *economy.Player
	session *stream.Session
	shop    *effects.Manager

	resting      bool
	won          bool
	unlockSeen   map[string]bool
	passiveCarry float64
}

// New builds a fresh game against the given display sink. rng may be
// seeded for reproducible runs; pass rand.New(rand.NewSource(...)).
func New(cfg *Config, display interfaces.Display, rng *rand.Rand) *Game {
	if display == nil {
		display = interfaces.NopDisplay{}
	}
	notifier := &displayNotifier{display: display}
	player := economy.NewPlayer(cfg.Player, notifier)
	notifier.player = player

	g := &Game{
		cfg:        cfg,
		rng:        rng,
		display:    display,
		player:     player,
		shop:       effects.NewManager(player, notifier, rng),
		unlockSeen: map[string]bool{},
	}
	g.session = stream.NewSession(&cfg.Stream, player, display, rng)
	g.session.OnEnded(g.streamEnded)

	for _, t := range cfg.Stream.Types {
		if t.Unlocked {
			g.unlockSeen[t.ID] = true
		}
	}
	display.UpdateStats(player.StatsSnapshot())
	return g
}

func (g *Game) Player() *economy.Player  { return g.player }
func (g *Game) Session() *stream.Session { return g.session }
func (g *Game) Resting() bool            { return g.resting }
func (g *Game) Won() bool                { return g.won }

// Tick advances the whole game by dt seconds. Large deltas are sliced so
// the per-second machinery inside the session never skips.
func (g *Game) Tick(dt float64) {
	for dt > 0 {
		step := math.Min(dt, g.cfg.Stream.MaxStepDelta)
		dt -= step
		g.tickOnce(step)
	}
}

func (g *Game) tickOnce(dt float64) {
	if g.session.Live() {
		g.session.Step(dt)
	} else if g.player.Energy < g.player.MaxEnergy {
		rate := g.cfg.Game.IdleRecoveryPerSecond * (1 + g.player.Mods.EnergyRecoveryBonus)
		if g.resting {
			rate *= g.cfg.Game.RestMultiplier
		}
		g.player.RecoverEnergy(rate * dt)
		if g.resting && g.player.Energy >= g.player.MaxEnergy {
			g.resting = false
			g.display.ShowNotification("Fully rested!", interfaces.SeveritySuccess)
		}
	}

	// Passive income only accrues between streams.
	if ppm := g.player.Mods.PassiveIncomePerMinute; ppm > 0 && !g.session.Live() {
		g.passiveCarry += ppm / 60 * dt
		if whole := math.Floor(g.passiveCarry); whole >= 1 {
			g.passiveCarry -= whole
			g.player.AddMoney(int64(whole))
		}
	}
}

// StartStream goes live with the given type, cancelling any rest.
func (g *Game) StartStream(typeID string) error {
	g.resting = false
	if err := g.session.Start(typeID); err != nil {
		g.display.ShowNotification(err.Error(), interfaces.SeverityWarning)
		return err
	}
	return nil
}

// EndStream closes the live session; returns false when nothing is live.
func (g *Game) EndStream() (stream.Outcome, bool) {
	return g.session.End()
}

// SwitchStream changes category mid-session.
func (g *Game) SwitchStream(typeID string) error {
	if err := g.session.Switch(typeID); err != nil {
		g.display.ShowNotification(err.Error(), interfaces.SeverityWarning)
		return err
	}
	return nil
}

// Rest starts accelerated energy recovery. Not available while live.
func (g *Game) Rest() error {
	if g.session.Live() {
		return ErrStreamLive
	}
	if g.resting {
		return nil
	}
	g.resting = true
	g.display.ShowNotification("Taking a break to recover energy...", interfaces.SeverityInfo)
	// a lucky nap restores a chunk up front
	if g.rng.Float64() < 0.1 {
		g.player.RecoverEnergy(5)
		g.display.ShowNotification("That was a great power nap!", interfaces.SeveritySuccess)
	}
	return nil
}

// Buy purchases a shop item and reports success. On success the world
// reacts: modifiers are refolded by the shop and unlocks rechecked.
func (g *Game) Buy(itemID string) bool {
	if !g.shop.Purchase(itemID) {
		return false
	}
	g.checkUnlocks()
	g.checkVictory()
	return true
}

// TriggerEvent fires a named random event on the live session, for debug
// consoles. Returns false when idle or unknown.
func (g *Game) TriggerEvent(id string) bool {
	return g.session.TriggerEvent(id)
}

func (g *Game) streamEnded(out stream.Outcome) {
	g.checkUnlocks()
	g.checkVictory()
}

// checkUnlocks announces stream types that just became available. Each
// announcement happens once per playthrough.
func (g *Game) checkUnlocks() {
	for _, t := range g.cfg.Stream.Types {
		if g.unlockSeen[t.ID] || t.Unlocked {
			continue
		}
		if g.player.Subscribers >= t.UnlockAt {
			g.unlockSeen[t.ID] = true
			g.display.ShowNotification(
				fmt.Sprintf("New stream type unlocked: %s!", t.Name),
				interfaces.SeveritySuccess)
			logger.LogSystem("stream type unlocked", "type", t.ID)
		}
	}
}

func (g *Game) checkVictory() {
	if g.won || !g.player.HasWon() {
		return
	}
	g.won = true
	g.display.LogEvent("Channel of the Year")
	g.display.ShowNotification(
		"You made it! Your channel is a full-time career now.",
		interfaces.SeveritySuccess)
	logger.LogSystem("win conditions met",
		"subscribers", g.player.Subscribers, "money", g.player.Money, "reputation", g.player.Reputation)
}

// Snapshot captures the persistent state. Live-session progress is not
// saved; a stream interrupted by shutdown simply never happened.
func (g *Game) Snapshot() State {
	return State{
		Version:    SaveVersion,
		Player:     *g.player,
		Resting:    g.resting,
		Won:        g.won,
		UnlockSeen: setToList(g.unlockSeen),
		SavedAt:    time.Now().UTC(),
	}
}

// Restore loads a snapshot over the current game. Modifiers are refolded
// from the inventory rather than trusted from the file.
func (g *Game) Restore(st State) {
	if st.Version > SaveVersion {
		logger.LogSystem("save is from a newer build, loading best effort",
			"save_version", st.Version, "supported", SaveVersion)
	}
	p := g.player
	saved := st.Player
	p.Money = saved.Money
	p.Subscribers = saved.Subscribers
	p.Reputation = saved.Reputation
	p.Energy = saved.Energy
	p.MaxEnergy = saved.MaxEnergy
	if saved.Skills != nil {
		p.Skills = saved.Skills
	}
	p.Stats = saved.Stats
	p.Inventory = saved.Inventory
	p.ActiveSynergies = saved.ActiveSynergies
	p.AchievedMilestones = saved.AchievedMilestones
	g.shop.Refold()

	g.resting = st.Resting
	g.won = st.Won
	for _, id := range st.UnlockSeen {
		g.unlockSeen[id] = true
	}
	g.display.UpdateStats(p.StatsSnapshot())
	logger.LogSystem("game restored", "saved_at", st.SavedAt, "subscribers", p.Subscribers)
}

// NewGame wipes progress back to a fresh player.
func (g *Game) NewGame() {
	if g.session.Live() {
		g.session.End()
	}
	g.player.Reset()
	g.shop.Refold()
	g.resting = false
	g.won = false
	g.passiveCarry = 0
	g.unlockSeen = map[string]bool{}
	for _, t := range g.cfg.Stream.Types {
		if t.Unlocked {
			g.unlockSeen[t.ID] = true
		}
	}
	g.display.UpdateStats(g.player.StatsSnapshot())
	g.display.ShowNotification("New game started. Go live!", interfaces.SeverityInfo)
}

func setToList(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// displayNotifier adapts the display sink to the economy's notifier
// contract so the economy package stays display-agnostic.
type displayNotifier struct {
	display interfaces.Display
	player  *economy.Player
}

func (n *displayNotifier) Notify(msg string, sev interfaces.Severity) {
	n.display.ShowNotification(msg, sev)
}

func (n *displayNotifier) Log(msg string) {
	n.display.LogEvent(msg)
}

func (n *displayNotifier) StatsChanged() {
	if n.player != nil {
		n.display.UpdateStats(n.player.StatsSnapshot())
	}
}
