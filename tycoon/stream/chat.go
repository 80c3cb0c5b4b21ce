package stream

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
)

const recentMessageWindow = 32

type pendingMessage struct {
	due      float64 // clock time at which the message fires
	username string
	text     string
	color    string
	momentum float64
}

// ChatEngine produces synthetic chat while a session is live and tracks the
// hype momentum the viewer model feeds on. All timing is driven through
// Step, never wall clocks, so the whole thing is deterministic under a
// seeded rand.
type ChatEngine struct {
	cfg     ChatConfig
	rng     *rand.Rand
	display interfaces.Display
	src     ChatSources

	active     bool
	streamType string
	clock      float64
	nextAt     float64
	momentum   float64
	pending    []pendingMessage
	recent     *lru.Cache
	viewers    int
}

// ChatSources supplies the live player readings chat conditions on. All
// funcs are re-read per use so mid-stream changes count. Any may be nil.
type ChatSources struct {
	MomentumBonus func() float64 // flat momentum bonus from owned items
	Energy        func() float64 // streamer energy, drives tired-chat lines
	Subscribers   func() int     // channel size, drives sub-badge odds
}

// NewChatEngine wires a chat engine to a display sink.
func NewChatEngine(cfg ChatConfig, rng *rand.Rand, display interfaces.Display, src ChatSources) *ChatEngine {
	if display == nil {
		display = interfaces.NopDisplay{}
	}
	if src.MomentumBonus == nil {
		src.MomentumBonus = func() float64 { return 0 }
	}
	if src.Energy == nil {
		src.Energy = func() float64 { return 100 }
	}
	if src.Subscribers == nil {
		src.Subscribers = func() int { return 0 }
	}
	recent, _ := lru.New(recentMessageWindow)
	return &ChatEngine{
		cfg:     cfg,
		rng:     rng,
		display: display,
		src:     src,
		recent:  recent,
	}
}

// Start resets momentum and queues the go-live burst.
func (c *ChatEngine) Start(streamType string, viewers int) {
	c.active = true
	c.streamType = streamType
	c.viewers = viewers
	c.clock = 0
	c.momentum = 0
	c.pending = c.pending[:0]
	c.recent.Purge()
	for i := 0; i < c.cfg.BurstCount; i++ {
		c.queue(c.composeMessage(), 0.5+float64(i)*0.7, 0.5)
	}
	c.nextAt = c.interval()
}

// Stop halts emission and drops anything still queued.
func (c *ChatEngine) Stop() {
	c.active = false
	c.pending = c.pending[:0]
}

// SetViewers updates the audience size the cadence scales with.
func (c *ChatEngine) SetViewers(n int) { c.viewers = n }

// Momentum reports current hype including item bonuses, capped.
func (c *ChatEngine) Momentum() float64 {
	if !c.active {
		return 0
	}
	return math.Min(c.cfg.MomentumCap, c.momentum+c.src.MomentumBonus())
}

// AddMomentum spikes hype directly, used by donations and random events.
func (c *ChatEngine) AddMomentum(amount float64) {
	if !c.active {
		return
	}
	c.momentum = math.Min(c.cfg.MomentumCap, c.momentum+amount)
}

// Step advances the chat clock by dt seconds, decaying momentum, flushing
// due queued messages and emitting ambient chatter on cadence.
func (c *ChatEngine) Step(dt float64) {
	if !c.active || dt <= 0 {
		return
	}
	c.clock += dt
	c.momentum *= math.Pow(c.cfg.DecayRate, dt)

	kept := c.pending[:0]
	for _, p := range c.pending {
		if p.due <= c.clock {
			c.emit(p.username, p.text, p.color, p.momentum)
		} else {
			kept = append(kept, p)
		}
	}
	c.pending = kept

	for c.clock >= c.nextAt {
		c.emit("", c.composeMessage(), "", 0.5)
		c.nextAt += c.interval()
	}
}

// ReactToDonation queues a thank-you from a random chatter.
func (c *ChatEngine) ReactToDonation() {
	if !c.active {
		return
	}
	n := 1 + c.rng.Intn(2)
	for i := 0; i < n; i++ {
		c.queue(pick(c.rng, donationReactions), 0.3+c.rng.Float64()*1.2, 2)
	}
}

// ReactToEvent queues chatter reacting to a named random event.
func (c *ChatEngine) ReactToEvent(eventID string) {
	if !c.active {
		return
	}
	lines, ok := eventReactions[eventID]
	if !ok {
		return
	}
	n := 2 + c.rng.Intn(2)
	for i := 0; i < n; i++ {
		c.queue(pick(c.rng, lines), 0.2+c.rng.Float64()*1.5, 3)
	}
}

// ReactToSubscriber queues a sub-hype line.
func (c *ChatEngine) ReactToSubscriber() {
	if !c.active {
		return
	}
	c.queue(pick(c.rng, subscriberMessages), 0.2+c.rng.Float64()*0.8, 1)
}

func (c *ChatEngine) queue(text string, delay, momentum float64) {
	c.pending = append(c.pending, pendingMessage{
		due:      c.clock + delay,
		username: c.username(),
		text:     text,
		color:    pick(c.rng, chatColors),
		momentum: momentum,
	})
}

func (c *ChatEngine) emit(username, text, color string, momentum float64) {
	if username == "" {
		username = c.username()
	}
	if color == "" {
		color = pick(c.rng, chatColors)
	}
	c.display.AddChatMessage(username, text, color)
	c.momentum = math.Min(c.cfg.MomentumCap, c.momentum+momentum)
}

// composeMessage weights a contextual, generic or type-specific line,
// retrying against the recent-message cache so chat does not stutter, then
// decorates it with emotes.
func (c *ChatEngine) composeMessage() string {
	for attempt := 0; attempt < 4; attempt++ {
		msg := c.pickLine()
		if !c.recent.Contains(msg) {
			c.recent.Add(msg, struct{}{})
			return c.addEmotes(msg)
		}
	}
	return pick(c.rng, emoteTokens)
}

func (c *ChatEngine) pickLine() string {
	if c.rng.Float64() < c.cfg.ContextualChance {
		return c.contextualLine()
	}
	lines, ok := typeMessages[c.streamType]
	if c.rng.Float64() < 0.6 || !ok {
		return pick(c.rng, genericMessages)
	}
	return pick(c.rng, lines)
}

// contextualLine reacts to the session state: audience size first, then
// marathon length, then streamer fatigue.
func (c *ChatEngine) contextualLine() string {
	switch {
	case c.viewers < 5:
		return pick(c.rng, lowViewerMessages)
	case c.viewers > 50:
		return pick(c.rng, highViewerMessages)
	case c.clock > 120:
		return pick(c.rng, longStreamMessages)
	case c.src.Energy() < 30:
		return pick(c.rng, lowEnergyMessages)
	}
	return pick(c.rng, genericMessages)
}

// addEmotes sometimes appends a random emote token, then renders every
// token appearing as a whole word to its glyph.
func (c *ChatEngine) addEmotes(msg string) string {
	if c.rng.Float64() < c.cfg.EmoteChance {
		msg += " " + pick(c.rng, emoteTokens)
	}
	words := strings.Fields(msg)
	for i, w := range words {
		if glyph, ok := chatEmotes[w]; ok {
			words[i] = glyph
		}
	}
	return strings.Join(words, " ")
}

// username synthesizes a chatter name; established channels see more of
// their messages carry the subscriber badge, capped at a coin flip.
func (c *ChatEngine) username() string {
	name := pick(c.rng, usernamePrefixes) + pick(c.rng, usernameCores) + pick(c.rng, usernameSuffixes)
	if c.rng.Float64() < 0.3 {
		name = fmt.Sprintf("%s%d", name, c.rng.Intn(1000))
	}
	subs := c.src.Subscribers()
	if subs > 100 {
		subs = 100
	}
	if c.rng.Float64() < float64(subs)/200 {
		name = "[SUB] " + name
	}
	return name
}

// interval derives the seconds until the next ambient message from viewer
// count, floored so big audiences cannot melt the sink.
func (c *ChatEngine) interval() float64 {
	iv := c.cfg.BaseInterval - float64(c.viewers)*c.cfg.IntervalPerViewer
	if iv < c.cfg.MinInterval {
		iv = c.cfg.MinInterval
	}
	// jitter keeps the cadence from sounding metronomic
	return iv * (0.7 + c.rng.Float64()*0.6)
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}
