package stream

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
)

type chatRecorder struct {
	interfaces.NopDisplay
	messages []string
	users    []string
}

func (r *chatRecorder) AddChatMessage(username, text, _ string) {
	r.users = append(r.users, username)
	r.messages = append(r.messages, text)
}

func newTestChat(seed int64) (*ChatEngine, *chatRecorder) {
	rec := &chatRecorder{}
	cfg := DefaultConfig().Chat
	return NewChatEngine(cfg, rand.New(rand.NewSource(seed)), rec, ChatSources{}), rec
}

func TestChatBurstOnStart(t *testing.T) {
	c, rec := newTestChat(1)
	c.Start("gaming", 10)
	for i := 0; i < 50; i++ {
		c.Step(0.1)
	}
	if len(rec.messages) < c.cfg.BurstCount {
		t.Fatalf("got %d messages in five seconds, want at least the burst of %d",
			len(rec.messages), c.cfg.BurstCount)
	}
	for _, u := range rec.users {
		if u == "" {
			t.Fatal("message emitted without a username")
		}
	}
}

func TestChatStopCancelsPending(t *testing.T) {
	c, rec := newTestChat(1)
	c.Start("gaming", 10)
	c.ReactToDonation()
	c.ReactToEvent("raid")
	c.Stop()
	count := len(rec.messages)
	for i := 0; i < 100; i++ {
		c.Step(0.1)
	}
	if len(rec.messages) != count {
		t.Fatalf("messages after Stop: %d -> %d", count, len(rec.messages))
	}
}

func TestChatMomentumDecays(t *testing.T) {
	c, _ := newTestChat(1)
	c.Start("gaming", 10)
	c.AddMomentum(10)
	before := c.Momentum()
	// a decay-only window: no queue flushes, no cadence messages
	c.momentum = 10
	c.pending = nil
	c.nextAt = 1e9
	c.Step(2)
	after := c.Momentum()
	if after >= before {
		t.Fatalf("momentum did not decay: %v -> %v", before, after)
	}
}

func TestChatMomentumCapped(t *testing.T) {
	c, _ := newTestChat(1)
	c.Start("gaming", 10)
	c.AddMomentum(1000)
	if got := c.Momentum(); got > c.cfg.MomentumCap {
		t.Fatalf("Momentum = %v, above cap %v", got, c.cfg.MomentumCap)
	}
}

func TestChatIdleIsInert(t *testing.T) {
	c, rec := newTestChat(1)
	c.AddMomentum(5)
	c.ReactToDonation()
	c.ReactToSubscriber()
	c.Step(10)
	if len(rec.messages) != 0 {
		t.Fatalf("idle engine emitted %d messages", len(rec.messages))
	}
	if c.Momentum() != 0 {
		t.Fatalf("idle Momentum = %v, want 0", c.Momentum())
	}
}

func TestChatMomentumBonusApplied(t *testing.T) {
	rec := &chatRecorder{}
	cfg := DefaultConfig().Chat
	c := NewChatEngine(cfg, rand.New(rand.NewSource(1)), rec,
		ChatSources{MomentumBonus: func() float64 { return 2 }})
	c.Start("gaming", 10)
	c.momentum = 3
	if got := c.Momentum(); got != 5 {
		t.Fatalf("Momentum = %v, want base 3 plus bonus 2", got)
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}

func TestChatContextualLineTracksState(t *testing.T) {
	c, _ := newTestChat(3)
	c.Start("gaming", 10)

	c.viewers = 2
	if got := c.contextualLine(); !contains(lowViewerMessages, got) {
		t.Fatalf("tiny audience line %q not from the low-viewer pool", got)
	}

	c.viewers = 80
	if got := c.contextualLine(); !contains(highViewerMessages, got) {
		t.Fatalf("packed audience line %q not from the high-viewer pool", got)
	}

	c.viewers = 10
	c.clock = 200
	if got := c.contextualLine(); !contains(longStreamMessages, got) {
		t.Fatalf("marathon line %q not from the long-stream pool", got)
	}
}

func TestChatContextualLineLowEnergy(t *testing.T) {
	rec := &chatRecorder{}
	cfg := DefaultConfig().Chat
	c := NewChatEngine(cfg, rand.New(rand.NewSource(3)), rec,
		ChatSources{Energy: func() float64 { return 10 }})
	c.Start("gaming", 10)
	c.clock = 30
	if got := c.contextualLine(); !contains(lowEnergyMessages, got) {
		t.Fatalf("tired-streamer line %q not from the low-energy pool", got)
	}
}

func TestChatEmoteTokensRendered(t *testing.T) {
	c, _ := newTestChat(4)
	c.Start("gaming", 10)
	c.cfg.EmoteChance = 0 // no random append, mapping only
	got := c.addEmotes("that was a Kappa moment LUL")
	want := "that was a 😏 moment 😂"
	if got != want {
		t.Fatalf("addEmotes = %q, want %q", got, want)
	}
}

func TestChatEmoteAppend(t *testing.T) {
	c, _ := newTestChat(4)
	c.Start("gaming", 10)
	c.cfg.EmoteChance = 1
	got := c.addEmotes("nice")
	if got == "nice" {
		t.Fatalf("addEmotes with certain emote chance returned %q unchanged", got)
	}
}

func TestChatSubscriberBadge(t *testing.T) {
	rec := &chatRecorder{}
	cfg := DefaultConfig().Chat
	c := NewChatEngine(cfg, rand.New(rand.NewSource(5)), rec,
		ChatSources{Subscribers: func() int { return 1000 }})
	c.Start("gaming", 10)

	badged := 0
	for i := 0; i < 200; i++ {
		if strings.HasPrefix(c.username(), "[SUB] ") {
			badged++
		}
	}
	// 1000 subs caps the badge odds at a coin flip
	if badged < 50 || badged > 150 {
		t.Fatalf("badge on %d of 200 names, expected roughly half", badged)
	}

	c.src.Subscribers = func() int { return 0 }
	for i := 0; i < 200; i++ {
		if strings.HasPrefix(c.username(), "[SUB] ") {
			t.Fatal("badge shown on a channel with no subscribers")
		}
	}
}

func TestChatEventReactions(t *testing.T) {
	c, rec := newTestChat(2)
	c.Start("gaming", 10)
	c.ReactToEvent("raid")
	for i := 0; i < 30; i++ {
		c.Step(0.1)
	}
	found := false
	for _, msg := range rec.messages {
		for _, line := range eventReactions["raid"] {
			if msg == line {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("no raid reaction line emitted")
	}
}
