package stream

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/kirari-dev/streamtycoon/tycoon/economy"
	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
)

// recorder captures display traffic for assertions.
type recorder struct {
	interfaces.NopDisplay
	notifications []string
	chatMessages  int
	streamType    string
	wrapHints     int
}

func (r *recorder) ShowNotification(msg string, _ interfaces.Severity) {
	r.notifications = append(r.notifications, msg)
}

func (r *recorder) AddChatMessage(string, string, string) { r.chatMessages++ }

func (r *recorder) UpdateStreamDisplay(streamType string) { r.streamType = streamType }

func (r *recorder) HighlightEndStream() { r.wrapHints++ }

func newTestSession(seed int64) (*Session, *economy.Player, *recorder) {
	cfg := DefaultConfig()
	player := economy.NewPlayer(economy.DefaultConfig(), economy.NopNotifier{})
	rec := &recorder{}
	return NewSession(&cfg, player, rec, rand.New(rand.NewSource(seed))), player, rec
}

func stepFor(s *Session, seconds float64) {
	for t := 0.0; t < seconds && s.Live(); t += 0.1 {
		s.Step(0.1)
	}
}

func TestStartGaming(t *testing.T) {
	s, player, rec := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatalf("Start(gaming) = %v", err)
	}
	if !s.Live() || s.TypeID() != "gaming" {
		t.Fatalf("session not live as gaming: live=%v type=%q", s.Live(), s.TypeID())
	}
	if s.Viewers() < 1 {
		t.Fatalf("Viewers = %d, want at least 1", s.Viewers())
	}
	if s.TargetDuration() < s.cfg.MinDuration || s.TargetDuration() > s.cfg.MaxDuration {
		t.Fatalf("TargetDuration = %v, outside [%v, %v]", s.TargetDuration(), s.cfg.MinDuration, s.cfg.MaxDuration)
	}
	if player.Money != player.Settings().StartingMoney {
		t.Fatalf("free stream type charged money: %d", player.Money)
	}
	if rec.streamType != "gaming" {
		t.Fatalf("display shows %q, want gaming", rec.streamType)
	}
}

func TestStartWhileLive(t *testing.T) {
	s, _, _ := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	if err := s.Start("justchatting"); !errors.Is(err, ErrAlreadyLive) {
		t.Fatalf("second Start = %v, want ErrAlreadyLive", err)
	}
}

func TestStartUnknownType(t *testing.T) {
	s, _, _ := newTestSession(1)
	if err := s.Start("cooking"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Start(cooking) = %v, want ErrUnknownType", err)
	}
}

func TestStartLockedType(t *testing.T) {
	s, player, _ := newTestSession(1)
	if err := s.Start("music"); !errors.Is(err, ErrTypeLocked) {
		t.Fatalf("Start(music) = %v, want ErrTypeLocked", err)
	}

	player.Subscribers = 25
	player.Money = 100
	if err := s.Start("music"); err != nil {
		t.Fatalf("Start(music) with 25 subs = %v", err)
	}
	if player.Money != 95 {
		t.Fatalf("music stream should cost 5, money = %d", player.Money)
	}
}

func TestStartPaidTypeWithoutMoney(t *testing.T) {
	s, player, _ := newTestSession(1)
	player.Subscribers = 25
	player.Money = 3
	if err := s.Start("music"); !errors.Is(err, ErrNotEnoughMoney) {
		t.Fatalf("Start(music) broke = %v, want ErrNotEnoughMoney", err)
	}
	if player.Money != 3 || s.Live() {
		t.Fatalf("failed start mutated state: money=%d live=%v", player.Money, s.Live())
	}
}

func TestStartExhausted(t *testing.T) {
	s, player, _ := newTestSession(1)
	player.Energy = player.Settings().MinStreamEnergy - 1
	if err := s.Start("gaming"); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Fatalf("Start with no energy = %v, want ErrNotEnoughEnergy", err)
	}
}

func TestStepDrainsEnergy(t *testing.T) {
	s, player, _ := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	before := player.Energy
	stepFor(s, 10)
	if player.Energy >= before {
		t.Fatalf("energy did not drain: %v -> %v", before, player.Energy)
	}
	if !s.Live() {
		t.Fatal("ten seconds should not exhaust a fresh player")
	}
}

func TestExhaustionForcesEnd(t *testing.T) {
	s, player, rec := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	player.Energy = 0.01
	stepFor(s, 5)
	if s.Live() {
		t.Fatal("session must force-end on exhaustion")
	}
	if rec.wrapHints != 0 {
		t.Fatalf("wrap-up hinted %d times well before the planned duration", rec.wrapHints)
	}
}

func TestEndIdempotent(t *testing.T) {
	s, _, _ := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	stepFor(s, 5)
	if _, ok := s.End(); !ok {
		t.Fatal("first End should settle")
	}
	if _, ok := s.End(); ok {
		t.Fatal("second End must be a no-op")
	}
}

func TestWrapUpHintAtTarget(t *testing.T) {
	s, _, rec := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	s.target = 3
	stepFor(s, 5)
	if rec.wrapHints != 1 {
		t.Fatalf("wrap-up hinted %d times crossing the planned duration, want 1", rec.wrapHints)
	}
	stepFor(s, 5)
	if rec.wrapHints != 1 {
		t.Fatalf("wrap-up re-hinted after the crossing: %d", rec.wrapHints)
	}
	if !s.Live() {
		t.Fatal("reaching the planned duration must not end the stream")
	}
}

func TestEndSettlesRewards(t *testing.T) {
	s, player, _ := newTestSession(7)
	player.Subscribers = 100
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	// run until exhaustion or the plan runs out
	for i := 0; i < 20000 && s.Live(); i++ {
		s.Step(0.1)
	}
	s.End()
	if player.Stats.StreamsCompleted != 1 {
		t.Fatalf("StreamsCompleted = %d, want 1", player.Stats.StreamsCompleted)
	}
	if player.Stats.TotalStreamTime <= 0 {
		t.Fatalf("TotalStreamTime = %v, want positive", player.Stats.TotalStreamTime)
	}
}

func TestOnEndedHook(t *testing.T) {
	s, _, _ := newTestSession(1)
	var got *Outcome
	s.OnEnded(func(out Outcome) { got = &out })
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	stepFor(s, 5)
	s.End()
	if got == nil {
		t.Fatal("OnEnded hook never fired")
	}
	if got.Telemetry.TypeID != "gaming" {
		t.Fatalf("outcome type = %q, want gaming", got.Telemetry.TypeID)
	}
}

func TestSwitchType(t *testing.T) {
	s, _, _ := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	stepFor(s, 5)
	if err := s.Switch("justchatting"); err != nil {
		t.Fatalf("Switch = %v", err)
	}
	if s.TypeID() != "justchatting" || !s.Live() {
		t.Fatalf("switch failed: type=%q live=%v", s.TypeID(), s.Live())
	}
}

func TestSwitchGuards(t *testing.T) {
	s, _, _ := newTestSession(1)
	if err := s.Switch("gaming"); !errors.Is(err, ErrNotLive) {
		t.Fatalf("Switch while idle = %v, want ErrNotLive", err)
	}
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	if err := s.Switch("music"); !errors.Is(err, ErrTypeLocked) {
		t.Fatalf("Switch to locked = %v, want ErrTypeLocked", err)
	}
	if err := s.Switch("gaming"); err != nil {
		t.Fatalf("Switch to self = %v, want nil", err)
	}
}

func TestChatFlowsWhileLive(t *testing.T) {
	s, _, rec := newTestSession(3)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	stepFor(s, 30)
	if rec.chatMessages == 0 {
		t.Fatal("thirty live seconds produced no chat")
	}
	count := rec.chatMessages
	s.End()
	s.Step(1) // idle steps must not emit
	if rec.chatMessages != count {
		t.Fatalf("chat emitted after end: %d -> %d", count, rec.chatMessages)
	}
}

func TestStepWhileIdle(t *testing.T) {
	s, player, _ := newTestSession(1)
	before := player.Energy
	s.Step(1)
	if player.Energy != before {
		t.Fatalf("idle Step drained energy: %v -> %v", before, player.Energy)
	}
}

func TestTriggerEventIdleNoop(t *testing.T) {
	s, _, _ := newTestSession(1)
	if s.TriggerEvent("raid") {
		t.Fatal("TriggerEvent must be a no-op while idle")
	}
}

func TestDonationAppliesMoneyMultiplier(t *testing.T) {
	s, player, _ := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	player.Mods.MoneyMultiplier = 2
	before := player.Money
	credited := s.recordDonation(10)
	if credited != 20 {
		t.Fatalf("credited %d from a $10 donation at 2x, want 20", credited)
	}
	if player.Money != before+20 {
		t.Fatalf("money %d -> %d, want +20", before, player.Money)
	}
	if s.Donated() != 20 {
		t.Fatalf("Donated = %d, want 20", s.Donated())
	}
}

func TestDonationChanceScales(t *testing.T) {
	s, player, _ := newTestSession(1)
	if err := s.Start("gaming"); err != nil {
		t.Fatal(err)
	}
	if got := s.donationChance(0); got != 0 {
		t.Fatalf("donationChance with no viewers = %v, want 0", got)
	}
	base := s.donationChance(10)
	if base <= 0 {
		t.Fatalf("donationChance(10) = %v, want positive", base)
	}
	player.Reputation = 100
	if got := s.donationChance(10); got <= base {
		t.Fatalf("reputation did not raise the roll: %v -> %v", base, got)
	}
}
