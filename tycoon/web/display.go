package web

import "github.com/kirari-dev/streamtycoon/tycoon/interfaces"

// Display broadcasts every display update as a typed frame so any number
// of connected frontends render the same game.
type Display struct {
	hub *Hub
}

func NewDisplay(hub *Hub) *Display {
	return &Display{hub: hub}
}

var _ interfaces.Display = (*Display)(nil)

func (d *Display) UpdateStats(stats interfaces.StatsUpdate) {
	d.hub.Broadcast("stats", stats)
}

func (d *Display) UpdateViewerCount(viewers int) {
	d.hub.Broadcast("viewers", map[string]int{"count": viewers})
}

func (d *Display) UpdateStreamTimer(elapsed, target float64) {
	d.hub.Broadcast("timer", map[string]float64{"elapsed": elapsed, "target": target})
}

func (d *Display) UpdateStreamDisplay(streamType string) {
	d.hub.Broadcast("stream", map[string]string{"type": streamType})
}

func (d *Display) LogEvent(name string) {
	d.hub.Broadcast("event", map[string]string{"name": name})
}

func (d *Display) ShowNotification(msg string, severity interfaces.Severity) {
	d.hub.Broadcast("notification", map[string]string{
		"message":  msg,
		"severity": string(severity),
	})
}

func (d *Display) ShowDonation(amount int64) {
	d.hub.Broadcast("donation", map[string]int64{"amount": amount})
}

func (d *Display) AddChatMessage(username, text, color string) {
	d.hub.Broadcast("chat", map[string]string{
		"username": username,
		"text":     text,
		"color":    color,
	})
}

func (d *Display) HighlightEndStream() {
	d.hub.Broadcast("end_stream_hint", nil)
}
