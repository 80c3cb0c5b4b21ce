// Package display provides Display implementations for the shells.
package display

import (
	"log/slog"

	"github.com/kirari-dev/streamtycoon/tycoon/interfaces"
)

// Console renders display updates through the structured logger. Chat and
// per-second timer updates are suppressed unless verbose, or a terminal
// session drowns in them.
type Console struct {
	Verbose bool
}

var _ interfaces.Display = (*Console)(nil)

func (c *Console) UpdateStats(stats interfaces.StatsUpdate) {
	if !c.Verbose {
		return
	}
	slog.Debug("stats",
		slog.Int64("money", stats.Money),
		slog.Int("subscribers", stats.Subscribers),
		slog.Int("reputation", stats.Reputation),
		slog.Float64("energy", stats.Energy))
}

func (c *Console) UpdateViewerCount(viewers int) {
	if c.Verbose {
		slog.Debug("viewers", slog.Int("count", viewers))
	}
}

func (c *Console) UpdateStreamTimer(elapsed, target float64) {}

func (c *Console) UpdateStreamDisplay(streamType string) {
	if streamType == "" {
		slog.Info("Now offline", slog.String("type", "stream"))
		return
	}
	slog.Info("Now live", slog.String("type", "stream"), slog.String("category", streamType))
}

func (c *Console) LogEvent(message string) {
	slog.Info(message, slog.String("type", "stream"))
}

func (c *Console) ShowNotification(message string, severity interfaces.Severity) {
	switch severity {
	case interfaces.SeverityError:
		slog.Error(message)
	case interfaces.SeverityWarning:
		slog.Warn(message)
	default:
		slog.Info(message)
	}
}

func (c *Console) ShowDonation(amount int64) {
	slog.Info("Donation received", slog.String("type", "econ"), slog.Int64("amount", amount))
}

func (c *Console) AddChatMessage(username, text, color string) {
	if c.Verbose {
		slog.Debug("chat", slog.String("user", username), slog.String("text", text))
	}
}

func (c *Console) HighlightEndStream() {
	slog.Info("Planned duration reached, consider wrapping up", slog.String("type", "stream"))
}
