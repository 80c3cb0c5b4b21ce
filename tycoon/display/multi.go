package display

import "github.com/kirari-dev/streamtycoon/tycoon/interfaces"

// Multi fans every display call out to several sinks, so the console and
// the websocket frontend can watch the same game.
type Multi []interfaces.Display

var _ interfaces.Display = Multi{}

func (m Multi) UpdateStats(stats interfaces.StatsUpdate) {
	for _, d := range m {
		d.UpdateStats(stats)
	}
}

func (m Multi) UpdateViewerCount(viewers int) {
	for _, d := range m {
		d.UpdateViewerCount(viewers)
	}
}

func (m Multi) UpdateStreamTimer(elapsed, target float64) {
	for _, d := range m {
		d.UpdateStreamTimer(elapsed, target)
	}
}

func (m Multi) UpdateStreamDisplay(streamType string) {
	for _, d := range m {
		d.UpdateStreamDisplay(streamType)
	}
}

func (m Multi) LogEvent(message string) {
	for _, d := range m {
		d.LogEvent(message)
	}
}

func (m Multi) ShowNotification(message string, severity interfaces.Severity) {
	for _, d := range m {
		d.ShowNotification(message, severity)
	}
}

func (m Multi) ShowDonation(amount int64) {
	for _, d := range m {
		d.ShowDonation(amount)
	}
}

func (m Multi) AddChatMessage(username, text, color string) {
	for _, d := range m {
		d.AddChatMessage(username, text, color)
	}
}

func (m Multi) HighlightEndStream() {
	for _, d := range m {
		d.HighlightEndStream()
	}
}
