// Package interfaces defines the capability contracts between the simulation
// core and its outer shells (terminal, WebSocket UI, tests).
package interfaces

// Severity classifies a notification for the UI layer.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// StatsUpdate is a snapshot of the headline player counters, pushed to the
// display whenever one of them changes.
type StatsUpdate struct {
	Money       int64   `json:"money"`
	Subscribers int     `json:"subscribers"`
	Reputation  int     `json:"reputation"`
	Energy      float64 `json:"energy"`
	MaxEnergy   float64 `json:"max_energy"`
}

// Display is the notification sink the core drives. Implementations render
// state changes however they like; the simulation must behave identically if
// every method is a no-op.
type Display interface {
	UpdateStats(stats StatsUpdate)
	UpdateViewerCount(viewers int)
	UpdateStreamTimer(elapsed, target float64)
	UpdateStreamDisplay(streamType string)
	LogEvent(message string)
	ShowNotification(message string, severity Severity)
	ShowDonation(amount int64)
	AddChatMessage(username, text, color string)
	HighlightEndStream()
}

// NopDisplay is a Display that discards everything. Used headless and in tests.
type NopDisplay struct{}

var _ Display = NopDisplay{}

func (NopDisplay) UpdateStats(StatsUpdate)               {}
func (NopDisplay) UpdateViewerCount(int)                 {}
func (NopDisplay) UpdateStreamTimer(float64, float64)    {}
func (NopDisplay) UpdateStreamDisplay(string)            {}
func (NopDisplay) LogEvent(string)                       {}
func (NopDisplay) ShowNotification(string, Severity)     {}
func (NopDisplay) ShowDonation(int64)                    {}
func (NopDisplay) AddChatMessage(string, string, string) {}
func (NopDisplay) HighlightEndStream()                   {}
