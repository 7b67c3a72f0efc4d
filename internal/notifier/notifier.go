package notifier

import (
	"github.com/sasgl/league-api/internal/leaderboard"
	"github.com/sasgl/league-api/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded results
	SendResultNotification(playerName, eventName string, recorded *stats.RecordedStats, dryRun bool) error
	// For club standings
	SendStandings(clubName string, standings []leaderboard.Standing, dryRun bool) error
}
