package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sasgl/league-api/internal/leaderboard"
	"github.com/sasgl/league-api/internal/metrics"
	"github.com/sasgl/league-api/internal/notifier"
	"github.com/sasgl/league-api/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// SendResultNotification announces a freshly recorded round and the player's
// updated totals.
func (s *Notifier) SendResultNotification(playerName, eventName string, recorded *stats.RecordedStats, dryRun bool) error {
	msg := s.formatResultNotification(playerName, eventName, recorded)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// SendStandings posts a club's current best-rounds leaderboard.
func (s *Notifier) SendStandings(clubName string, standings []leaderboard.Standing, dryRun bool) error {
	msg := s.formatStandings(clubName, standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatResultNotification creates the Slack message for a recorded result using Block Kit.
func (s *Notifier) formatResultNotification(playerName, eventName string, recorded *stats.RecordedStats) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⛳ New round recorded! ⛳", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := fmt.Sprintf("*%s* posted *%d points* in *%s*.\nEvent total: %d points over %d rounds (avg %.1f).",
		playerName, recorded.Event.Points, eventName,
		recorded.Event.Points, recorded.Event.GamesPlayed, recorded.Event.AvgPoints)
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", details, false, false), nil, nil))

	career := fmt.Sprintf("Career: %d games, %d points, %d birdies.",
		recorded.User.TotalGames, recorded.User.TotalPoints, recorded.User.TotalBirdies)
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn", career, false, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates the Slack message for a club leaderboard using Block Kit.
func (s *Notifier) formatStandings(clubName string, standings []leaderboard.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text",
		fmt.Sprintf("🏆 %s standings 🏆", clubName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("mrkdwn", "No submitted rounds yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var body string
	for i, st := range standings {
		medal := ""
		switch i {
		case 0:
			medal = "🥇 "
		case 1:
			medal = "🥈 "
		case 2:
			medal = "🥉 "
		}
		body += fmt.Sprintf("%s*%d. %s* — %d points (%d counted rounds)\n",
			medal, i+1, st.Name, st.Total, len(st.Scores))
	}
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", body, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
