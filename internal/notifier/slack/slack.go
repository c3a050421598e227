package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/metrics"
	"github.com/jmalvarez/dice-ranking/internal/notifier"
	"github.com/jmalvarez/dice-ranking/internal/ranking"
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

// Implement the Notifier interface
func (s *Notifier) SendResultNotification(game *ledger.Game, playerName string, dryRun bool) error {
	msg := s.formatResultNotification(game, playerName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendRanking(snapshot *ranking.Snapshot, dryRun bool) error {
	msg := s.formatRanking(snapshot)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatRankingResponse formats a ranking message for a slash command response.
func (s *Notifier) FormatRankingResponse(snapshot *ranking.Snapshot) (any, error) {
	return s.formatRanking(snapshot), nil
}

// formatResultNotification creates the Slack message for a resolved roll using Block Kit.
func (s *Notifier) formatResultNotification(game *ledger.Game, playerName string) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	var headerText *slack.TextBlockObject
	if game.Result {
		headerText = slack.NewTextBlockObject("plain_text", "🎲 Doubles! We have a winner! 🎲", true, false)
	} else {
		headerText = slack.NewTextBlockObject("plain_text", "🎲 Roll resolved 🎲", true, false)
	}
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details
	outcome := "lost"
	if game.Result {
		outcome = "won"
	}
	detailsText := fmt.Sprintf("%s rolled %d and %d and %s", playerName, game.Dice1, game.Dice2, outcome)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Context
	timeStr := time.Unix(0, game.CreatedAt).Format("Monday 02 Jan, 15:04")
	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Played at %s", timeStr), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatRanking creates a Slack message to display the ranking.
func (s *Notifier) formatRanking(snapshot *ranking.Snapshot) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Dice Ranking 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if snapshot == nil || !snapshot.HasData {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No games played yet. Go roll some dice!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	// Player Ranks
	for i, entry := range snapshot.Entries {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Win %%: %.1f%% (%d/%d)",
			rank,
			medal,
			entry.PlayerName,
			entry.WinPercentage,
			entry.Wins,
			entry.TotalGames,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	// Context
	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Average success rate: %.1f%%", snapshot.AverageSuccessRate), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}
