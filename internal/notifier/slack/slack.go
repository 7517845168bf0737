package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/diegohideky/poker-shark/internal/metrics"
	"github.com/diegohideky/poker-shark/internal/money"
	"github.com/diegohideky/poker-shark/internal/notifier"
	"github.com/diegohideky/poker-shark/internal/poker"
	"github.com/diegohideky/poker-shark/internal/ranking"
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
	formatter *money.Formatter
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, formatter *money.Formatter, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		formatter: formatter,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, formatter *money.Formatter, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		formatter: formatter,
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
func (s *Notifier) SendResultNotification(match *poker.Match, entries []ranking.ComparedEntry, dryRun bool) error {
	msg := s.formatResultNotification(match, entries)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendRanking(entries []ranking.ComparedEntry, dryRun bool) error {
	msg := s.formatRanking(entries)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatRankingResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatRankingResponse(entries []ranking.ComparedEntry) (any, error) {
	return s.formatRanking(entries), nil
}

func trendEmoji(status ranking.Status) string {
	switch status {
	case ranking.StatusUp:
		return "⬆️"
	case ranking.StatusDown:
		return "⬇️"
	default:
		return "➖"
	}
}

func medal(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", position)
	}
}

// formatRanking creates the Slack message for the leaderboard using Block Kit.
func (s *Notifier) formatRanking(entries []ranking.ComparedEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🃏 Poker Ranking 🃏", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "No matches played yet. Shuffle up and deal!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s %s %s: %s (%d matches, 🪙 %d)",
			medal(e.Position), trendEmoji(e.Status), e.Name,
			s.formatter.FormatCurrency(e.Score), e.Matches, e.Coins))
	}
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatResultNotification creates the Slack message for a finished match
// followed by the refreshed leaderboard.
func (s *Notifier) formatResultNotification(match *poker.Match, entries []ranking.ComparedEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🃏 Match finished! 🃏", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	name := match.Name
	if name == "" {
		name = "Poker Table"
	}
	detailsText := fmt.Sprintf("%s on %s", name, match.Datetime.Format("Monday 02 Jan, 15:04"))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	if len(entries) > 0 {
		var lines []string
		for _, e := range entries {
			diff := e.LastScoreDiff
			lines = append(lines, fmt.Sprintf("%s %s: %s (night: %s)",
				medal(e.Position), e.Name,
				s.formatter.FormatCurrency(e.Score), money.FormatScore(diff)))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "Standings:\n"+strings.Join(lines, "\n"), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
