package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"leadscout/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier sends lead alerts to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts each new lead to Slack via
// webhook.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends each lead as a separate Slack message using Block Kit.
// Returns an error only if ALL messages fail. Individual failures are logged.
func (s *SlackNotifier) Notify(leads []model.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	failures := 0
	for i, l := range leads {
		if i > 0 {
			time.Sleep(500 * time.Millisecond)
		}

		if err := s.sendMessage(l); err != nil {
			s.logger.Error("slack notification failed", "id", l.ID, "title", l.Title, "error", err)
			failures++
		}
	}

	sent := len(leads) - failures
	if failures == len(leads) {
		return fmt.Errorf("all %d slack notifications failed", failures)
	}
	s.logger.Info("slack notifications complete", "sent", sent, "failed", failures)
	return nil
}

func (s *SlackNotifier) sendMessage(l model.Lead) error {
	body, err := json.Marshal(buildPayload(l))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := resp.Header.Get("Retry-After")
		secs, _ := strconv.Atoi(retryAfter)
		if secs <= 0 {
			secs = 1
		}
		s.logger.Warn("slack rate limited, retrying", "retry_after_secs", secs)
		time.Sleep(time.Duration(secs) * time.Second)

		resp2, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("post to slack (retry): %w", err)
		}
		defer resp2.Body.Close()

		if resp2.StatusCode != http.StatusOK {
			return fmt.Errorf("slack returned %d on retry", resp2.StatusCode)
		}
		s.logger.Info("slack message sent", "id", l.ID, "title", l.Title, "retried", true)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}
	s.logger.Info("slack message sent", "id", l.ID, "title", l.Title)
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Fields   []slackText    `json:"fields,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style"`
}

func buildPayload(l model.Lead) slackPayload {
	header := slackBlock{
		Type: "header",
		Text: &slackText{Type: "plain_text", Text: ":dart: New lead: " + l.Title},
	}

	fields := []slackText{
		{Type: "mrkdwn", Text: "*Company:*\n" + orDash(l.CompanyName)},
		{Type: "mrkdwn", Text: "*Location:*\n" + orDash(l.Location)},
	}
	if l.Keywords != "" {
		fields = append(fields, slackText{Type: "mrkdwn", Text: "*Keywords:*\n" + l.Keywords})
	}
	section := slackBlock{Type: "section", Fields: fields}

	blocks := []slackBlock{header, section}
	if l.SourceURL != "" {
		blocks = append(blocks, slackBlock{
			Type: "actions",
			Elements: []slackElement{{
				Type:  "button",
				Text:  slackText{Type: "plain_text", Text: "View posting"},
				URL:   l.SourceURL,
				Style: "primary",
			}},
		})
	}
	return slackPayload{Blocks: blocks}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
