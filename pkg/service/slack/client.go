package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

const (
	// DefaultTimeout bounds a single chat.postMessage call
	DefaultTimeout = 10 * time.Second

	// maxSectionText is Slack's limit for a section block text
	maxSectionText = 3000
)

type client struct {
	api     *slack.Client
	channel string
	timeout time.Duration
}

// Option is a functional option for client configuration
type Option func(*client, *[]slack.Option)

// WithTimeout sets the timeout for a single notification
func WithTimeout(d time.Duration) Option {
	return func(c *client, _ *[]slack.Option) {
		c.timeout = d
	}
}

// WithAPIURL points the client at another Slack API base URL. The URL must end with a slash.
func WithAPIURL(url string) Option {
	return func(_ *client, opts *[]slack.Option) {
		*opts = append(*opts, slack.OptionAPIURL(url))
	}
}

// New creates a Slack notifier posting to channel with the provided bot token
func New(token, channel string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	c := &client{
		channel: channel,
		timeout: DefaultTimeout,
	}

	var apiOpts []slack.Option
	for _, opt := range opts {
		opt(c, &apiOpts)
	}
	c.api = slack.New(token, apiOpts...)

	return c, nil
}

// Notify posts the notice as Block Kit with a plain text fallback
func (c *client) Notify(ctx context.Context, notice *Notice) (string, error) {
	if notice == nil {
		return "", goerr.New("notice is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, ts, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionBlocks(BuildBlocks(notice)...),
		slack.MsgOptionText(FallbackText(notice), false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post slack message",
			goerr.V("channel", c.channel),
			goerr.V("submission_id", notice.SubmissionID.String()),
		)
	}

	return ts, nil
}

// FallbackText is the notification text shown by clients that cannot render blocks
func FallbackText(notice *Notice) string {
	return fmt.Sprintf("%s SMART record for %s: %s", notice.Type.Header(), notice.Client, notice.Title)
}

// BuildBlocks renders the notice as Slack blocks
func BuildBlocks(notice *Notice) []slack.Block {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, truncate(FallbackText(notice), 150), false, false),
	)

	tech := notice.Technology
	if tech == "" {
		tech = "-"
	}
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Client*\n"+notice.Client, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Technology*\n"+tech, false, false),
	}
	summary := slack.NewSectionBlock(nil, fields, nil)

	blocks := []slack.Block{header, summary}

	if notice.SmartComment != "" {
		comment := slack.NewTextBlockObject(slack.MarkdownType, truncate(notice.SmartComment, maxSectionText), false, false)
		blocks = append(blocks, slack.NewSectionBlock(comment, nil, nil))
	}

	if notice.Page != nil && notice.Page.URL != "" {
		link := slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("<%s|Open in Notion>", notice.Page.URL), false, false)
		blocks = append(blocks, slack.NewContextBlock("", link))
	}

	return blocks
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
