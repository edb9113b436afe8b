package telegram

import (
	"context"
	"html"
	"regexp"

	"github.com/minerepair/repairhub/internal/application/notification"
)

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// formatHTML renders a notification as Telegram HTML. Only **bold** is
// carried over from the Markdown body; everything else is escaped.
func formatHTML(msg notification.Message) string {
	body := boldPattern.ReplaceAllString(html.EscapeString(msg.Body), "<b>$1</b>")
	if msg.Subject == "" {
		return body
	}
	return "<b>" + html.EscapeString(msg.Subject) + "</b>\n\n" + body
}

// Channel delivers notifications to users with a linked Telegram chat.
type Channel struct {
	bot *BotService
}

func NewChannel(bot *BotService) *Channel {
	return &Channel{bot: bot}
}

func (c *Channel) Name() string { return "telegram" }

func (c *Channel) Deliver(ctx context.Context, target notification.Target, msg notification.Message) error {
	if target.ChatID == nil {
		return notification.ErrNoAddress
	}
	return c.bot.SendMessage(ctx, *target.ChatID, formatHTML(msg))
}

// Broadcaster posts to the shared contractor channel.
type Broadcaster struct {
	bot       *BotService
	channelID int64
}

func NewBroadcaster(bot *BotService, channelID int64) *Broadcaster {
	return &Broadcaster{bot: bot, channelID: channelID}
}

func (b *Broadcaster) Broadcast(ctx context.Context, msg notification.Message) error {
	return b.bot.SendMessage(ctx, b.channelID, formatHTML(msg))
}
