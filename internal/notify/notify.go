// Package notify pushes complaint activity to the municipal operations
// Telegram channel, so officers hear about new and resolved complaints
// without watching the dashboard.
package notify

import (
	"fmt"
	"log"

	"nagarrakshak/backend/internal/models"
	"nagarrakshak/backend/internal/routing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends alerts to a single operations chat. A nil *Notifier is a
// valid no-op, so callers never need to branch on whether alerts are
// configured.
type Notifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewNotifier authorizes the bot. Returns (nil, nil) when token or chat ID
// are unset, which disables alerts.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)
	return &Notifier{BotAPI: bot, ChatID: chatID}, nil
}

// ComplaintRegistered announces a freshly submitted complaint.
func (n *Notifier) ComplaintRegistered(c *models.Complaint) {
	if n == nil {
		return
	}
	label := c.IssueType
	if it, ok := routing.Lookup(c.IssueType); ok {
		label = it.Label
	}
	text := fmt.Sprintf("🆕 *New complaint %s*\n%s — %s, %s\nForwarded to: %s",
		c.ComplaintCode, label, c.City, c.State, routing.AuthorityFor(c.IssueType))
	n.send(text)
}

// StatusChanged announces a lifecycle move made during admin triage.
func (n *Notifier) StatusChanged(c *models.Complaint, upd *models.StatusUpdate) {
	if n == nil {
		return
	}
	text := fmt.Sprintf("📋 *Complaint %s* is now *%s*", c.ComplaintCode, upd.Status)
	if upd.AssignedTo != "" {
		text += "\nAssigned to: " + upd.AssignedTo
	}
	if upd.Note != "" {
		text += "\n" + upd.Note
	}
	n.send(text)
}

func (n *Notifier) send(text string) {
	msg := tgbotapi.NewMessage(n.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send Telegram alert: %v", err)
	}
}
