// internal/telegram/adapter.go

// Package telegram bridges Telegram long-polling to the dispatch queue.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dhirajp15/dhirux-workflows/internal/dispatch"
	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

const maxTelegramMessage = 4096

// Adapter bridges Telegram chats to the dispatch queue.
type Adapter struct {
	bot         *tgbotapi.BotAPI
	queue       *dispatch.Queue
	sessions    types.SessionStore
	transcripts types.TranscriptStore
}

// New creates a Telegram adapter.
func New(token string, queue *dispatch.Queue, sessions types.SessionStore, transcripts types.TranscriptStore) (*Adapter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return &Adapter{
		bot:         bot,
		queue:       queue,
		sessions:    sessions,
		transcripts: transcripts,
	}, nil
}

// Start begins long-polling for Telegram updates.
func (a *Adapter) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			a.handleMessage(ctx, update.Message)
		case <-ctx.Done():
			a.bot.StopReceivingUpdates()
			return
		}
	}
}

func (a *Adapter) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		a.handleCommand(ctx, msg)
		return
	}

	chatID := msg.Chat.ID
	key := buildSessionKey(msg.From.ID, msg.Chat.ID)

	sessionID, err := a.sessions.ResolveOrCreate(ctx, key)
	if err != nil {
		slog.Error("resolve telegram session failed", "session_key", key, "error", err)
		a.sendResponse(chatID, "Sorry, I encountered an error processing your message.")
		return
	}

	turn := dispatch.NewTurn(sessionID, msg.Text, "telegram")
	turn.OnComplete = func(response string) {
		a.sendResponse(chatID, response)
	}
	if err := a.queue.Enqueue(turn); err != nil {
		slog.Error("enqueue telegram turn failed", "session_id", sessionID, "error", err)
		a.sendResponse(chatID, "Sorry, I'm handling too many messages right now. Please try again shortly.")
	}
}

func (a *Adapter) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		a.sendResponse(chatID, "Hello! I'm Dhirux, your workflow assistant. Send me a message, or ask me what time it is.")

	case "status":
		key := buildSessionKey(msg.From.ID, msg.Chat.ID)
		sid, err := a.sessions.ResolveOrCreate(ctx, key)
		if err != nil {
			a.sendResponse(chatID, "Error fetching status.")
			return
		}
		count, err := a.transcripts.Count(ctx, sid)
		if err != nil {
			a.sendResponse(chatID, "Error fetching status.")
			return
		}
		a.sendResponse(chatID, fmt.Sprintf("Session: %s\nTurns: %d", sid, count))

	default:
		a.sendResponse(chatID, "Unknown command. Available: /start, /status")
	}
}

// DeliveryHandler returns a delivery.Handler-compatible function that
// routes responses for "telegram:<user>:<chat>" session keys back to
// the originating chat.
func (a *Adapter) DeliveryHandler() func(key types.SessionKey, message string) error {
	return func(key types.SessionKey, message string) error {
		parts := strings.Split(string(key), ":")
		if len(parts) != 3 {
			return fmt.Errorf("malformed telegram session key: %s", key)
		}
		chatID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return fmt.Errorf("parse chat id from %s: %w", key, err)
		}
		a.sendResponse(chatID, message)
		return nil
	}
}

func (a *Adapter) sendResponse(chatID int64, text string) {
	parts := splitMessage(text)
	for _, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = "Markdown"
		if _, err := a.bot.Send(msg); err != nil {
			// Retry without markdown if it fails
			msg.ParseMode = ""
			if _, err := a.bot.Send(msg); err != nil {
				slog.Error("telegram send failed", "chat_id", chatID, "error", err)
			}
		}
	}
}

func splitMessage(text string) []string {
	if len(text) <= maxTelegramMessage {
		return []string{text}
	}
	var parts []string
	for len(text) > 0 {
		end := maxTelegramMessage
		if end > len(text) {
			end = len(text)
		}
		parts = append(parts, text[:end])
		text = text[end:]
	}
	return parts
}

func buildSessionKey(userID, chatID int64) types.SessionKey {
	return types.NewSessionKey("telegram",
		strconv.FormatInt(userID, 10),
		strconv.FormatInt(chatID, 10),
	)
}
