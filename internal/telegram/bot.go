// Package telegram connects the bot to Telegram via long polling
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

// RespondFunc posts text back to the chat a message came from
type RespondFunc func(text string, silent bool)

// MessageHandler is called for every text message the bot sees
type MessageHandler func(ctx context.Context, chatID int64, userID int64, text string, respond RespondFunc)

// Bot wraps the Telegram bot functionality
type Bot struct {
	bot     *gotgbot.Bot
	updater *ext.Updater
	handler MessageHandler
	logger  *slog.Logger
}

// New creates a new Telegram bot
func New(token string, logger *slog.Logger) (*Bot, error) {
	// Create HTTP client with longer timeout for long-polling
	httpClient := http.Client{
		Timeout: 60 * time.Second,
	}

	bot, err := gotgbot.NewBot(token, &gotgbot.BotOpts{
		BotClient: &gotgbot.BaseBotClient{
			Client: httpClient,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	return &Bot{
		bot:    bot,
		logger: logger,
	}, nil
}

// SetHandler sets the message handler function
func (b *Bot) SetHandler(h MessageHandler) {
	b.handler = h
}

// Start begins polling for updates and blocks until context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			b.logger.Error("dispatcher error", "error", err)
			return ext.DispatcherActionNoop
		},
	})

	b.updater = ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewMessage(nil, func(bot *gotgbot.Bot, ectx *ext.Context) error {
		return b.handleMessage(ctx, ectx)
	}))

	err := b.updater.StartPolling(b.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout:        30,
			AllowedUpdates: []string{"message"},
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 60 * time.Second,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("starting polling: %w", err)
	}

	b.logger.Info("telegram bot started", "username", b.bot.Username)

	// Wait for context cancellation
	<-ctx.Done()

	b.updater.Stop()
	b.logger.Info("telegram bot stopped")

	return nil
}

// handleMessage forwards one incoming text message to the handler
func (b *Bot) handleMessage(ctx context.Context, ectx *ext.Context) error {
	msg := ectx.EffectiveMessage
	if msg == nil || msg.Text == "" || b.handler == nil {
		return nil
	}

	chatID := msg.Chat.Id
	var userID int64
	if msg.From != nil {
		userID = msg.From.Id
	}

	b.logger.Debug("received message",
		"user_id", userID,
		"chat_id", chatID,
		"text_length", len(msg.Text),
	)

	respond := func(text string, silent bool) {
		if err := b.SendMessage(chatID, text, silent); err != nil {
			b.logger.Error("failed to send message",
				"chat_id", chatID,
				"error", err,
			)
		}
	}

	b.handler(ctx, chatID, userID, msg.Text, respond)
	return nil
}

// SendMessage sends a plain text message to a chat
func (b *Bot) SendMessage(chatID int64, text string, silent bool) error {
	_, err := b.bot.SendMessage(chatID, text, &gotgbot.SendMessageOpts{
		DisableNotification: silent,
	})
	return err
}
