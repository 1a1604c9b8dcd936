package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// telegramSender is the slice of the Telegram bot API we use.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts booking notices to a fixed Telegram chat, for
// deployments where the hub chat is not wired up.
type TelegramNotifier struct {
	api     telegramSender
	chatID  int64
	limiter *rate.Limiter
}

// NewTelegramNotifier creates a notifier backed by a bot token.
func NewTelegramNotifier(token string, chatID int64, perMinute int) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{
		api:     api,
		chatID:  chatID,
		limiter: newLimiter(perMinute),
	}, nil
}

// Notify posts the message to the configured chat. The profile id is
// included so multi-user deployments can tell notices apart.
func (n *TelegramNotifier) Notify(ctx context.Context, profileID, message string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("[%s] %s", profileID, message))
	_, err := n.api.Send(msg)
	return err
}
