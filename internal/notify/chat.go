package notify

import (
	"context"

	"golang.org/x/time/rate"
)

// ChatGateway is the hub chat surface used for notifications.
type ChatGateway interface {
	SendChatMessage(ctx context.Context, profileID, text string) error
}

// ChatNotifier sends a direct hub chat message to the booked profile.
type ChatNotifier struct {
	chat    ChatGateway
	limiter *rate.Limiter
}

// NewChatNotifier creates a notifier limited to perMinute messages.
func NewChatNotifier(chat ChatGateway, perMinute int) *ChatNotifier {
	return &ChatNotifier{
		chat:    chat,
		limiter: newLimiter(perMinute),
	}
}

// Notify sends the message, waiting for the rate limiter first.
func (n *ChatNotifier) Notify(ctx context.Context, profileID, message string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	return n.chat.SendChatMessage(ctx, profileID, message)
}
