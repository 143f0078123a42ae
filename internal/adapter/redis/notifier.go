package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ChannelNotifications carries user-facing messages for the chat front end.
const ChannelNotifications = "trxclicker:notifications"

// Notification is the payload published on ChannelNotifications.
type Notification struct {
	ID      string    `json:"id"`
	UserID  int64     `json:"user_id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier publishes notifications over Redis pub/sub. Subscribers that are
// offline miss the message.
type Notifier struct {
	r       *redis.Client
	channel string
}

func NewNotifier(r *redis.Client) *Notifier {
	return &Notifier{r: r, channel: ChannelNotifications}
}

func (n *Notifier) Notify(ctx context.Context, userID int64, message string) error {
	b, err := json.Marshal(Notification{
		ID:      uuid.NewString(),
		UserID:  userID,
		Message: message,
		At:      time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return n.r.Publish(ctx, n.channel, b).Err()
}
