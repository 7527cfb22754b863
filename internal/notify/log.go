package notify

import (
	"context"
	"log"
)

// LogNotifier writes messages to the process log. It is the fallback
// sink when no Telegram credentials are configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, msg Message) error {
	log.Printf("[notify] %s: %s", msg.Title, msg.Body)
	return nil
}
