// Package notify delivers reminder messages produced by the reminder
// service. The data layer's only obligation toward it is accurate
// persisted completion timestamps; delivery is pluggable.
package notify

import "context"

// Message is one notification to present to the user.
type Message struct {
	Title string
	Body  string
	// TodoID identifies the todo the message is about, empty for
	// summaries.
	TodoID string
}

// Notifier delivers messages to the user.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
