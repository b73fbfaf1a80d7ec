// Package notify delivers operator and customer notifications over a
// chat-ops channel and email. Delivery is best-effort: failures are logged and
// reported as false, never returned to the request that triggered them.
package notify

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("notify: channel not configured")
	ErrNothingToSend = errors.New("notify: nothing to send")
)

// Notification carries both renderings of one event. Each channel reads only
// its own fields; an empty EmailTo skips the email channel.
type Notification struct {
	Kind string `json:"kind"`
	Ref  string `json:"ref"`

	ChatText string `json:"chat_text"`

	EmailTo      string `json:"email_to,omitempty"`
	EmailSubject string `json:"email_subject,omitempty"`
	EmailHTML    string `json:"email_html,omitempty"`
}

// Sender is one delivery channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Enqueuer hands a notification to an out-of-process worker.
type Enqueuer interface {
	Enqueue(ctx context.Context, n Notification) error
}

// Result reports which channels accepted the notification. Failed is set
// when a configured channel tried and errored; skipped channels leave it unset.
type Result struct {
	ChatOps bool `json:"chat_ops"`
	Email   bool `json:"email"`
	Failed  bool `json:"failed"`
}
