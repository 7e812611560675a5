package notification

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

// ConsoleSender logs messages instead of delivering them and keeps a copy of
// each one for inspection.
type ConsoleSender struct {
	from       string
	subjPrefix string

	mu   sync.Mutex
	sent []Message
}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender(appName, fromEmail string) *ConsoleSender {
	return &ConsoleSender{
		from:       fromEmail,
		subjPrefix: "[" + appName + "] ",
	}
}

func (s *ConsoleSender) Send(ctx context.Context, msg Message) error {
	config.WithContext(ctx).WithFields(logrus.Fields{
		"from":    s.from,
		"to":      msg.ToEmail,
		"subject": s.subjPrefix + msg.Subject,
	}).Info(msg.Body)

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
