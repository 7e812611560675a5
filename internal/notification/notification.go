// Package notification delivers transactional email. Delivery never fails
// the caller: errors are logged and dropped.
package notification

import (
	"context"
	"time"

	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

const sendTimeout = 5 * time.Second

type Message struct {
	Subject string
	Body    string
	ToEmail string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Notify sends msg with a bounded timeout and only logs failures.
func (n *Notifier) Notify(ctx context.Context, msg Message) {
	log := config.WithContext(ctx).WithField("subject", msg.Subject)
	if n == nil || n.sender == nil {
		return
	}
	if msg.ToEmail == "" {
		log.Warn("Skipping notification without recipient")
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	if err := n.sender.Send(sendCtx, msg); err != nil {
		log.WithError(err).Error("Failed to send notification")
		return
	}
	log.Debug("Notification sent")
}

// NewSender picks SendGrid when an API key is configured and the console
// sender otherwise.
func NewSender() Sender {
	appName := config.Conf.GetString("APP_NAME")
	from := config.Conf.GetString("DEFAULT_FROM_EMAIL")
	if key := config.Conf.GetString("SENDGRID_API_KEY"); key != "" {
		return NewSendgridSender(key, appName, from)
	}
	return NewConsoleSender(appName, from)
}
