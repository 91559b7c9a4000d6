package notify

import (
	"fmt"

	"github.com/blues/sps/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// Dispatcher runs deliveries on a worker pool so a slow SMTP server can
// never block a state transition. Delivery errors go to the alert sink.
// Dispatcher itself is a Notifier whose Notify always succeeds once the
// message is enqueued.
type Dispatcher struct {
	pool     *ants.Pool
	notifier Notifier
	alerts   AlertSink
}

// NewDispatcher creates a Dispatcher with the given pool size.
func NewDispatcher(notifier Notifier, alerts AlertSink, workers int) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification pool: %w", err)
	}
	return &Dispatcher{pool: pool, notifier: notifier, alerts: alerts}, nil
}

// Notify enqueues the delivery and returns immediately.
func (d *Dispatcher) Notify(recipient Recipient, templateKey string, ctx Context) error {
	err := d.pool.Submit(func() {
		if err := d.notifier.Notify(recipient, templateKey, ctx); err != nil {
			d.alerts.Alert(
				fmt.Sprintf("notification %s not delivered", templateKey),
				fmt.Sprintf("%s <%s>: %v", recipient.Name, recipient.Email, err),
			)
		}
	})
	if err != nil {
		// Pool saturated or released; the transition already happened, so
		// only the operator hears about it.
		d.alerts.Alert("notification not enqueued", fmt.Sprintf("%s: %v", templateKey, err))
	}
	return nil
}

// Release shuts down the worker pool.
func (d *Dispatcher) Release() {
	d.pool.Release()
}

// LogAlertSink writes alerts to the error log.
type LogAlertSink struct{}

// Alert logs the alert.
func (LogAlertSink) Alert(subject, detail string) {
	logger.Error("operator alert: %s: %s", subject, detail)
}

// MailAlertSink mails alerts to the operator address, falling back to the
// error log when that mail fails too.
type MailAlertSink struct {
	Notifier   Notifier
	AdminEmail string
}

// Alert delivers the alert to the operator.
func (s MailAlertSink) Alert(subject, detail string) {
	logger.Error("operator alert: %s: %s", subject, detail)
	if s.AdminEmail == "" {
		return
	}
	admin := Recipient{Name: "operator", Email: s.AdminEmail}
	if err := s.Notifier.Notify(admin, TemplateOperatorAlert, Context{
		"subject": subject,
		"detail":  detail,
	}); err != nil {
		logger.Error("operator alert mail failed: %v", err)
	}
}
