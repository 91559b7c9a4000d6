package notify

import (
	"fmt"

	"github.com/blues/sps/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer is the SMTP Notifier.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer creates a Mailer from SMTP config.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Notify renders the template and sends it to the recipient.
func (m *Mailer) Notify(recipient Recipient, templateKey string, ctx Context) error {
	subject, body, err := render(templateKey, recipient, ctx)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %s to %s: %w", templateKey, recipient.Email, err)
	}
	return nil
}

func render(templateKey string, recipient Recipient, ctx Context) (subject, body string, err error) {
	switch templateKey {
	case TemplateOfferCreated:
		subject = "New offer on your proposition!"
		body = fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>%s offered %s on your proposition <b>%s</b>.</p>
			<p>Log in to accept or reject it.</p>
		`, recipient.Name, ctx["beneficiary"], ctx["price"], ctx["proposition"])
	case TemplateOfferAccepted:
		subject = "Your offer has been accepted!"
		body = fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>Your offer of %s on <b>%s</b> has been accepted by %s.</p>
		`, recipient.Name, ctx["price"], ctx["proposition"], ctx["responsible"])
	case TemplateOfferRejected:
		subject = "Your offer has been rejected"
		body = fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>Your offer of %s on <b>%s</b> has been rejected by %s.</p>
		`, recipient.Name, ctx["price"], ctx["proposition"], ctx["responsible"])
	case TemplatePotClosed:
		subject = "Your pot has closed"
		body = fmt.Sprintf(`
			<p>Hello %s,</p>
			<p>The purchase deadline of your pot <b>%s</b> has passed.</p>
			<p>Accepted offers: %s, collected so far: %s.</p>
		`, recipient.Name, ctx["pot"], ctx["sum_validated"], ctx["sum_collected"])
	case TemplateOperatorAlert:
		subject = fmt.Sprintf("[sps] %s", ctx["subject"])
		body = fmt.Sprintf("<pre>%s</pre>", ctx["detail"])
	default:
		return "", "", fmt.Errorf("unknown notification template: %s", templateKey)
	}
	return subject, body, nil
}
