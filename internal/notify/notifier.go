// Package notify delivers the fire-and-forget messages the offer lifecycle
// produces. Delivery failures never reach the caller; they are routed to an
// operator alert sink.
package notify

// Recipient is the party a message is addressed to.
type Recipient struct {
	Name  string
	Email string
}

// Template keys for the messages this service sends.
const (
	TemplateOfferCreated  = "offer_created"  // to the proposition's responsible
	TemplateOfferAccepted = "offer_accepted" // to the offer's beneficiary
	TemplateOfferRejected = "offer_rejected" // to the offer's beneficiary
	TemplatePotClosed     = "pot_closed"     // to the pot's responsible
	TemplateOperatorAlert = "operator_alert" // to the operator address
)

// Context carries the values a template renders.
type Context map[string]string

// Notifier sends one message to one recipient.
type Notifier interface {
	Notify(recipient Recipient, templateKey string, ctx Context) error
}

// AlertSink receives operator alerts about failed deliveries.
type AlertSink interface {
	Alert(subject, detail string)
}
