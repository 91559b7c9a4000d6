package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	mu   sync.Mutex
	fail bool
	sent []string
}

func (s *stubNotifier) Notify(recipient Recipient, templateKey string, ctx Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, templateKey)
	return nil
}

func (s *stubNotifier) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type stubAlertSink struct {
	mu     sync.Mutex
	alerts []string
}

func (s *stubAlertSink) Alert(subject, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, subject)
}

func (s *stubAlertSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.alerts)
}

func TestDispatcherDelivers(t *testing.T) {
	notifier := &stubNotifier{}
	alerts := &stubAlertSink{}
	dispatcher, err := NewDispatcher(notifier, alerts, 2)
	require.NoError(t, err)
	defer dispatcher.Release()

	err = dispatcher.Notify(Recipient{Name: "bob", Email: "bob@example.org"}, TemplateOfferCreated, Context{})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Zero(t, alerts.count())
}

func TestDispatcherRoutesFailuresToAlerts(t *testing.T) {
	notifier := &stubNotifier{fail: true}
	alerts := &stubAlertSink{}
	dispatcher, err := NewDispatcher(notifier, alerts, 2)
	require.NoError(t, err)
	defer dispatcher.Release()

	err = dispatcher.Notify(Recipient{Name: "bob", Email: "bob@example.org"}, TemplateOfferCreated, Context{})
	assert.NoError(t, err, "delivery failures never reach the caller")

	assert.Eventually(t, func() bool { return alerts.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := render("no_such_template", Recipient{}, Context{})
	assert.Error(t, err)
}
