package email

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/config"
)

type recordingSender struct {
	messages []*gomail.Message
	err      error
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	r.messages = append(r.messages, m...)
	return r.err
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func testNotice() SubscriptionNotice {
	return SubscriptionNotice{
		To:             "billing@acme.test",
		ClientName:     "Acme",
		PlanName:       "HRMS Standard",
		SubscriptionID: 12,
		StartDate:      biztime.Date(2026, time.January, 1),
		EndDate:        biztime.Date(2026, time.April, 1),
		NumUsers:       20,
		FinalAmount:    "11940.00",
		Currency:       "INR",
	}
}

func TestSendSubscriptionCreated(t *testing.T) {
	sender := &recordingSender{}
	svc := NewEmailServiceWithSender(config.EmailConfig{FromAddress: "noreply@backoffice.test", FromName: "Billing"}, sender)

	require.NoError(t, svc.SendSubscriptionCreated(testNotice()))
	require.Len(t, sender.messages, 1)

	m := sender.messages[0]
	assert.Equal(t, []string{"billing@acme.test"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Your HRMS Standard subscription is confirmed"}, m.GetHeader("Subject"))

	body := render(t, m)
	assert.Contains(t, body, "2026-01-01 to 2026-04-01")
	assert.Contains(t, body, "INR 11940.00")
}

func TestSendSubscriptionCancelled_IncludesReason(t *testing.T) {
	sender := &recordingSender{}
	svc := NewEmailServiceWithSender(config.EmailConfig{FromAddress: "noreply@backoffice.test"}, sender)

	n := testNotice()
	n.Reason = "moved"
	require.NoError(t, svc.SendSubscriptionCancelled(n))
	require.Len(t, sender.messages, 1)
	assert.Contains(t, render(t, sender.messages[0]), "Reason: moved")
}

func TestSendPaymentReceipt(t *testing.T) {
	sender := &recordingSender{}
	svc := NewEmailServiceWithSender(config.EmailConfig{FromAddress: "noreply@backoffice.test"}, sender)

	err := svc.SendPaymentReceipt(PaymentNotice{
		To:            "billing@acme.test",
		ClientName:    "Acme",
		ReceiptNumber: "rcpt_20260101_abc",
		Amount:        "11940.00",
		Currency:      "INR",
		Method:        "upi",
		PaidAt:        time.Date(2026, time.January, 1, 6, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"Payment receipt rcpt_20260101_abc"}, sender.messages[0].GetHeader("Subject"))
}

func TestSendEmail_Errors(t *testing.T) {
	sender := &recordingSender{err: errors.New("connection refused")}
	svc := NewEmailServiceWithSender(config.EmailConfig{FromAddress: "noreply@backoffice.test"}, sender)

	err := svc.SendSubscriptionCreated(testNotice())
	assert.ErrorContains(t, err, "connection refused")

	n := testNotice()
	n.To = ""
	assert.Error(t, svc.SendSubscriptionRenewed(n))

	unconfigured := NewEmailServiceWithSender(config.EmailConfig{}, nil)
	assert.ErrorIs(t, unconfigured.SendSubscriptionCreated(testNotice()), ErrEmailServiceNotConfigured)
}
