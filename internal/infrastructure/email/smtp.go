package email

import (
	"errors"
	"fmt"
	"html"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/config"
)

var ErrEmailServiceNotConfigured = errors.New("email service is not configured")

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SubscriptionNotice is what a client is told about a subscription change.
type SubscriptionNotice struct {
	To             string
	ClientName     string
	PlanName       string
	SubscriptionID uint
	StartDate      time.Time
	EndDate        time.Time
	NumUsers       int
	FinalAmount    string
	Currency       string
	Reason         string
}

type PaymentNotice struct {
	To            string
	ClientName    string
	ReceiptNumber string
	Amount        string
	Currency      string
	Method        string
	PaidAt        time.Time
}

type SMTPEmailService struct {
	fromAddress string
	fromName    string
	sender      Sender
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	return NewEmailServiceWithSender(cfg, gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword))
}

func NewEmailServiceWithSender(cfg config.EmailConfig, sender Sender) *SMTPEmailService {
	return &SMTPEmailService{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		sender:      sender,
	}
}

func (s *SMTPEmailService) SendSubscriptionCreated(n SubscriptionNotice) error {
	subject := fmt.Sprintf("Your %s subscription is confirmed", n.PlanName)
	intro := fmt.Sprintf("Your subscription to %s has been set up for %d users.", n.PlanName, n.NumUsers)
	return s.sendSubscriptionNotice(n, subject, intro)
}

func (s *SMTPEmailService) SendSubscriptionRenewed(n SubscriptionNotice) error {
	subject := fmt.Sprintf("Your %s subscription has been renewed", n.PlanName)
	intro := fmt.Sprintf("Your subscription to %s now runs until %s. Payment for the new period is pending.",
		n.PlanName, biztime.FormatDate(n.EndDate))
	return s.sendSubscriptionNotice(n, subject, intro)
}

func (s *SMTPEmailService) SendSubscriptionCancelled(n SubscriptionNotice) error {
	subject := fmt.Sprintf("Your %s subscription has been cancelled", n.PlanName)
	intro := fmt.Sprintf("Your subscription to %s has been cancelled.", n.PlanName)
	if n.Reason != "" {
		intro += " Reason: " + n.Reason
	}
	return s.sendSubscriptionNotice(n, subject, intro)
}

func (s *SMTPEmailService) SendPaymentReceipt(n PaymentNotice) error {
	subject := fmt.Sprintf("Payment receipt %s", n.ReceiptNumber)
	paidAt := biztime.FormatInBizTimezone(n.PaidAt, time.DateTime)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Payment received</h2>
			<p>Dear %s,</p>
			<p>We have received your payment of <strong>%s %s</strong> by %s.</p>
			<p>Receipt number: %s<br>Paid at: %s</p>
		</body>
		</html>
	`, html.EscapeString(n.ClientName), n.Currency, n.Amount, html.EscapeString(n.Method),
		html.EscapeString(n.ReceiptNumber), paidAt)

	plainBody := fmt.Sprintf(`
Payment received

Dear %s,

We have received your payment of %s %s by %s.

Receipt number: %s
Paid at: %s
	`, n.ClientName, n.Currency, n.Amount, n.Method, n.ReceiptNumber, paidAt)

	return s.sendEmail(n.To, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendSubscriptionNotice(n SubscriptionNotice, subject, intro string) error {
	start := biztime.FormatDate(n.StartDate)
	end := biztime.FormatDate(n.EndDate)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Dear %s,</p>
			<p>%s</p>
			<table>
				<tr><td>Subscription</td><td>#%d</td></tr>
				<tr><td>Period</td><td>%s to %s</td></tr>
				<tr><td>Amount due</td><td>%s %s</td></tr>
			</table>
		</body>
		</html>
	`, html.EscapeString(n.ClientName), html.EscapeString(intro), n.SubscriptionID, start, end, n.Currency, n.FinalAmount)

	plainBody := fmt.Sprintf(`
Dear %s,

%s

Subscription: #%d
Period: %s to %s
Amount due: %s %s
	`, n.ClientName, intro, n.SubscriptionID, start, end, n.Currency, n.FinalAmount)

	return s.sendEmail(n.To, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	if s.sender == nil {
		return ErrEmailServiceNotConfigured
	}
	if to == "" {
		return fmt.Errorf("recipient address is required")
	}

	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.fromAddress, s.fromName)
	} else {
		m.SetHeader("From", s.fromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
