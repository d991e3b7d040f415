package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"elitepainters/internal/entity"

	gomail "github.com/wneessen/go-mail"
)

const dialTimeout = 15 * time.Second

var ErrNoAdmins = errors.New("no admin addresses configured")

// SMTPConfig describes the outgoing mail relay. Admins receive new-quote
// alerts. Secure selects implicit TLS (usually port 465); otherwise
// STARTTLS is used when the relay offers it.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Pass     string
	FromName string
	FromAddr string
	Admins   []string
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

type SMTPMailer struct {
	cfg    SMTPConfig
	client sender
	now    func() time.Time
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.FromAddr == "" {
		cfg.FromAddr = cfg.User
	}
	if cfg.FromName == "" {
		cfg.FromName = "EliteHomePainters"
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(dialTimeout),
	}
	if cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Pass),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{
		cfg:    cfg,
		client: client,
		now:    time.Now,
	}, nil
}

// NotifyNewQuote mails the quote summary to every admin address. The relay
// conversation is abandoned when ctx ends.
func (m *SMTPMailer) NotifyNewQuote(ctx context.Context, quote entity.Quote) error {
	if len(m.cfg.Admins) == 0 {
		return ErrNoAdmins
	}

	msg, err := m.quoteMessage(quote)
	if err != nil {
		return err
	}
	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *SMTPMailer) quoteMessage(quote entity.Quote) (*gomail.Msg, error) {
	name := quote.Name
	if name == "" {
		name = "Customer"
	}
	service := quote.PaintType
	if service == "" {
		service = "Service"
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.FromAddr); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(m.cfg.Admins...); err != nil {
		return nil, fmt.Errorf("admin addresses: %w", err)
	}
	// the customer's address is a convenience; a malformed one is left out
	if quote.Email != "" {
		_ = msg.ReplyTo(quote.Email)
	}
	msg.Subject(fmt.Sprintf("New Quote: %s - %s", singleLine(name), singleLine(service)))
	msg.SetDateWithValue(m.now())
	msg.SetBodyString(gomail.TypeTextHTML, m.quoteBody(quote))

	return msg, nil
}

func (m *SMTPMailer) quoteBody(quote entity.Quote) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family:system-ui,Segoe UI,Roboto,Arial">`)
	b.WriteString("<h2>New Quote Request</h2>")
	field := func(label, value string) {
		fmt.Fprintf(&b, "<p><b>%s:</b> %s</p>\n", label, html.EscapeString(value))
	}
	field("Name", quote.Name)
	field("Email", quote.Email)
	field("Phone", quote.Phone)
	field("Service", quote.PaintType)
	field("Address", quote.Address)
	field("Area (m2)", fmt.Sprintf("%.1f", quote.Area))
	field("Estimated price (NZD)", fmt.Sprintf("%.2f", quote.EstimatedPrice))
	fmt.Fprintf(&b, "<p><b>Message:</b><br>%s</p>\n", html.EscapeString(quote.Message))
	fmt.Fprintf(&b, "<hr/><p><small>Sent %s</small></p></div>", m.now().Format(time.RFC1123))
	return b.String()
}

// singleLine keeps user input on one header line.
func singleLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// NoopMailer is used when no SMTP relay is configured.
type NoopMailer struct{}

func (NoopMailer) NotifyNewQuote(context.Context, entity.Quote) error {
	return nil
}
