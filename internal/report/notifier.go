package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Channel identifies a delivery mechanism for migration reports.
type Channel string

const (
	ChannelLog     Channel = "log"
	ChannelEmail   Channel = "email"
	ChannelWebhook Channel = "webhook"
)

// EmailSettings configures SMTP delivery. When incomplete, the email
// channel logs the rendered report instead of sending it.
type EmailSettings struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	To       []string
}

// Configured reports whether every field needed to send mail is set.
func (s EmailSettings) Configured() bool {
	return s.SMTPHost != "" && s.Username != "" && s.Password != "" &&
		s.From != "" && len(s.To) > 0
}

// WebhookSettings configures the webhook channel.
type WebhookSettings struct {
	URL string
}

// Options configures a Notifier.
type Options struct {
	Channels []Channel
	Subject  string
	Email    EmailSettings
	Webhook  WebhookSettings
}

// Notifier renders and delivers migration reports over the configured
// channels. Delivery failures are logged and swallowed; nothing ever
// propagates back to the migration that produced the report.
type Notifier struct {
	opts   Options
	client *http.Client
	log    zerolog.Logger

	// sendMail is swapped out in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewNotifier creates a Notifier.
func NewNotifier(opts Options, log zerolog.Logger) *Notifier {
	return &Notifier{
		opts:     opts,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
		sendMail: smtp.SendMail,
	}
}

// Send delivers the report over every configured channel.
func (n *Notifier) Send(rep *model.MigrationReport) {
	if len(n.opts.Channels) == 0 {
		n.log.Warn().Msg("no report channels configured, skipping report")
		return
	}
	for _, ch := range n.opts.Channels {
		switch ch {
		case ChannelLog:
			n.logReport(rep)
		case ChannelEmail:
			n.emailReport(rep)
		case ChannelWebhook:
			n.webhookReport(rep)
		default:
			n.log.Warn().Str("channel", string(ch)).Msg("unknown report channel")
		}
	}
}

func (n *Notifier) logReport(rep *model.MigrationReport) {
	ev := n.log.Info().
		Str("filename", rep.Filename).
		Int64("file_size", rep.FileSize).
		Int("total_records", rep.TotalRecords).
		Int("success_records", rep.SuccessRecords).
		Int("error_records", rep.ErrorRecords).
		Int("users_affected", rep.UsersAffected).
		Str("total_amount", rep.TotalAmount.StringFixed(2)).
		Str("average_amount", rep.AverageAmount.StringFixed(2)).
		Str("largest_amount", rep.LargestAmount.StringFixed(2)).
		Str("smallest_amount", rep.SmallestAmount.StringFixed(2)).
		Dur("processing_time", rep.ProcessingTime)
	if len(rep.Errors) > 0 {
		ev = ev.Strs("errors", rep.Errors)
	}
	ev.Msg("migration report")
}

func (n *Notifier) emailReport(rep *model.MigrationReport) {
	body := Body(rep)

	if !n.opts.Email.Configured() {
		n.log.Info().
			Strs("to", n.opts.Email.To).
			Str("subject", fmt.Sprintf("%s - %s", n.opts.Subject, rep.Filename)).
			Str("body", body).
			Msg("email not configured, logging report instead")
		return
	}

	msg := buildMessage(n.opts.Email, fmt.Sprintf("%s - %s", n.opts.Subject, rep.Filename), body)
	addr := fmt.Sprintf("%s:%d", n.opts.Email.SMTPHost, n.opts.Email.SMTPPort)
	auth := smtp.PlainAuth("", n.opts.Email.Username, n.opts.Email.Password, n.opts.Email.SMTPHost)

	if err := n.sendMail(addr, auth, n.opts.Email.From, n.opts.Email.To, msg); err != nil {
		n.log.Error().Err(err).Str("filename", rep.Filename).Msg("sending email report")
		return
	}
	n.log.Info().Str("filename", rep.Filename).Msg("migration report sent via email")
}

func (n *Notifier) webhookReport(rep *model.MigrationReport) {
	if n.opts.Webhook.URL == "" {
		n.log.Warn().Msg("webhook channel enabled but no URL configured")
		return
	}

	payload, err := json.Marshal(rep)
	if err != nil {
		n.log.Error().Err(err).Msg("encoding webhook report")
		return
	}

	resp, err := n.client.Post(n.opts.Webhook.URL, "application/json", bytes.NewReader(payload))
	if err != nil {
		n.log.Error().Err(err).Str("url", n.opts.Webhook.URL).Msg("posting webhook report")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.log.Error().Int("status", resp.StatusCode).Str("url", n.opts.Webhook.URL).Msg("webhook report rejected")
		return
	}
	n.log.Info().Str("filename", rep.Filename).Msg("migration report sent via webhook")
}

func buildMessage(email EmailSettings, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", email.From)
	for _, to := range email.To {
		fmt.Fprintf(&buf, "To: %s\r\n", to)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n\r\n", subject)
	buf.WriteString(body)
	return buf.Bytes()
}
