package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/pkg/config"
)

// ErrNoRecipients is returned when a message has no addressable recipient.
var ErrNoRecipients = errors.New("mailer: no recipients")

const defaultTimeout = 10 * time.Second

// Message is a plain-text email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer delivers email messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer when mail is enabled and a log-only mailer otherwise.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer delivers through an SMTP relay. Every Send opens its own session, bounded by the
// caller's context and the configured timeout, whichever ends first.
type SMTPMailer struct {
	host    string
	port    int
	from    string
	timeout time.Duration
	options []mail.Option
	now     func() time.Time
}

// NewSMTPMailer builds an SMTP mailer from configuration.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	options := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(timeout),
		mail.WithTLSPolicy(tlsPolicy(cfg.TLSPolicy)),
	}
	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}
	return &SMTPMailer{
		host:    cfg.Host,
		port:    cfg.Port,
		from:    cfg.From,
		timeout: timeout,
		options: options,
		now:     time.Now,
	}
}

func tlsPolicy(name string) mail.TLSPolicy {
	switch name {
	case "mandatory":
		return mail.TLSMandatory
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSOpportunistic
	}
}

// Send delivers msg. A relay that stalls at any step is abandoned once ctx is done or the
// timeout elapses.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	to := cleanRecipients(msg.To)
	if len(to) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	envelope, err := m.build(to, msg)
	if err != nil {
		return err
	}

	var release func() bool
	options := append(append([]mail.Option(nil), m.options...),
		mail.WithDialContextFunc(func(dialCtx context.Context, network, addr string) (net.Conn, error) {
			dialer := net.Dialer{Timeout: m.timeout}
			conn, err := dialer.DialContext(dialCtx, network, addr)
			if err != nil {
				return nil, err
			}
			_ = conn.SetDeadline(m.deadline(ctx))
			// go-mail hands the dialer a context that ends with the dial; the session has to
			// follow the caller's context instead.
			release = context.AfterFunc(ctx, func() { _ = conn.Close() })
			return conn, nil
		}))
	client, err := mail.NewClient(m.host, options...)
	if err != nil {
		return fmt.Errorf("smtp client for %s: %w", m.addr(), err)
	}

	err = client.DialAndSendWithContext(ctx, envelope)
	if release != nil {
		release()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("smtp send to %s: %v: %w", m.addr(), err, ctxErr)
		}
		return fmt.Errorf("smtp send to %s: %w", m.addr(), err)
	}
	return nil
}

func (m *SMTPMailer) build(to []string, msg Message) (*mail.Msg, error) {
	envelope := mail.NewMsg()
	if err := envelope.From(m.from); err != nil {
		return nil, fmt.Errorf("mail sender %q: %w", m.from, err)
	}
	if err := envelope.To(to...); err != nil {
		return nil, fmt.Errorf("mail recipients: %w", err)
	}
	envelope.Subject(msg.Subject)
	envelope.SetDateWithValue(m.now())
	envelope.SetBodyString(mail.TypeTextPlain, msg.Body)
	return envelope, nil
}

func (m *SMTPMailer) deadline(ctx context.Context) time.Time {
	deadline := time.Now().Add(m.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

func (m *SMTPMailer) addr() string {
	return net.JoinHostPort(m.host, strconv.Itoa(m.port))
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	to := cleanRecipients(msg.To)
	if len(to) == 0 {
		return ErrNoRecipients
	}
	m.logger.Info("email (delivery disabled)", zap.Strings("to", to), zap.String("subject", msg.Subject))
	return nil
}

func cleanRecipients(to []string) []string {
	out := make([]string, 0, len(to))
	seen := make(map[string]struct{}, len(to))
	for _, addr := range to {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		key := strings.ToLower(addr)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, addr)
	}
	return out
}
