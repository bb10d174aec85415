package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPDeliverer sends through a plain SMTP relay with optional PLAIN auth.
type SMTPDeliverer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (d *SMTPDeliverer) Deliver(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	var auth smtp.Auth
	if d.Username != "" {
		auth = smtp.PlainAuth("", d.Username, d.Password, d.Host)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- smtp.SendMail(addr, auth, d.From, []string{msg.To}, d.format(msg)) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("notify: smtp send: %w", err)
		}
		return nil
	}
}

func (d *SMTPDeliverer) format(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", d.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}
