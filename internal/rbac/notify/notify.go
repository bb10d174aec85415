// Package notify delivers templated e-mail. The HTTP service enqueues mail
// through AsynqSender and cmd/warden-worker renders and delivers it.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"text/template"

	"github.com/aussiebroadwan/warden/pkg/slogx"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Message is a rendered e-mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Deliverer hands a rendered message to a transport.
type Deliverer interface {
	Deliver(ctx context.Context, msg Message) error
}

// Renderer turns a template name and variables into a Message. Every file
// defines a "subject" and a "body" block, so each is parsed on its own.
type Renderer struct {
	byName map[string]*template.Template
}

// NewRenderer parses the embedded templates. Missing variables fail
// rendering rather than printing "<no value>".
func NewRenderer() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	r := &Renderer{byName: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".tmpl")
		t, err := template.New(name).Option("missingkey=error").ParseFS(templateFS, f)
		if err != nil {
			return nil, fmt.Errorf("notify: parse %s: %w", f, err)
		}
		r.byName[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(name, to string, vars map[string]string) (Message, error) {
	t, ok := r.byName[name]
	if !ok {
		return Message{}, fmt.Errorf("notify: unknown template %q", name)
	}

	var subject, body bytes.Buffer
	if err := t.ExecuteTemplate(&subject, "subject", vars); err != nil {
		return Message{}, fmt.Errorf("notify: render %s subject: %w", name, err)
	}
	if err := t.ExecuteTemplate(&body, "body", vars); err != nil {
		return Message{}, fmt.Errorf("notify: render %s body: %w", name, err)
	}
	return Message{
		To:      to,
		Subject: strings.TrimSpace(subject.String()),
		Body:    strings.TrimSpace(body.String()) + "\n",
	}, nil
}

// LogDeliverer writes messages to the request logger instead of sending
// them. Used in development.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(ctx context.Context, msg Message) error {
	slogx.FromContext(ctx).Info("mail delivered to log",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}

// DirectSender renders and delivers inline. It satisfies the service
// EmailSender when no queue is configured.
type DirectSender struct {
	Renderer  *Renderer
	Deliverer Deliverer
}

func (s *DirectSender) Send(ctx context.Context, template, to string, vars map[string]string) error {
	msg, err := s.Renderer.Render(template, to, vars)
	if err != nil {
		return err
	}
	return s.Deliverer.Deliver(ctx, msg)
}
