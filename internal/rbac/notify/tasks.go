package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/warden/pkg/slogx"
	"github.com/hibiken/asynq"
)

const (
	// QueueMail is the asynq queue that carries outbound mail.
	QueueMail = "mail"

	// TaskTypeSendEmail is the task type for templated e-mail.
	TaskTypeSendEmail = "email:send"

	maxRetry = 5
)

// SendEmailPayload is the queued form of one Send call.
type SendEmailPayload struct {
	Template string            `json:"template"`
	To       string            `json:"to"`
	Vars     map[string]string `json:"vars"`
}

func NewSendEmailTask(p SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data, asynq.Queue(QueueMail), asynq.MaxRetry(maxRetry)), nil
}

// Enqueuer is the part of *asynq.Client AsynqSender needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqSender queues mail for the worker.
type AsynqSender struct {
	Client Enqueuer
}

func (s *AsynqSender) Send(ctx context.Context, template, to string, vars map[string]string) error {
	task, err := NewSendEmailTask(SendEmailPayload{Template: template, To: to, Vars: vars})
	if err != nil {
		return err
	}
	info, err := s.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("notify: enqueue %s: %w", template, err)
	}
	slogx.FromContext(ctx).Debug("mail queued",
		slog.String("task_id", info.ID),
		slog.String("template", template),
	)
	return nil
}

// Handler processes TaskTypeSendEmail tasks.
type Handler struct {
	Renderer  *Renderer
	Deliverer Deliverer
	Logger    *slog.Logger
}

func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("notify: decode payload: %w", asynq.SkipRetry)
	}

	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx = slogx.WithContext(ctx, logger.With(slog.String("task", TaskTypeSendEmail), slog.String("template", p.Template)))

	msg, err := h.Renderer.Render(p.Template, p.To, p.Vars)
	if err != nil {
		// A broken template or payload does not heal on retry.
		slogx.FromContext(ctx).Error("mail render failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	return h.Deliverer.Deliver(ctx, msg)
}
