package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/warden/pkg/slogx"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

type captureDeliverer struct {
	mu   sync.Mutex
	msgs []Message
}

func (c *captureDeliverer) Deliver(_ context.Context, m Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, m)
	return nil
}

func TestRenderer(t *testing.T) {
	t.Parallel()
	r, err := NewRenderer()
	require.NoError(t, err)

	t.Run("activation", func(t *testing.T) {
		msg, err := r.Render("activation", "a@example.com", map[string]string{
			"username":   "alice",
			"code":       "ABC123",
			"expires_at": "2026-03-02T09:00:00Z",
		})
		require.NoError(t, err)
		require.Equal(t, "a@example.com", msg.To)
		require.Equal(t, "Activate your account", msg.Subject)
		require.Contains(t, msg.Body, "ABC123")
		require.Contains(t, msg.Body, "Hi alice,")
	})

	t.Run("welcome keeps its own blocks", func(t *testing.T) {
		msg, err := r.Render("welcome", "a@example.com", map[string]string{"username": "alice"})
		require.NoError(t, err)
		require.Equal(t, "Welcome aboard", msg.Subject)
	})

	t.Run("missing variable", func(t *testing.T) {
		_, err := r.Render("activation", "a@example.com", map[string]string{"username": "alice"})
		require.Error(t, err)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := r.Render("nope", "a@example.com", nil)
		require.Error(t, err)
	})
}

func TestDirectSender(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	d := &captureDeliverer{}
	s := &DirectSender{Renderer: r, Deliverer: d}

	require.NoError(t, s.Send(t.Context(), "welcome", "b@example.com", map[string]string{"username": "bob"}))
	require.Len(t, d.msgs, 1)
	require.Equal(t, "b@example.com", d.msgs[0].To)
}

func TestHandler(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	d := &captureDeliverer{}
	h := &Handler{Renderer: r, Deliverer: d, Logger: slogx.Discard()}

	task, err := NewSendEmailTask(SendEmailPayload{
		Template: "welcome",
		To:       "c@example.com",
		Vars:     map[string]string{"username": "cat"},
	})
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(t.Context(), task))
	require.Len(t, d.msgs, 1)

	t.Run("bad payload is not retried", func(t *testing.T) {
		err := h.ProcessTask(t.Context(), asynq.NewTask(TaskTypeSendEmail, []byte("{")))
		require.True(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("render failure is not retried", func(t *testing.T) {
		task, err := NewSendEmailTask(SendEmailPayload{Template: "ghost", To: "c@example.com"})
		require.NoError(t, err)
		require.ErrorIs(t, h.ProcessTask(t.Context(), task), asynq.SkipRetry)
	})
}

func TestAsynqSender_Enqueues(t *testing.T) {
	mr := miniredis.RunT(t)
	opt := asynq.RedisClientOpt{Addr: mr.Addr()}

	client := asynq.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	s := &AsynqSender{Client: client}
	vars := map[string]string{"username": "dan", "code": "XYZ789", "expires_at": "soon"}
	require.NoError(t, s.Send(context.Background(), "activation", "d@example.com", vars))

	inspector := asynq.NewInspector(opt)
	t.Cleanup(func() { _ = inspector.Close() })

	tasks, err := inspector.ListPendingTasks(QueueMail)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, TaskTypeSendEmail, tasks[0].Type)
	require.Equal(t, maxRetry, tasks[0].MaxRetry)

	var p SendEmailPayload
	require.NoError(t, json.Unmarshal(tasks[0].Payload, &p))
	require.Equal(t, "d@example.com", p.To)
	require.Equal(t, vars, p.Vars)
}
