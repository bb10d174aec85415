package captcha

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// solve computes the answer from the question text.
func solve(t *testing.T, q string) string {
	t.Helper()
	var a, b int
	var op string
	_, err := fmt.Sscanf(q, "%d %s %d", &a, &op, &b)
	require.NoError(t, err)
	if op == "-" {
		return strconv.Itoa(a - b)
	}
	return strconv.Itoa(a + b)
}

func stores(t *testing.T) map[string]func() (Store, *miniredis.Miniredis) {
	return map[string]func() (Store, *miniredis.Miniredis){
		"memory": func() (Store, *miniredis.Miniredis) { return NewMemoryStore(), nil },
		"redis": func() (Store, *miniredis.Miniredis) {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return NewRedisStore(client), mr
		},
	}
}

func TestService(t *testing.T) {
	for name, mk := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st, _ := mk()
			svc := New(st, time.Minute)

			c, err := svc.Issue(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, c.ID)
			require.True(t, strings.Contains(c.Question, "+") || strings.Contains(c.Question, "-"))

			ok, err := svc.Validate(ctx, c.ID+":"+solve(t, c.Question))
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = svc.Validate(ctx, c.ID+":"+solve(t, c.Question))
			require.NoError(t, err)
			require.False(t, ok, "answers are single use")
		})
	}
}

func TestService_WrongAnswerBurnsChallenge(t *testing.T) {
	ctx := context.Background()
	svc := New(NewMemoryStore(), time.Minute)

	c, err := svc.Issue(ctx)
	require.NoError(t, err)

	ok, err := svc.Validate(ctx, c.ID+":-999")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.Validate(ctx, c.ID+":"+solve(t, c.Question))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestService_MalformedTokens(t *testing.T) {
	svc := New(NewMemoryStore(), time.Minute)
	for _, tok := range []string{"", "nocolon", ":5", "id:", "unknown:3"} {
		ok, err := svc.Validate(context.Background(), tok)
		require.NoError(t, err, tok)
		require.False(t, ok, tok)
	}
}

func TestExpiry(t *testing.T) {
	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		st := NewRedisStore(client)

		require.NoError(t, st.Put(context.Background(), "x", "4", time.Minute))
		mr.FastForward(2 * time.Minute)

		_, ok, err := st.Take(context.Background(), "x")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("memory", func(t *testing.T) {
		cur := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		st := NewMemoryStore()
		st.now = func() time.Time { return cur }

		require.NoError(t, st.Put(context.Background(), "x", "4", time.Minute))
		cur = cur.Add(time.Minute)

		_, ok, err := st.Take(context.Background(), "x")
		require.NoError(t, err)
		require.False(t, ok)
	})
}
