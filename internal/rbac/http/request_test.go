package http

import (
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestDeviceInfo(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{"short", "curl/8.5.0", "curl/8.5.0"},
		{"exact limit", strings.Repeat("a", maxDeviceInfo), strings.Repeat("a", maxDeviceInfo)},
		{"ascii cut", strings.Repeat("a", maxDeviceInfo+10), strings.Repeat("a", maxDeviceInfo)},
		// 255 bytes then a 3 byte rune straddling the limit
		{"multibyte straddles limit", strings.Repeat("a", maxDeviceInfo-1) + "€tail", strings.Repeat("a", maxDeviceInfo-1)},
		{"invalid bytes dropped", "agent\xff\xfe/1", "agent/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/auth/login", nil)
			req.Header.Set("User-Agent", tt.ua)

			got := deviceInfo(req)
			require.Equal(t, tt.want, got)
			require.True(t, utf8.ValidString(got))
			require.LessOrEqual(t, len(got), maxDeviceInfo)
		})
	}

	t.Run("all multibyte", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.Header.Set("User-Agent", strings.Repeat("日", 200))

		got := deviceInfo(req)
		require.True(t, utf8.ValidString(got))
		require.Len(t, got, 255)
	})
}
