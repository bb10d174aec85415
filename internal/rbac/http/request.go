package http

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
	"github.com/aussiebroadwan/warden/pkg/httpx"
)

// decode reads a JSON body into dst and answers 400 itself when it cannot.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		writeBadJSON(w, err)
		return false
	}
	return true
}

// actor is the audit name of whoever is calling.
func actor(r *http.Request) string {
	if id, ok := httpx.UserIDFromContext(r.Context()); ok {
		return id
	}
	return domain.ActorSystem
}

func listOptions(r *http.Request) store.ListOptions {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	inactive, _ := strconv.ParseBool(q.Get("include_inactive"))
	return store.ListOptions{
		Limit:           limit,
		Offset:          offset,
		Search:          q.Get("search"),
		IncludeInactive: inactive,
	}
}

const maxDeviceInfo = 256

// deviceInfo is the User-Agent as valid UTF-8, cut to maxDeviceInfo bytes on
// a rune boundary.
func deviceInfo(r *http.Request) string {
	ua := strings.ToValidUTF8(r.UserAgent(), "")
	if len(ua) <= maxDeviceInfo {
		return ua
	}
	cut := maxDeviceInfo
	for cut > 0 && !utf8.RuneStart(ua[cut]) {
		cut--
	}
	return ua[:cut]
}
