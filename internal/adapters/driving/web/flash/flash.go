// Package flash provides one-time web notices persisted across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"
)

// CookieName is the cookie used for one-time web notices.
const CookieName = "pew_flash"

// maxMessageBytes keeps the cookie well under the 4KB browser limit.
const maxMessageBytes = 1024

// Kind classifies notice presentation.
type Kind string

const (
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindDanger  Kind = "danger"
)

// Notice is one message shown on the next page render.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Info creates an informational notice.
func Info(message string) Notice {
	return Notice{Kind: KindInfo, Message: message}
}

// Warning creates a warning notice.
func Warning(message string) Notice {
	return Notice{Kind: KindWarning, Message: message}
}

// Danger creates an error notice.
func Danger(message string) Notice {
	return Notice{Kind: KindDanger, Message: message}
}

// Write stores notices in a cookie for the next page render, replacing any
// notices not yet shown. Invalid notices are dropped.
func Write(w http.ResponseWriter, r *http.Request, notices ...Notice) {
	if w == nil {
		return
	}
	valid := make([]Notice, 0, len(notices))
	for _, n := range notices {
		if normalized, ok := normalizeNotice(n); ok {
			valid = append(valid, normalized)
		}
	}
	if len(valid) == 0 {
		return
	}
	payload, err := json.Marshal(valid)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear reads and clears the notice cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) []Notice {
	if r == nil {
		return nil
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return nil
	}
	if w != nil {
		Clear(w, r)
	}
	return decodeNotices(cookie.Value)
}

// Clear expires any notice cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decodeNotices(raw string) []Notice {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(decoded, &notices); err != nil {
		return nil
	}
	out := notices[:0]
	for _, n := range notices {
		if normalized, ok := normalizeNotice(n); ok {
			out = append(out, normalized)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeNotice(notice Notice) (Notice, bool) {
	notice.Message = truncate(strings.TrimSpace(notice.Message), maxMessageBytes)
	if notice.Message == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindInfo, KindWarning, KindDanger:
		return notice, true
	default:
		return Notice{}, false
	}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s + "…"
}

func isHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
