package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip writes notices into one response and replays the cookie on a new request.
func roundTrip(t *testing.T, notices ...Notice) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), notices...)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req, httptest.NewRecorder()
}

func TestWriteAndReadAndClear(t *testing.T) {
	req, rec := roundTrip(t,
		Warning("Conversion from DOCX to PDF was unsuccessful."),
		Danger("source file could not be loaded"),
	)

	notices := ReadAndClear(rec, req)

	assert.Equal(t, []Notice{
		{Kind: KindWarning, Message: "Conversion from DOCX to PDF was unsuccessful."},
		{Kind: KindDanger, Message: "source file could not be loaded"},
	}, notices)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestWrite_CookieAttributes(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")

	Write(rec, req, Info("hello"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestWrite_DropsInvalidNotices(t *testing.T) {
	rec := httptest.NewRecorder()

	Write(rec, nil, Notice{Kind: "success", Message: "x"}, Info("   "))

	assert.Empty(t, rec.Result().Cookies())
}

func TestWrite_NormalizesKind(t *testing.T) {
	req, rec := roundTrip(t, Notice{Kind: " WARNING ", Message: " careful "})

	notices := ReadAndClear(rec, req)

	assert.Equal(t, []Notice{{Kind: KindWarning, Message: "careful"}}, notices)
}

func TestWrite_TruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("é", maxMessageBytes)
	req, rec := roundTrip(t, Danger(long))

	notices := ReadAndClear(rec, req)

	require.Len(t, notices, 1)
	assert.LessOrEqual(t, len(notices[0].Message), maxMessageBytes+len("…"))
	assert.True(t, strings.HasSuffix(notices[0].Message, "…"))
}

func TestReadAndClear_NoCookie(t *testing.T) {
	rec := httptest.NewRecorder()

	notices := ReadAndClear(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Nil(t, notices)
	assert.Empty(t, rec.Result().Cookies())
}

func TestReadAndClear_Garbage(t *testing.T) {
	for _, value := range []string{"%%%", "bm90IGpzb24", ""} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})

		assert.Nil(t, ReadAndClear(httptest.NewRecorder(), req), value)
	}
}

func TestNilSafety(t *testing.T) {
	assert.NotPanics(t, func() {
		Write(nil, nil, Info("x"))
		Clear(nil, nil)
		assert.Nil(t, ReadAndClear(nil, nil))
	})
}
