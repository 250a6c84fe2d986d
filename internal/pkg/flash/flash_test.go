package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func flashCookies(w *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			out = append(out, ck)
		}
	}
	return out
}

func TestAdd_SurvivesRedirect(t *testing.T) {
	c, w := newContext(t)
	c.SetCookie("session", "keep-me", 60, "/", "", false, true)
	Add(c, "Document added.")
	Add(c, "Second notice.")

	cookies := flashCookies(w)
	require.Len(t, cookies, 1, "one flash cookie per response")
	assert.Len(t, w.Result().Cookies(), 2, "unrelated cookies are kept")

	next, _ := newContext(t)
	next.Request.AddCookie(cookies[0])
	assert.Equal(t, []string{"Document added.", "Second notice."}, Pop(next))
}

func TestPop_ClearsCookie(t *testing.T) {
	c, _ := newContext(t)
	Add(c, "hello")

	assert.Equal(t, []string{"hello"}, Pop(c))
	assert.Empty(t, Pop(c))
}

func TestPop_EmptyAndGarbage(t *testing.T) {
	c, w := newContext(t)
	assert.Empty(t, Pop(c))
	assert.Empty(t, flashCookies(w))

	c2, _ := newContext(t)
	c2.Request.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%"})
	assert.Empty(t, Pop(c2))
}

func TestAdd_KeepsIncomingNotices(t *testing.T) {
	first, w := newContext(t)
	Add(first, "Please log in first.")
	carried := flashCookies(w)
	require.Len(t, carried, 1)

	// a second redirect before any page renders
	c, w2 := newContext(t)
	c.Request.AddCookie(carried[0])
	Add(c, "Access restricted to administrators.")

	cookies := flashCookies(w2)
	require.Len(t, cookies, 1)

	next, _ := newContext(t)
	next.Request.AddCookie(cookies[0])
	assert.Equal(t, []string{"Please log in first.", "Access restricted to administrators."}, Pop(next))
}

func TestPop_ThenAddDoesNotRepeatIncoming(t *testing.T) {
	c, _ := newContext(t)
	c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: encode([]string{"old"})})

	assert.Equal(t, []string{"old"}, Pop(c))
	Add(c, "new")
	assert.Equal(t, []string{"new"}, Pop(c))
}
