// Package flash carries one-shot user notices across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "flash"
	pendingKey = "flash.pending"
)

// Add queues msg for the next rendered page, after any notices the request
// already carried.
func Add(c *gin.Context, msg string) {
	queue := append(queued(c), msg)
	c.Set(pendingKey, queue)
	writeCookie(c, encode(queue), 0)
}

// Pop returns the notices carried by the request plus any queued during it,
// and clears the cookie.
func Pop(c *gin.Context) []string {
	msgs := queued(c)
	c.Set(pendingKey, []string{})
	if len(msgs) > 0 {
		writeCookie(c, "", -1)
	}
	return msgs
}

// queued returns the notices of this request. The incoming cookie is read
// only until the first Add or Pop takes over.
func queued(c *gin.Context) []string {
	if v, ok := c.Get(pendingKey); ok {
		msgs, _ := v.([]string)
		return append([]string(nil), msgs...)
	}
	if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
		return decode(raw)
	}
	return nil
}

// writeCookie replaces any flash cookie already set on this response.
func writeCookie(c *gin.Context, value string, maxAge int) {
	h := c.Writer.Header()
	kept := h.Values("Set-Cookie")[:0:0]
	for _, sc := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(sc, CookieName+"=") {
			kept = append(kept, sc)
		}
	}
	h.Del("Set-Cookie")
	for _, sc := range kept {
		h.Add("Set-Cookie", sc)
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request != nil && c.Request.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func encode(msgs []string) string {
	b, _ := json.Marshal(msgs)
	return base64.RawURLEncoding.EncodeToString(b)
}

func decode(raw string) []string {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil
	}
	return msgs
}
