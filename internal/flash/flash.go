// Package flash implements one-shot messages shown on the next rendered
// page: a mutation queues a message, redirects, and the target page pops
// and displays it. Messages travel in a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

const (
	cookieName = "tm_flash"
	ctxPending = "flash_pending"

	LevelSuccess = "success"
	LevelError   = "danger"
	LevelInfo    = "info"
)

type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func Success(c *gin.Context, text string) { add(c, LevelSuccess, text) }
func Error(c *gin.Context, text string)   { add(c, LevelError, text) }
func Info(c *gin.Context, text string)    { add(c, LevelInfo, text) }

func add(c *gin.Context, level, text string) {
	var pending []Message
	if v, ok := c.Get(ctxPending); ok {
		pending, _ = v.([]Message)
	}
	pending = append(pending, Message{Level: level, Text: text})
	c.Set(ctxPending, pending)
	c.SetCookie(cookieName, encode(pending), 300, "/", "", false, true)
}

// Pop returns the queued messages and clears the cookie. Safe to call on
// every page render; returns nil when nothing is queued.
func Pop(c *gin.Context) []Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	return decode(raw)
}

func encode(msgs []Message) string {
	b, err := json.Marshal(msgs)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func decode(raw string) []Message {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil
	}
	return msgs
}
