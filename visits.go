package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
)

const visitorKey = "visitor"

// visitSalt is regenerated on every start, so visitor ids cannot be linked
// across restarts.
var visitSalt = newSalt()

func newSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate visitor salt:", err)
	}
	return hex.EncodeToString(b)
}

// hashIP returns a short id that is stable per address for this process.
func hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + visitSalt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// visitLogMiddleware logs page visits under a hashed client address. Assets
// are skipped, and so is anyone sending DNT: 1. Nothing is stored.
func visitLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/favicon") ||
			path == "/healthz" {
			c.Next()
			return
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		id := hashIP(c.ClientIP())
		c.Set(visitorKey, id)
		c.Next()
		log.Printf("Visit %s %s from %s: %d", c.Request.Method, path, id, c.Writer.Status())
	}
}

// visitorOf returns the hashed visitor id, or "anonymous" when the visit
// was not tracked.
func visitorOf(c *gin.Context) string {
	if id := c.GetString(visitorKey); id != "" {
		return id
	}
	return "anonymous"
}
