package main

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestHashIP(t *testing.T) {
	a := hashIP("203.0.113.7")
	require.Len(t, a, 16)
	require.Equal(t, a, hashIP("203.0.113.7"))
	require.NotEqual(t, a, hashIP("203.0.113.8"))
	require.NotContains(t, a, "203")
}

func TestVisitLogMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(visitLogMiddleware())
	var seen string
	handler := func(c *gin.Context) {
		seen = visitorOf(c)
		c.Status(http.StatusNoContent)
	}
	r.GET("/", handler)
	r.GET("/static/app.js", handler)

	request := func(path string, dnt bool) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "198.51.100.4:5555"
		if dnt {
			req.Header.Set("DNT", "1")
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	buf := captureLog(t)
	request("/", false)
	require.Equal(t, hashIP("198.51.100.4"), seen)
	require.Contains(t, buf.String(), "Visit GET / from "+seen+": 204")
	require.NotContains(t, buf.String(), "198.51.100.4")

	buf.Reset()
	request("/", true)
	require.Equal(t, "anonymous", seen)
	require.Empty(t, buf.String())

	request("/static/app.js", false)
	require.Equal(t, "anonymous", seen)
	require.Empty(t, buf.String())
}
