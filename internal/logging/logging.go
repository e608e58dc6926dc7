// Package logging настраивает apex/log для сервера и CLI.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/gin-gonic/gin"
)

// New создаёт логгер с нужным уровнем и форматом (text | json).
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	var h log.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		h = text.New(w)
	case "json":
		h = json.New(w)
	default:
		return nil, fmt.Errorf("unknown log format %q (allowed: text|json)", format)
	}
	return &log.Logger{Handler: h, Level: lvl}, nil
}

// Gin: middleware, пишущее запросы через apex/log вместо gin.Logger()
func Gin(logger log.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
			"took":   time.Since(start),
		})
		if sid := c.Param("sid"); sid != "" {
			entry = entry.WithField("session", sid)
		}
		switch {
		case len(c.Errors) > 0:
			entry.WithError(c.Errors.Last()).Error("request")
		case c.Writer.Status() >= 500:
			entry.Error("request")
		default:
			entry.Info("request")
		}
	}
}
