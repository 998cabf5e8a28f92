package web

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/fitness"
	"github.com/Zachkp/portfolio/internal/logger"
)

const controllerKey = "fitness_controller"

// quietPrefixes are paths that are served but never logged.
var quietPrefixes = []string{"/static/", "/images/", "/favicon", "/metrics", "/health"}

func randomSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate ip salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP returns a salted, truncated hash so requests from one address can
// be correlated without storing the address.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// requestLogger logs one line per request and counts it. Static assets are
// skipped, and DNT requests are logged without the client hash.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()

		path := c.Request.URL.Path
		for _, p := range quietPrefixes {
			if strings.HasPrefix(path, p) {
				return
			}
		}

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.Int("status", status),
			logger.Duration("duration", time.Since(start)),
		}
		if c.GetHeader("DNT") != "1" {
			fields = append(fields, logger.String("client", s.hashIP(c.ClientIP())))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			s.log.Error("HTTP request", fields...)
		case status >= http.StatusBadRequest:
			s.log.Warn("HTTP request", fields...)
		default:
			s.log.Info("HTTP request", fields...)
		}
	}
}

// visitorPanel attaches the visitor's fitness controller to the context.
func (s *Server) visitorPanel() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := s.deps.Visitors.VisitorID(c.Writer, c.Request)
		if err != nil {
			s.log.Error("Failed to identify visitor", logger.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		ctrl := s.deps.Panels.Get(id)
		if ctrl == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "shutting down"})
			return
		}
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

func controllerFrom(c *gin.Context) *fitness.Controller {
	return c.MustGet(controllerKey).(*fitness.Controller)
}
