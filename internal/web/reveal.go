package web

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/reveal"
)

// maxRevealLength caps the text a client may ask to animate.
const maxRevealLength = 256

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// handleReveal streams the reveal of ?text= as "frame" events followed by
// a single "done" event. Each stream owns its animator; a client
// disconnect cancels the request context, which stops the ticker.
func (s *Server) handleReveal(c *gin.Context) {
	text := c.Query("text")
	if utf8.RuneCountInString(text) > maxRevealLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text too long"})
		return
	}

	ctx := c.Request.Context()
	anim := reveal.New(reveal.WithInterval(s.deps.RevealInterval))
	frames := anim.Start(ctx, text)
	defer anim.Stop()

	s.metrics.RevealStreamsActive.Inc()
	defer s.metrics.RevealStreamsActive.Dec()

	setSSEHeaders(c.Writer)
	c.Status(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Reveal client disconnected")
			return
		case frame, ok := <-frames:
			if !ok {
				if ctx.Err() == nil {
					c.SSEvent("done", gin.H{"text": text})
					c.Writer.Flush()
				}
				return
			}
			c.SSEvent("frame", gin.H{"text": frame})
			c.Writer.Flush()
			s.metrics.RevealFramesTotal.Inc()
		}
	}
}
