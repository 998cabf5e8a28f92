package web

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/apiclient"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/mailer"
)

const contactFailure = "Sorry, there was an error sending your message. Please try again later."

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile": s.deps.Profile,
		"panels":  s.panels,
	})
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Contact Me",
		"email": s.deps.Profile.Email,
	})
}

// handleContact answers with a fragment either way so HTMX swaps it in.
func (s *Server) handleContact(c *gin.Context) {
	contact := mailer.Contact{
		Name:    c.PostForm("fullName"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	if err := s.deps.Mailer.SendContact(contact); err != nil {
		msg := contactFailure
		var ve *mailer.ValidationError
		if errors.As(err, &ve) {
			msg = ve.Message
		} else {
			_ = c.Error(err)
		}
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"error": msg})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func (s *Server) handleEducation(c *gin.Context) {
	c.HTML(http.StatusOK, "education-content.html", gin.H{
		"credentials": Education,
	})
}

// listItem is an API item prepared for the list template.
type listItem struct {
	Heading   string
	Body      template.HTML
	Languages string
	Link      string
	Image     string
	Period    string
	Created   string
}

func (s *Server) toListItem(it apiclient.Item) listItem {
	li := listItem{
		Heading:   it.Heading(),
		Body:      template.HTML(s.sanitizer.Sanitize(it.Body())), //nolint:gosec // sanitized by bluemonday
		Languages: it.Languages,
		Link:      it.Link,
		Image:     it.Picture(),
		Period:    it.Period(),
	}
	if it.CreatedAt != nil {
		li.Created = it.CreatedAt.Format("Jan 2, 2006")
	}
	return li
}

func (s *Server) handleListPanel(c *gin.Context) {
	name := c.Param("name")
	endpoint, ok := s.deps.ListEndpoints[name]
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Unknown panel"})
		return
	}

	data := gin.H{"name": name, "title": panelTitle(name)}

	items, err := s.deps.Lists.FetchList(c.Request.Context(), endpoint)
	if err != nil {
		s.log.Error("Failed to load list panel",
			logger.String("panel", name),
			logger.String("endpoint", endpoint),
			logger.Error(err),
		)
		data["error"] = "Failed to load " + name + "."
		c.HTML(http.StatusOK, "list.html", data)
		return
	}

	view := make([]listItem, 0, len(items))
	for _, it := range items {
		view = append(view, s.toListItem(it))
	}
	data["items"] = view
	c.HTML(http.StatusOK, "list.html", data)
}
