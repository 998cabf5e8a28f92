// Package web serves the portfolio site: HTML pages and HTMX fragments, the
// fitness panel, the reveal event stream and the operational endpoints.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/Zachkp/portfolio/internal/apiclient"
	"github.com/Zachkp/portfolio/internal/chart"
	"github.com/Zachkp/portfolio/internal/fitness"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/mailer"
	"github.com/Zachkp/portfolio/internal/reveal"
	"github.com/Zachkp/portfolio/internal/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

// ListFetcher loads the items of a list panel.
type ListFetcher interface {
	FetchList(ctx context.Context, endpoint string) ([]apiclient.Item, error)
}

// ContactSender delivers contact form submissions.
type ContactSender interface {
	SendContact(c mailer.Contact) error
}

// VisitorIdentifier resolves the visitor id of a request, issuing one if
// needed.
type VisitorIdentifier interface {
	VisitorID(w http.ResponseWriter, r *http.Request) (string, error)
}

// ControllerSource returns the fitness controller of a visitor, or nil when
// the site is shutting down.
type ControllerSource interface {
	Get(visitorID string) *fitness.Controller
}

// Deps are the collaborators of the HTTP surface.
type Deps struct {
	Log      logger.Logger
	Metrics  *telemetry.Metrics
	Lists    ListFetcher
	Mailer   ContactSender
	Visitors VisitorIdentifier
	Panels   ControllerSource

	// ListEndpoints maps panel names to API endpoints.
	ListEndpoints map[string]string

	Profile        Profile
	DataSource     string
	RevealInterval time.Duration
	IPSalt         string
	StaticDir      string
	ImagesDir      string
}

// Server holds the handlers.
type Server struct {
	deps      Deps
	log       logger.Logger
	metrics   *telemetry.Metrics
	templates *template.Template
	sanitizer *bluemonday.Policy
	panels    []string
	salt      string
}

// NewServer parses the templates and prepares the handlers.
func NewServer(deps Deps) (*Server, error) {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = telemetry.New()
	}
	if deps.Profile.Name == "" {
		deps.Profile = DefaultProfile
	}
	if deps.DataSource == "" {
		deps.DataSource = "apple health"
	}
	if deps.RevealInterval <= 0 {
		deps.RevealInterval = reveal.DefaultInterval
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	salt := deps.IPSalt
	if salt == "" {
		if salt, err = randomSalt(); err != nil {
			return nil, err
		}
	}

	return &Server{
		deps:      deps,
		log:       deps.Log,
		metrics:   deps.Metrics,
		templates: tmpl,
		sanitizer: bluemonday.UGCPolicy(),
		panels:    orderPanels(deps.ListEndpoints),
		salt:      salt,
	}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"kg": chart.Tooltip,
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
	}
}

// Router builds the gin engine with every route.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(s.templates)

	if s.deps.StaticDir != "" {
		r.Static("/static", s.deps.StaticDir)
	}
	if s.deps.ImagesDir != "" {
		r.Static("/images", s.deps.ImagesDir)
	}

	r.GET("/", s.handleIndex)
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)
	r.GET("/education-content", s.handleEducation)
	r.GET("/panels/:name", s.handleListPanel)
	r.GET("/reveal", s.handleReveal)

	fit := r.Group("/fitness", s.visitorPanel())
	fit.GET("", s.handleFitness)
	fit.POST("/window", s.handleSelectWindow)
	fit.GET("/panel", s.handlePanel)
	fit.GET("/state", s.handleState)
	fit.GET("/chart.svg", s.handleChart)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Page not found"})
	})

	return r
}
