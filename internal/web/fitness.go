package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/chart"
	"github.com/Zachkp/portfolio/internal/fitness"
	"github.com/Zachkp/portfolio/internal/logger"
)

const (
	maxChartWidth  = 2000
	maxChartHeight = 1200
)

type windowOption struct {
	Days   int
	Label  string
	Active bool
}

// panelView is the fitness panel prepared for the template.
type panelView struct {
	State       fitness.PanelState
	Loading     bool
	Ready       bool
	Failed      bool
	Windows     []windowOption
	LastUpdated string
	Source      string
}

func (s *Server) newPanelView(st fitness.PanelState) panelView {
	v := panelView{
		State:   st,
		Loading: st.Status == fitness.StatusLoading || st.Status == fitness.StatusIdle,
		Ready:   st.Status == fitness.StatusReady,
		Failed:  st.Status == fitness.StatusError,
		Source:  s.deps.DataSource,
	}
	for _, w := range fitness.Windows {
		v.Windows = append(v.Windows, windowOption{Days: w.Days(), Label: w.Label(), Active: w == st.Window})
	}
	if last, ok := st.LastUpdated(); ok {
		v.LastUpdated = last.Format("1/2/2006")
	}
	return v
}

// handleFitness renders the section and starts the default window on the
// visitor's first view.
func (s *Server) handleFitness(c *gin.Context) {
	ctrl := controllerFrom(c)
	ctrl.EnsureStarted()
	c.HTML(http.StatusOK, "fitness.html", s.newPanelView(ctrl.State()))
}

func (s *Server) handlePanel(c *gin.Context) {
	ctrl := controllerFrom(c)
	ctrl.EnsureStarted()
	c.HTML(http.StatusOK, "fitness-panel.html", s.newPanelView(ctrl.State()))
}

func (s *Server) handleSelectWindow(c *gin.Context) {
	ctrl := controllerFrom(c)

	w, err := fitness.ParseWindowString(c.PostForm("days"))
	if err == nil {
		err = ctrl.SelectWindow(w)
	}
	if err != nil {
		var iw *fitness.InvalidWindowError
		switch {
		case errors.As(err, &iw):
			c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": iw.Error()})
		case errors.Is(err, fitness.ErrClosed):
			c.HTML(http.StatusServiceUnavailable, "error.html", gin.H{"error": "Please reload the page."})
		default:
			_ = c.Error(err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Something went wrong."})
		}
		return
	}

	c.HTML(http.StatusOK, "fitness-panel.html", s.newPanelView(ctrl.State()))
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, controllerFrom(c).State())
}

func (s *Server) handleChart(c *gin.Context) {
	st := controllerFrom(c).State()
	if st.Status != fitness.StatusReady || st.Chart.Empty() {
		c.Status(http.StatusNotFound)
		return
	}

	width := boundedQueryInt(c, "w", chart.DefaultWidth, maxChartWidth)
	height := boundedQueryInt(c, "h", chart.DefaultHeight, maxChartHeight)

	var buf bytes.Buffer
	if err := st.Chart.RenderSVG(&buf, width, height); err != nil {
		s.log.Error("Failed to render weight chart",
			logger.Int("window", st.Window.Days()),
			logger.Error(err),
		)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

// boundedQueryInt reads a positive integer query value, falling back to def
// when it is missing or invalid and capping it at limit.
func boundedQueryInt(c *gin.Context, key string, def, limit int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, limit)
}
