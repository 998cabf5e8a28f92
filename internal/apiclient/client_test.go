package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, Timeout: time.Second}, logger.NewNop())
	require.NoError(t, err)
	return c
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "/api"}, nil)
	require.Error(t, err)
}

func TestFetchWeights(t *testing.T) {
	var gotPath, gotDays string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDays = r.URL.Query().Get("days")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"date":"2024-01-01","weight":80.0,"unit":"kg"},
			{"date":"2024-01-02","value":79.5},
			{"date":"2024-01-03T07:30:00Z","weight":79.0,"unit":"kg"}
		]`))
	})

	samples, err := c.FetchWeights(context.Background(), 90)
	require.NoError(t, err)

	assert.Equal(t, "/api/health/weight", gotPath)
	assert.Equal(t, "90", gotDays)
	require.Len(t, samples, 3)
	assert.Equal(t, 80.0, samples[0].Value)
	assert.Equal(t, 79.5, samples[1].Value)
	assert.Equal(t, "kg", samples[1].Unit)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), samples[2].Date)
}

func TestFetchWeights_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	samples, err := c.FetchWeights(context.Background(), 30)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestFetchWeights_BadRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"date":"yesterday","weight":80}]`))
	})

	_, err := c.FetchWeights(context.Background(), 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight record 0")
}

func TestFetchWeights_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.FetchWeights(context.Background(), 30)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Contains(t, se.Body, "upstream down")
}

func TestFetchWeights_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.FetchWeights(ctx, 30)
	require.Error(t, err)
}

func TestFetchList(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[
			{"id":1,"title":"First post","content":"<p>hello</p>","created_at":"2024-05-01T10:00:00Z"},
			{"id":2,"name":"Tool","description":"A CLI","languages":"Go","link":"https://example.com"}
		]`))
	})

	items, err := c.FetchList(context.Background(), "/api/blog")
	require.NoError(t, err)
	assert.Equal(t, "/api/blog", gotPath)
	require.Len(t, items, 2)

	assert.Equal(t, "First post", items[0].Heading())
	assert.Equal(t, "<p>hello</p>", items[0].Body())
	require.NotNil(t, items[0].CreatedAt)

	assert.Equal(t, "Tool", items[1].Heading())
	assert.Equal(t, "A CLI", items[1].Body())
	assert.Nil(t, items[1].CreatedAt)
}

func TestFetchList_WorkAndImages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":3,"position":"Engineer","company":"Acme","logo":"/media/acme.png","start_date":"2021-02-01"},
			{"id":4,"title":"Novel","cover_image":"https://cdn.example.com/n.jpg"}
		]`))
	})
	base := c.baseURL.String()

	items, err := c.FetchList(context.Background(), "/api/work-experience")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Engineer at Acme", items[0].Heading())
	assert.Equal(t, base+"/media/acme.png", items[0].Picture())
	assert.Equal(t, "2021-02-01 - Present", items[0].Period())

	assert.Equal(t, "https://cdn.example.com/n.jpg", items[1].Picture())
	assert.Empty(t, items[1].Period())
}

func TestEndpoint_JoinsBasePath(t *testing.T) {
	c, err := New(Config{BaseURL: "https://api.example.com/v1/"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/api/health/weight?days=30",
		c.endpoint(c.weightPath, daysQuery(30)))
	assert.Equal(t, "https://api.example.com/v1/api/blog", c.endpoint("api/blog", nil))
}
