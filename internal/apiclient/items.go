package apiclient

import (
	"context"
	"strings"
	"time"
)

// Item is one entry of a list panel. Endpoints disagree on field names
// (blog posts have title/content, projects name/description, work entries
// position/company), so every spelling is decoded and the accessors pick
// whichever is set.
type Item struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Name        string     `json:"name"`
	Position    string     `json:"position"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	Languages   string     `json:"languages"`
	Link        string     `json:"link"`
	Image       string     `json:"image"`
	Logo        string     `json:"logo"`
	CoverImage  string     `json:"cover_image"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	CreatedAt   *time.Time `json:"created_at"`
}

// Heading returns the title, name or "position at company".
func (i Item) Heading() string {
	switch {
	case i.Title != "":
		return i.Title
	case i.Name != "":
		return i.Name
	case i.Position != "" && i.Company != "":
		return i.Position + " at " + i.Company
	default:
		return i.Position + i.Company
	}
}

// Body returns the description or content.
func (i Item) Body() string {
	if i.Description != "" {
		return i.Description
	}
	return i.Content
}

// Picture returns the first image-like field that is set.
func (i Item) Picture() string {
	for _, p := range []string{i.Image, i.Logo, i.CoverImage} {
		if p != "" {
			return p
		}
	}
	return ""
}

// Period returns "start - end" for dated entries, with an open end shown as
// Present, or "" when there is no start date.
func (i Item) Period() string {
	if i.StartDate == "" {
		return ""
	}
	end := i.EndDate
	if end == "" {
		end = "Present"
	}
	return i.StartDate + " - " + end
}

// FetchList returns every item at endpoint, in API order. No pagination
// parameters are sent. Root-relative image paths are resolved against the
// API base URL.
func (c *Client) FetchList(ctx context.Context, endpoint string) ([]Item, error) {
	var items []Item
	if err := c.getJSON(ctx, c.endpoint(endpoint, nil), &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Image = c.resolve(items[i].Image)
		items[i].Logo = c.resolve(items[i].Logo)
		items[i].CoverImage = c.resolve(items[i].CoverImage)
	}
	return items, nil
}

func (c *Client) resolve(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return p
	}
	u := *c.baseURL
	u.Path = c.baseURL.Path + p
	u.RawQuery = ""
	return u.String()
}
