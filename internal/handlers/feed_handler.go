package handlers

import (
	"encoding/xml"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/services"
)

const (
	feedTitle       = "You Deserve Better"
	feedDescription = "Wellness stories on mental health, fitness, nutrition and self-care."
	feedSize        = 20
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// FeedHandler renders the RSS feed of the newest posts
type FeedHandler struct {
	postService *services.PostService
	siteURL     string
}

// NewFeedHandler creates a new FeedHandler. Item links point at siteURL.
func NewFeedHandler(postService *services.PostService, siteURL string) *FeedHandler {
	return &FeedHandler{postService: postService, siteURL: siteURL}
}

// RegisterFeedRoutes registers the feed route
func (h *FeedHandler) RegisterFeedRoutes(e *echo.Echo) {
	e.GET("/feed.xml", h.GetFeed)
}

func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, err := h.postService.ListPostsPage(c.Request().Context(), feedSize, "")
	if err != nil {
		return err
	}

	items := make([]rssItem, 0, len(page.Posts))
	for _, p := range page.Posts {
		postURL := h.siteURL + "/blog/" + url.PathEscape(p.ID)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			Category:    string(p.Category),
			Author:      p.AuthorName,
			PubDate:     p.CreatedAt.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       feedTitle,
			Link:        h.siteURL,
			Description: feedDescription,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(feed)
}
